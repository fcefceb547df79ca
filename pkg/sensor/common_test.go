package sensor

import (
	"testing"

	"go.uber.org/mock/gomock"
	"github.com/tempview/sensor-data-service/pkg/db"
	"github.com/tempview/sensor-data-service/pkg/sensor/mocks"
)

func GetMockCoreWithMemorySqliteDialector(t *testing.T, useMockIStore, useMockIQuery bool) (
	*gomock.Controller,
	*Core,
	*mocks.MockIStore,
	*mocks.MockIQuery,
) {
	ctrl := gomock.NewController(t)

	mockIStore := mocks.NewMockIStore(ctrl)
	mockIQuery := mocks.NewMockIQuery(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	core := &Core{Db: *dbInstance}

	storeService := core.GetIStore()
	if useMockIStore {
		storeService = mockIStore
	}

	queryService := core.GetIQuery()
	if useMockIQuery {
		queryService = mockIQuery
	}

	core.WithServices(ServiceOpts{
		Store: storeService,
		Query: queryService,
	})

	return ctrl, core, mockIStore, mockIQuery
}
