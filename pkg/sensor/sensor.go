package sensor

import (
	"github.com/tempview/sensor-data-service/pkg/db"
	"github.com/tempview/sensor-data-service/pkg/models"
)

type IStore interface {
	InsertReading(input *models.Reading) (uint, error)
}

type IQuery interface {
	LatestReadings(sensorID string, limit int) ([]models.Reading, error)
	ListSensors() ([]string, error)
}

// Core is the service object both ingestion channels and the query side
// share. Every operation acquires its own connection through Db; no state
// is held across calls.
type Core struct {
	Db    db.DB
	Store IStore
	Query IQuery
}

type ServiceOpts struct {
	Store IStore
	Query IQuery
}

func (c *Core) WithServices(opts ServiceOpts) *Core {
	if opts.Store != nil {
		c.Store = opts.Store
	}
	if opts.Query != nil {
		c.Query = opts.Query
	}
	return c
}
