package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Dev             bool          `envconfig:"DEV" default:"false"`
	DBPath          string        `envconfig:"DB_PATH" default:"data/fuel-stations.db"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	StationsURL     string        `envconfig:"STATIONS_URL" default:"https://sedeaplicaciones.minetur.gob.es/ServiciosRESTCarburantes/PreciosCarburantes/EstacionesTerrestres/"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"30m"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"1m"`
	Timezone        string        `envconfig:"TIMEZONE" default:"Europe/Madrid"`
}

func NewConfig() (*Config, error) {
	res := &Config{}

	if err := envconfig.Process("", res); err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}
	if res.RefreshInterval <= 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL=%s: must be positive", res.RefreshInterval)
	}
	if res.FetchTimeout <= 0 {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT=%s: must be positive", res.FetchTimeout)
	}

	return res, nil
}
