package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultUpdateInterval = 5 * time.Minute

type Config struct {
	Username string `env:"GARMIN_USERNAME,required,notEmpty"`
	Password string `env:"GARMIN_PASSWORD,required,notEmpty"`

	// Country is the ISO 3166-1 alpha-2 account country. CN routes every
	// call through the garmin.cn endpoints.
	Country string `env:"GARMIN_COUNTRY"`

	UpdateInterval  time.Duration `env:"UPDATE_INTERVAL" envDefault:"5m"`
	Addr            string        `env:"ADDR" envDefault:":8099"`
	DispatchWorkers int           `env:"DISPATCH_WORKERS" envDefault:"4"`
}

func (c Config) InChina() bool {
	return strings.EqualFold(c.Country, "CN")
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
