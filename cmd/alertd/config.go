package main

import (
	"time"

	"github.com/dmitrymomot/alertkit/pkg/alert"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Service     string `env:"APP_NAME" envDefault:"alertd"`
	PresetsFile string `env:"ALERT_PRESETS_FILE"`
	ContainerID string `env:"ALERT_CONTAINER_ID" envDefault:"alerts"`

	HTTP   httpConfig
	Alerts alert.Defaults
}

type httpConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"` // alert streams set their own deadline
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
