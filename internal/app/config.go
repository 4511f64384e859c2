package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var configValidate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set": the plan file, if any, supplies the value and
// the built-in default applies otherwise.
type Config struct {
	GridPath string `validate:"required_without=PlanPath"` // grid text file
	PlanPath string `validate:"required_without=GridPath"` // .hcl/.yaml plan file or directory

	Entry      string // entry identifier for the CLI simulation
	Top        int    `validate:"gte=0"`
	NoScan     bool
	PublishURL string `validate:"omitempty,url"`

	LogFormat       string `validate:"oneof=json text"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	HealthcheckPort int    `validate:"gte=0,lte=65535"`
	WorkerCount     int    `validate:"gte=0"`
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := configValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
