package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env-default:"info" validate:"oneof=debug info"`
	Bot      Bot    `yaml:"bot"`
}

type Bot struct {
	Strategy string `yaml:"strategy" env-default:"minimax" validate:"oneof=random minimax"`
	Depth    int    `yaml:"depth" env-default:"8" validate:"min=1,max=9"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := validate.Struct(config); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}
