package config

import (
	"fmt"

	"github.com/kbukum/restsense/httpclient"
	"github.com/kbukum/restsense/logger"
	"github.com/kbukum/restsense/observability"
	"github.com/kbukum/restsense/server"
	"github.com/kbukum/restsense/validation"
)

// ServiceConfig is the configuration of a restsense process: the outbound
// client, the results server and telemetry. Projects extend it by embedding.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Billing httpclient.Config `yaml:"billing" mapstructure:"billing"`
//	}
type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging logger.Config              `yaml:"logging" mapstructure:"logging"`
	Client  httpclient.Config          `yaml:"client" mapstructure:"client"`
	Server  server.Config              `yaml:"server" mapstructure:"server"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// GetServiceConfig returns c. It is promoted to embedding structs.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills unset fields and propagates the service identity
// into logging, client and telemetry settings.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = "dev"
	}

	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	if c.Client.Name == "" {
		c.Client.Name = c.Name
	}
	c.Client.ApplyDefaults()
	c.Server.ApplyDefaults()

	c.Tracing = withTracerDefaults(c.Tracing, c)
	c.Metrics = withMeterDefaults(c.Metrics, c)
}

func withTracerDefaults(t observability.TracerConfig, c *ServiceConfig) observability.TracerConfig {
	d := observability.DefaultTracerConfig(c.Name)
	d.ServiceVersion = c.Version
	d.Environment = c.Environment
	if t.ServiceName == "" {
		t.ServiceName = d.ServiceName
	}
	if t.ServiceVersion == "" {
		t.ServiceVersion = d.ServiceVersion
	}
	if t.Environment == "" {
		t.Environment = d.Environment
	}
	if t.Endpoint == "" {
		t.Endpoint = d.Endpoint
		t.Insecure = d.Insecure
	}
	if t.SampleRate == 0 {
		t.SampleRate = d.SampleRate
	}
	return t
}

func withMeterDefaults(m observability.MeterConfig, c *ServiceConfig) observability.MeterConfig {
	d := observability.DefaultMeterConfig(c.Name)
	if m.ServiceName == "" {
		m.ServiceName = d.ServiceName
	}
	if m.ServiceVersion == "" {
		m.ServiceVersion = c.Version
	}
	if m.Environment == "" {
		m.Environment = c.Environment
	}
	if m.Endpoint == "" {
		m.Endpoint = d.Endpoint
		m.Insecure = d.Insecure
	}
	if m.Interval == 0 {
		m.Interval = d.Interval
	}
	return m
}

// Validate checks the `validate` tags of every section, then the checks
// that tags cannot express.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}
