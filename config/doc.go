// Package config loads service configuration with Viper.
//
// Values are layered: the YAML config file, then a .env file, then the
// process environment. Environment variables carry the upper-cased
// service name as prefix with underscores for nesting:
//
//	RESTSENSE_CLIENT_BASE_URL=https://api.example.com
//	RESTSENSE_SERVER_PORT=9090
//
// # Usage
//
//	cfg, err := config.Load[config.ServiceConfig]("restsense")
//
// Configs implementing Validatable get ApplyDefaults and Validate called
// after unmarshalling.
package config
