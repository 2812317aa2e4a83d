// Package logger provides structured logging on top of zerolog.
//
// Loggers take fields as maps so call sites stay free of zerolog's event API:
//
//	log := logger.Get("httpclient")
//	log.Debug("request completed", logger.Fields("method", "GET", "status", 200))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"   # json | console | pretty
//	  output: "stdout" # stdout | stderr
package logger
