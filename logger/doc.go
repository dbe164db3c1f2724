// Package logger provides structured logging for seqkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("seqkit.concurrent")
//	log.Debug("fold finished", logger.Fields("workers", 4))
package logger
