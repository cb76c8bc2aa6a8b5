// Package logger is the service's structured logger, a thin layer over
// zerolog with map-based fields.
//
//	logging:
//	  level: info
//	  format: json
//
// Components get a tagged child logger and add per-request context:
//
//	log := base.WithComponent("pipeline").WithContext(ctx)
//	log.Info("element resolved", logger.Fields(logger.FieldElementID, "M1800"))
package logger
