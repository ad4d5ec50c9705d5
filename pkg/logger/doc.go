// Package logger builds the *slog.Logger used across alertkit and offers
// attribute helpers so keys stay consistent between packages.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "alertd"))
//	logger.SetAsDefault(log)
//
//	log.Info("alert rendered", logger.AlertID(out.ID), logger.GroupID(out.GroupID))
//
// Development uses the text format at debug level; staging and production
// use JSON at info level.
//
// Error returns an empty attribute for a nil error, so it can be passed
// without a nil check:
//
//	log.Debug("patch skipped", logger.Error(err))
package logger
