// Package logger builds *slog.Logger values with functional options and a
// small set of attribute helpers shared by the authkit packages and tools.
//
// New picks a text or JSON handler, attaches static attributes and, when
// context extractors are registered, wraps the handler in LogHandlerDecorator
// so values such as a request id travel from context.Context into every
// record logged with the *Context methods.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "authkit"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//		logger.WithContextExtractors(logger.UserIDExtractor),
//	)
//	ctx = logger.ContextWithUserID(ctx, user.ID)
//	log.DebugContext(ctx, "totp verified",
//		logger.Component("totp"),
//		logger.Counter(counter),
//	)
//
// There are helpers for counters and labels only. Secrets and one-time codes
// are never logged.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("sealed secret", logger.Error(err))
//
// needs no nil check.
package logger
