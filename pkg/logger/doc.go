// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which runs registered ContextExtractor
// callbacks on each Handle call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "payflow"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.InfoContext(ctx, "subscription created",
//		logger.SubscriptionID(sub.ID),
//		logger.Branch(billing.BranchPendingSetup),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Helpers taking an error or identifier return an empty slog.Attr for nil or
// empty input, so they can be passed unconditionally.
package logger
