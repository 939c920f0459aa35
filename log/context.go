package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// NewCtx stores logger in ctx
func NewCtx(ctx context.Context, logger *logrus.Entry) (context.Context, *logrus.Entry) {
	ctx = context.WithValue(ctx, ctxKey{}, logger)

	return ctx, entryWithCtx(ctx, logger)
}

// FromCtx returns the logger stored in ctx, or an entry of the global logger
func FromCtx(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(ctxKey{}).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(Log())
	}

	return entryWithCtx(ctx, logger)
}

// FromCtxWithPrefix is FromCtx with the component prefix set
func FromCtxWithPrefix(ctx context.Context, prefix string) *logrus.Entry {
	return FromCtx(ctx).WithField("prefix", prefix)
}

func entryWithCtx(ctx context.Context, logger *logrus.Entry) *logrus.Entry {
	loggerCopy := *logger
	loggerCopy.Context = ctx

	return &loggerCopy
}

func WrapCtx(ctx context.Context, wrap func(*logrus.Entry) *logrus.Entry) (context.Context, *logrus.Entry) {
	logger := FromCtx(ctx)
	logger = wrap(logger)

	return NewCtx(ctx, logger)
}

func CtxWithFields(ctx context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	return WrapCtx(ctx, func(e *logrus.Entry) *logrus.Entry {
		return e.WithFields(fields)
	})
}
