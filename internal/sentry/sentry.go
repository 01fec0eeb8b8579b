package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	apperrors "github.com/socialchef/cookmate/internal/errors"
)

// Init configures the Sentry client. An empty DSN leaves Sentry disabled.
func Init(dsn, env, serviceName, serviceVersion string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		ServerName:       serviceName,
		Release:          serviceVersion,
		AttachStacktrace: true,
		TracesSampleRate: 0.0, // tracing goes through OpenTelemetry
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

// Flush waits for pending events. Call it during graceful shutdown.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

func hubFrom(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// CaptureError reports err, tagging application errors with their type and code.
// Validation and not-found errors are expected user outcomes and are skipped.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := hubFrom(ctx)
	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound:
			return
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("error.type", string(appErr.Type))
			scope.SetTag("error.code", appErr.Code())
			hub.CaptureException(err)
		})
		return
	}
	hub.CaptureException(err)
}
