package pgresult

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
)

// Logger interface for lifecycle logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Handle.
type Option func(*Handle) error

// WithLogger sets the logger for the Handle.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: handle creation and release (development use)
// Warn level: failures while draining driver rows into the handle.
func WithLogger(logger Logger) Option {
	return func(h *Handle) error {
		h.logger = logger
		return nil
	}
}

// WithTypeMap sets the pgtype.Map used to resolve type OIDs into type names.
// By default, a handle uses a map that knows the standard Postgres catalog
// types; supply a custom map when the result contains extension types.
func WithTypeMap(typeMap *pgtype.Map) Option {
	return func(h *Handle) error {
		if typeMap == nil {
			return errors.New("nil type map supplied")
		}

		h.typeMap = typeMap

		return nil
	}
}
