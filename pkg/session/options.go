package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sampleform/pkg/validation"
	"github.com/goliatone/go-sampleform/pkg/workbook"
)

// Option customises a Session.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	initialRows int
	clock       func() time.Time
	newUUID     func() string
	workbook    []workbook.Option
	validation  []validation.Option
}

func defaultConfig() config {
	return config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:   time.Now,
		newUUID: func() string { return uuid.NewString() },
	}
}

// WithLogger routes session events to logger. Events are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithInitialRows sets the number of empty grid rows allocated up front.
func WithInitialRows(n int) Option {
	return func(cfg *config) {
		cfg.initialRows = n
	}
}

// WithClock overrides the clock used by validation and export timestamps.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithUUIDGenerator overrides project UUID generation.
func WithUUIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newUUID = fn
		}
	}
}

// WithWorkbookOptions forwards options to the workbook importer and exporter.
func WithWorkbookOptions(opts ...workbook.Option) Option {
	return func(cfg *config) {
		cfg.workbook = append(cfg.workbook, opts...)
	}
}

// WithValidationOptions forwards options to the validator, e.g. custom rules.
// Visibility and option providers are always the session's shared resolvers.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(cfg *config) {
		cfg.validation = append(cfg.validation, opts...)
	}
}
