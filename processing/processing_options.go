package processing

import (
	"errors"

	"github.com/spacemeshos/bits/shared"
)

type option struct {
	logger shared.Logger
}

type OptionFunc func(*option) error

// WithLogger sets the logger used by the processor and the parsers it runs.
func WithLogger(logger shared.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}
