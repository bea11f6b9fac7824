package formatter

import (
	"fmt"

	"github.com/gitspan/gitspan/internal/core/model"
)

// Formatter renders an already time-sorted record collection to stdout.
type Formatter interface {
	Format(records []model.CommitRecord) error
}

// UnknownFormatError means the requested render mode is not one of the
// supported layouts. It is returned before any output is written.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format: %s", e.Format)
}

// New returns the formatter for the given mode. Supported modes are "flat"
// and "daily"; anything else fails with UnknownFormatError.
func New(format string) (Formatter, error) {
	switch format {
	case "flat":
		return NewFlatFormatter(), nil
	case "daily":
		return NewDailyFormatter(), nil
	default:
		return nil, &UnknownFormatError{Format: format}
	}
}
