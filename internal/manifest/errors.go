package manifest

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPluginList   = errors.New("empty plugin list")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrSelfReference     = errors.New("self reference")
)

// DeclarationError describes the first malformed declaration found while
// resolving a unit. Kind is one of the Err* sentinels above.
type DeclarationError struct {
	Kind error
	Unit string
	// Index of the offending dependency, or -1 for plugin-level errors.
	Index  int
	Key    string
	Detail string
}

func (e *DeclarationError) Error() string {
	msg := fmt.Sprintf("unit %q: %s", e.Unit, e.Kind)
	if e.Index >= 0 {
		msg += fmt.Sprintf(" at dependency #%d", e.Index)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (%s)", e.Key)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DeclarationError) Unwrap() error {
	return e.Kind
}

// KindName returns a short stable name for the error kind, used for metric
// labels and reports.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrEmptyPluginList):
		return "empty_plugin_list"
	case errors.Is(err, ErrInvalidCoordinate):
		return "invalid_coordinate"
	case errors.Is(err, ErrSelfReference):
		return "self_reference"
	default:
		return "other"
	}
}
