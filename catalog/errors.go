package catalog

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is matched by every catalog load failure
var ErrDataUnavailable = errors.New("catalog unavailable")

// DataUnavailableError reports that the catalog source could not be
// located, read or parsed. The cause is logged where it happens and is not
// carried, so callers only ever see one terminal condition.
type DataUnavailableError struct {
	Source string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable: %s", e.Source)
}

// Unwrap lets errors.Is(err, ErrDataUnavailable) match
func (e *DataUnavailableError) Unwrap() error {
	return ErrDataUnavailable
}
