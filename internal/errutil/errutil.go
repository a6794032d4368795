// Package errutil contains methods to simplify working with error
package errutil

import (
	"io"

	"go.uber.org/multierr"
)

// Close closes the closer and sets the error to err if err is nil.
// If err is already set, the closing error (if any) gets appended to it
// so it's not lost
func Close(c io.Closer, err *error) { //nolint: gocritic // the pointer of pointer is on purpose so we can change the value if it's nil
	multierr.AppendInto(err, c.Close())
}
