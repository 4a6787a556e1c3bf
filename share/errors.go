package share

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// IsContextClosedError reports whether err was caused by a cancelled or expired context,
// looking through url.Error and pkg/errors wrapping.
func IsContextClosedError(err error) bool {
	if err == nil {
		return false
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}

	switch errors.Cause(err) {
	case context.Canceled, context.DeadlineExceeded:
		return true
	}

	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ErrMissingInput marks a request whose required fields are empty.
var ErrMissingInput = errors.New("missing input")
