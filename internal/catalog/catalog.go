// Package catalog talks to structured product APIs, the preferred resolution
// path: no selector fragility, one request, typed JSON.
package catalog

import (
	"errors"
	"fmt"
)

// ErrItemNotFound means the catalog has no item under the requested id.
var ErrItemNotFound = errors.New("catalog item not found")

// UpstreamError is a non-success catalog response that carried a body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected request: status %d", e.Status)
}
