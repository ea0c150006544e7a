// File: locks/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package locks

import (
	"fmt"

	"github.com/momentics/hioload-sync/api"
)

// notLocked builds the panic value for a release of a lock that is not held
// in the required mode. Wraps api.ErrNotLocked so recover sites can match it
// with errors.Is.
func notLocked(op, mode string) error {
	return fmt.Errorf("locks: %w: %s not locked for %s", api.ErrNotLocked, op, mode)
}
