package hooks

import (
	"fmt"

	"github.com/cperrin88/rpmsnap/pkg/errors"
)

// ErrHookTypeEmpty is returned when a hook type is empty.
var ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

// ErrUnsupportedHookType is returned when a hook file names an unknown type.
func ErrUnsupportedHookType(hookType HookType) error {
	return errors.Wrapf(errors.ErrHookLoad, "unsupported hook type: %s", hookType)
}
