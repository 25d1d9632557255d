//go:build !(darwin || freebsd || linux)

package dylib

import (
	"errors"

	"github.com/user-none/retrohost/libretro"
)

// Open always fails: this platform has no dlopen-based loader.
func Open(path string) (libretro.Core, error) {
	return nil, errors.New("dynamic core loading is not supported on this platform")
}
