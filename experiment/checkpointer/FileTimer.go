package checkpointer

import (
	"fmt"
	"time"
)

// FileTimer returns a function which will append to a filename the
// number of nanoseconds since January 1, 1970.
func FileTimer(filename, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(),
			extension)
	}
}

// Naming returns the filename generator for a naming scheme, which is
// one of "enumerate" or "time"
func Naming(scheme, filename, extension string) (func() string, error) {
	switch scheme {
	case "enumerate", "":
		return FilenameEnumerator(0, filename, extension), nil
	case "time":
		return FileTimer(filename, extension), nil
	}
	return nil, fmt.Errorf("naming: unknown naming scheme %q", scheme)
}
