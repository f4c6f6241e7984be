// -----------------------------------------------------------------------
// Safe Goroutine - Panic-protected goroutine wrapper
// -----------------------------------------------------------------------

package common

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine with panic recovery and delivers its result
// on the returned channel. A panic is logged with its stack and delivered as
// an error, so a caller waiting on the channel never blocks forever.
//
// Example:
//
//	serverErr := common.SafeGo(logger, "http-server", srv.Start)
func SafeGo(logger arbor.ILogger, name string, fn func() error) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				stackTrace := string(buf[:n])

				if logger != nil {
					logger.Error().
						Str("goroutine", name).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", stackTrace).
						Msg("Recovered from panic in goroutine")
				} else {
					fmt.Fprintf(os.Stderr, "PANIC in goroutine %s: %v\n%s\n", name, r, stackTrace)
				}
				errc <- fmt.Errorf("goroutine %s panicked: %v", name, r)
			}
		}()

		errc <- fn()
	}()
	return errc
}
