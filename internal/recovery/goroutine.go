package recovery

import (
	"runtime/debug"

	"github.com/pkyanam/proj/internal/logger"
)

// SafeGo runs fn in a goroutine with automatic panic recovery.
// This prevents any single goroutine panic from taking the daemon down.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic recovered in goroutine %q: %v", name, r)
				logger.Errorf("stack trace:\n%s", debug.Stack())
			}
		}()
		fn()
	}()
}

// SafeGoWithCleanup runs fn in a goroutine with panic recovery, always
// invoking cleanup on the way out whether fn panicked or returned normally.
func SafeGoWithCleanup(name string, fn func(), cleanup func()) {
	go func() {
		defer func() {
			if cleanup != nil {
				cleanup()
			}
			if r := recover(); r != nil {
				logger.Errorf("panic recovered in goroutine %q: %v", name, r)
				logger.Errorf("stack trace:\n%s", debug.Stack())
			}
		}()
		fn()
	}()
}
