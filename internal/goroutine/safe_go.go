package goroutine

import (
	"runtime/debug"

	"github.com/ecoconnect/ecoconnect-backend/internal/logger"
)

// SafeGo запускает fire-and-forget горутину с обработкой panic.
// Паника фоновой задачи логируется и не роняет процесс.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("goroutine").
					Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
