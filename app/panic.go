package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"halo/hal"
)

// protect runs fn and, if it panics, reports the panic over the logger
// and halts the goroutine. On hardware the log line over UART is often
// the only diagnostic that gets out, so it must be written before
// anything else can go wrong.
func protect(log hal.Logger, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if log != nil {
			log.WriteLineString(fmt.Sprintf("halo panic: %v", r))
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line != "" {
					log.WriteLineString(line)
				}
			}
		}
		select {}
	}()
	fn()
}
