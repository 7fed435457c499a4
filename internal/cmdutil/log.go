// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Reportf writes one diagnostic line when enabled; progress and
// per-reject chatter route through here so verbosity gating lives in
// one place.
func Reportf(dst io.Writer, enabled bool, format string, a ...any) {
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(dst, format+"\n", a...)
}

// Warnf writes a WARN-tagged line unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}
