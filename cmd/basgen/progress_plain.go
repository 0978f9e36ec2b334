package main

import (
	"fmt"
	"io"

	"basgen/internal/assemble"
)

// plainSink prints one line per settled event, for non-interactive runs
// where the TUI is off. Working-state events for the streaming stages are
// dropped so logs stay readable.
type plainSink struct {
	out io.Writer
}

func (s plainSink) OnEvent(ev assemble.Event) {
	if s.out == nil {
		return
	}
	switch ev.Status {
	case assemble.StatusDone:
		if ev.Section != "" {
			fmt.Fprintf(s.out, "done %s (%.1f ms)\n", ev.Section, float64(ev.Elapsed.Microseconds())/1000)
		} else {
			fmt.Fprintf(s.out, "done %s\n", ev.Stage)
		}
	case assemble.StatusError:
		if ev.Section != "" {
			fmt.Fprintf(s.out, "error %s: %v\n", ev.Section, ev.Err)
		} else {
			fmt.Fprintf(s.out, "error %s: %v\n", ev.Stage, ev.Err)
		}
	}
}
