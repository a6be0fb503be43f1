package utils

import (
	"fmt"
	"io"
	"time"
)

// Progress prints the step by step console output of a command.
type Progress struct {
	out   io.Writer
	start time.Time
}

// NewProgress starts the overall timer.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out, start: time.Now()}
}

// Stage announces doing, runs fn and reports done with the time it took.
// The error of fn is passed through and nothing is reported for it.
func (p *Progress) Stage(doing, done string, fn func() error) error {
	timer := time.Now()
	fmt.Fprintln(p.out, "▶️ ", doing)

	if err := fn(); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "✔️ ", done, "in", time.Now().Sub(timer).String())
	return nil
}

// Info prints an informational line.
func (p *Progress) Info(format string, a ...interface{}) {
	fmt.Fprintf(p.out, "ℹ️  "+format+"\n", a...)
}

// Finish prints the total run time.
func (p *Progress) Finish() {
	fmt.Fprintf(p.out, "\n    🎉  Finished in %s\n", time.Now().Sub(p.start).String())
}
