// Package progress reports multi-step devkit and upload operations.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter receives progress for a multi-step operation.
type Reporter interface {
	// Start begins progress reporting with an initial message
	Start(message string)

	// Step reports a new step in the operation
	Step(message string)

	// Skip reports work that was not needed, such as a file already uploaded
	Skip(message string)

	// Error reports an error condition
	Error(message string)

	// Success reports successful completion
	Success(message string)

	// End finalizes progress reporting
	End()
}

// ConsoleReporter writes plain lines, suitable for pipes and CI logs. It is
// safe for concurrent use.
type ConsoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *ConsoleReporter) printf(format, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, message)
}

// NewConsoleReporter creates a ConsoleReporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{w: os.Stdout}
}

// NewWriterReporter creates a ConsoleReporter writing to w.
func NewWriterReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (r *ConsoleReporter) Start(message string) {
	r.printf("%s...\n", message)
}

func (r *ConsoleReporter) Step(message string) {
	r.printf("  - %s\n", message)
}

func (r *ConsoleReporter) Skip(message string) {
	r.printf("  = %s\n", message)
}

func (r *ConsoleReporter) Error(message string) {
	r.printf("  x %s\n", message)
}

func (r *ConsoleReporter) Success(message string) {
	r.printf("  + %s\n", message)
}

func (r *ConsoleReporter) End() {}

// NopReporter discards everything.
type NopReporter struct{}

// NewNopReporter creates a new NopReporter
func NewNopReporter() *NopReporter {
	return &NopReporter{}
}

func (r *NopReporter) Start(message string)   {}
func (r *NopReporter) Step(message string)    {}
func (r *NopReporter) Skip(message string)    {}
func (r *NopReporter) Error(message string)   {}
func (r *NopReporter) Success(message string) {}
func (r *NopReporter) End()                   {}
