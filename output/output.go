// Package output delivers rendered blocks to the status-bar host.
package output

import (
	"bufio"
	"fmt"
	"io"

	"go-music-notify/render"
)

// Writer writes whole blocks and flushes after each one. The host reads the
// pipe incrementally and sees nothing that is still held in a buffer.
type Writer struct {
	w *bufio.Writer
}

// New returns a Writer on dst.
func New(dst io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(dst)}
}

// Write emits block and flushes it.
func (w *Writer) Write(block string) error {
	if _, err := w.w.WriteString(block); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush block: %w", err)
	}
	return nil
}

// Placeholder emits the block shown before any player state is known.
func (w *Writer) Placeholder() error {
	return w.Write(render.Placeholder())
}
