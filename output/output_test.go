package output

import (
	"bytes"
	"errors"
	"testing"

	"go-music-notify/render"
)

// chunkRecorder records each Write call the Writer makes on its destination.
type chunkRecorder struct {
	chunks []string
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.chunks = append(c.chunks, string(p))
	return len(p), nil
}

func TestWriteFlushesEachBlock(t *testing.T) {
	rec := &chunkRecorder{}
	w := New(rec)

	if err := w.Placeholder(); err != nil {
		t.Fatal(err)
	}
	if len(rec.chunks) != 1 || rec.chunks[0] != render.Placeholder() {
		t.Fatalf("after placeholder chunks = %q", rec.chunks)
	}

	if err := w.Write(render.Stopped()); err != nil {
		t.Fatal(err)
	}
	if len(rec.chunks) != 2 || rec.chunks[1] != render.Stopped() {
		t.Fatalf("after stopped chunks = %q", rec.chunks)
	}
}

func TestWriteOrder(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	for _, b := range []string{"a\n", "b\n", "c\n"} {
		if err := w.Write(b); err != nil {
			t.Fatal(err)
		}
	}
	if got := buf.String(); got != "a\nb\nc\n" {
		t.Errorf("output = %q", got)
	}
}

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteError(t *testing.T) {
	if err := New(brokenPipe{}).Write("x\n"); err == nil {
		t.Fatal("expected an error from a broken destination")
	}
}
