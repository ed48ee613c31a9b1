package query

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"go-music-notify/bridge"
	"go-music-notify/output"
	"go-music-notify/render"
	"go-music-notify/track"
)

// TestHelperProcess is the child side of the runner tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	b := &fakeBridge{}
	switch os.Getenv("HELPER_MODE") {
	case "playing":
		b.apps = map[string]*fakeApp{bridge.MusicBundleID: {running: true, state: "kPSP", fields: talisman}}
	case "sleep":
		time.Sleep(time.Minute)
	case "fail":
		os.Exit(3)
	}

	p := &Probe{Bridge: b, Identities: bridge.MusicIdentities, Out: output.New(os.Stdout)}
	if err := p.Run(context.Background()); err != nil {
		os.Exit(2)
	}
	os.Exit(0)
}

func helper(mode string, stdout *bytes.Buffer) *Runner {
	return &Runner{
		Path:   os.Args[0],
		Args:   []string{"-test.run=TestHelperProcess", "--"},
		Env:    append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode),
		Stdout: stdout,
	}
}

func TestRunnerChildWrites(t *testing.T) {
	var buf bytes.Buffer
	if err := helper("playing", &buf).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	rec := track.FromFields(talisman)
	want, _ := render.Track(&rec, track.Playing)
	if got := buf.String(); got != want {
		t.Errorf("child output =\n%s\nwant\n%s", got, want)
	}
}

func TestRunnerStartupWithoutPlayer(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	if err := out.Placeholder(); err != nil {
		t.Fatal(err)
	}

	if err := helper("none", &buf).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != render.Placeholder() {
		t.Errorf("output = %q, want only the placeholder", got)
	}
}

func TestRunnerChildFailure(t *testing.T) {
	var buf bytes.Buffer
	err := helper("fail", &buf).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "query failed") {
		t.Errorf("err = %v", err)
	}
}

func TestRunnerTimeout(t *testing.T) {
	var buf bytes.Buffer
	r := helper("sleep", &buf)
	r.Timeout = 200 * time.Millisecond

	start := time.Now()
	err := r.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 30*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q", buf.String())
	}
}
