package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"go-music-notify/track"
)

// snapshotScript reads everything the probe needs in one JXA run, so the
// scripting bridge is entered once per query.
const snapshotScript = `function run(argv) {
	var out = {found: false, running: false, state: "", track: null};
	var app;
	try {
		app = Application(argv[0]);
		out.found = true;
	} catch (e) {
		return JSON.stringify(out);
	}
	if (!app.running()) {
		return JSON.stringify(out);
	}
	out.running = true;
	out.state = String(app.playerState());
	if (out.state !== "stopped") {
		try {
			var t = app.currentTrack;
			out.track = {
				artist: t.artist(),
				albumArtist: t.albumArtist(),
				name: t.name(),
				album: t.album(),
				trackNumber: t.trackNumber(),
				duration: t.duration(),
				year: t.year()
			};
		} catch (e) {}
	}
	return JSON.stringify(out);
}`

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// OSAScript queries macOS applications with osascript JavaScript.
type OSAScript struct {
	// Run overrides command execution, mainly in tests.
	Run Runner
}

type snapshot struct {
	Found   bool          `json:"found"`
	Running bool          `json:"running"`
	State   string        `json:"state"`
	Track   *track.Fields `json:"track"`
}

// Application implements Bridge.
func (o OSAScript) Application(ctx context.Context, identity string) (Application, error) {
	run := o.Run
	if run == nil {
		run = execRunner
	}

	out, err := run(ctx, "osascript", "-l", "JavaScript", "-e", snapshotScript, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", identity, err)
	}

	var snap snapshot
	if err := json.Unmarshal(bytes.TrimSpace(out), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse %s snapshot: %w", identity, err)
	}
	if !snap.Found {
		return nil, fmt.Errorf("%s: %w", identity, ErrNotFound)
	}
	return &snap, nil
}

func (s *snapshot) IsRunning() bool     { return s.Running }
func (s *snapshot) PlayerState() string { return s.State }

func (s *snapshot) CurrentTrack() track.Fields {
	if s.Track == nil {
		return track.Fields{}
	}
	return *s.Track
}
