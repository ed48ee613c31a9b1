package mpdplayer

import (
	"context"
	"fmt"

	"github.com/fhs/gompd/v2/mpd"

	"go-music-notify/bridge"
	"go-music-notify/track"
)

// Bridge reads player state from MPD servers. The identity is the server
// address.
type Bridge struct {
	Network  string
	Password string
}

type app struct {
	running bool
	status  mpd.Attrs
	song    mpd.Attrs
}

// Application implements bridge.Bridge. An unreachable server is reported
// as a player that is not running.
func (b Bridge) Application(ctx context.Context, identity string) (bridge.Application, error) {
	conn, err := mpd.DialAuthenticated(b.Network, identity, b.Password)
	if err != nil {
		return &app{}, nil
	}
	defer conn.Close()

	status, err := conn.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	song, err := conn.CurrentSong()
	if err != nil {
		return nil, fmt.Errorf("failed to get current song: %w", err)
	}
	return newApp(status, song), nil
}

func newApp(status, song mpd.Attrs) *app {
	return &app{running: true, status: status, song: song}
}

func (a *app) IsRunning() bool { return a.running }

func (a *app) PlayerState() string {
	return scriptStates[a.status["state"]]
}

func (a *app) CurrentTrack() track.Fields {
	return Fields(a.status, a.song)
}
