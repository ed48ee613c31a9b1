package mpdplayer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"go-music-notify/track"
)

// Source turns MPD "player" idle events into payloads.
type Source struct {
	network  string
	addr     string
	password string
	events   chan track.Payload

	Debug bool
}

// Subscribe returns a Source for the MPD server at addr.
func Subscribe(network, addr, password string) *Source {
	return &Source{
		network:  network,
		addr:     addr,
		password: password,
		events:   make(chan track.Payload, 16),
	}
}

func (s *Source) Events() <-chan track.Payload {
	return s.events
}

// Serve watches the server until ctx is done, reconnecting when the
// connection drops.
func (s *Source) Serve(ctx context.Context) error {
	defer close(s.events)

	for {
		err := s.watch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if s.Debug {
			log.Printf("🔄 MPD watch ended: %v, reconnecting", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(2 * time.Second):
		}
	}
}

func (s *Source) watch(ctx context.Context) error {
	w, err := mpd.NewWatcher(s.network, s.addr, s.password, "player")
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	conn, err := mpd.DialAuthenticated(s.network, s.addr, s.password)
	if err != nil {
		return fmt.Errorf("failed to connect to MPD at %s: %w", s.addr, err)
	}
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-w.Error:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if s.Debug {
				log.Printf("⚠️  Watcher error: %v", err)
			}

		case _, ok := <-w.Event:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			p, err := snapshot(conn)
			if err != nil {
				return err
			}
			select {
			case s.events <- p:
			case <-ctx.Done():
				return nil
			}

		case <-time.After(30 * time.Second):
			// Keeps the status connection inside the server's idle timeout.
			if err := conn.Ping(); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

func snapshot(conn *mpd.Client) (track.Payload, error) {
	status, err := conn.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	song, err := conn.CurrentSong()
	if err != nil {
		return nil, fmt.Errorf("failed to get current song: %w", err)
	}
	return Payload(status, song), nil
}
