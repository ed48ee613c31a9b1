// Package notify turns player-info notifications into status-bar output.
package notify

import (
	"context"
	"errors"
	"log"

	"go-music-notify/output"
	"go-music-notify/render"
	"go-music-notify/track"
)

// PlayerInfoChannel is the distributed notification name iTunes and Music
// post on every player change.
const PlayerInfoChannel = "com.apple.iTunes.playerInfo"

// ErrUnsupported is returned where no distributed notification center exists.
var ErrUnsupported = errors.New("distributed notifications are not supported on this platform")

// Subscription is one subscription to a player-info source.
type Subscription interface {
	// Serve runs the source's delivery loop on the calling goroutine until
	// ctx is done, then closes the Events channel.
	Serve(ctx context.Context) error
	// Events delivers payloads in the order the source produced them.
	Events() <-chan track.Payload
}

// Fallback queries the player directly when a payload is not enough.
type Fallback interface {
	Run(ctx context.Context) error
}

// Listener renders every payload of a subscription.
type Listener struct {
	sub      Subscription
	out      *output.Writer
	fallback Fallback

	Debug bool
}

// New returns a Listener that writes to out and queries fallback when a
// payload lacks an artist or title.
func New(sub Subscription, out *output.Writer, fallback Fallback) *Listener {
	return &Listener{sub: sub, out: out, fallback: fallback}
}

// Run serves the subscription on the calling goroutine and handles its
// events on another, one at a time. It returns when ctx is done or the
// subscription stops.
func (l *Listener) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		l.drain(ctx)
	}()

	err := l.sub.Serve(ctx)
	cancel()
	<-done
	return err
}

func (l *Listener) drain(ctx context.Context) {
	events := l.sub.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-events:
			if !ok {
				return
			}
			l.Handle(ctx, p)
		}
	}
}

// Handle renders one payload. Incomplete payloads trigger the fallback
// query instead of a write. Handle never panics.
func (l *Listener) Handle(ctx context.Context, p track.Payload) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("🛡️  Recovered from panic in notification handler: %v", r)
		}
	}()

	state := p.State()

	var rec *track.Record
	if state != track.Stopped {
		r := track.Normalize(p)
		rec = &r
	}

	block, err := render.Track(rec, state)
	if errors.Is(err, render.ErrInsufficient) {
		if l.Debug {
			log.Printf("🔄 Incomplete %s notification, querying player", state)
		}
		if l.fallback == nil {
			return
		}
		if err := l.fallback.Run(ctx); err != nil && l.Debug {
			log.Printf("⚠️  Fallback query failed: %v", err)
		}
		return
	}

	if l.Debug {
		if rec != nil {
			log.Printf("🎵 %s: %s - %s", state, rec.Artist, rec.Title)
		} else {
			log.Printf("⏹  %s", state)
		}
	}
	if err := l.out.Write(block); err != nil {
		log.Printf("❌ %v", err)
	}
}
