package query

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-music-notify/bridge"
	"go-music-notify/output"
	"go-music-notify/render"
	"go-music-notify/track"
)

// Probe is the body of the child process: it reads the player once and
// writes at most one block.
type Probe struct {
	Bridge     bridge.Bridge
	Identities []string
	Out        *output.Writer

	Debug bool
}

// Run finds the first running player among the identities and renders its
// state. No running player means no output and no error. Incomplete track
// data is not retried.
func (p *Probe) Run(ctx context.Context) error {
	app, identity, err := p.find(ctx)
	if err != nil {
		return err
	}
	if app == nil {
		if p.Debug {
			log.Printf("⏹  No running player among %v", p.Identities)
		}
		return nil
	}

	state := track.StateFromCode(app.PlayerState())

	var rec *track.Record
	if state != track.Stopped {
		r := track.FromFields(app.CurrentTrack())
		rec = &r
	}

	block, err := render.Track(rec, state)
	if errors.Is(err, render.ErrInsufficient) {
		if p.Debug {
			log.Printf("⚠️  %s reported %s without artist or title", identity, state)
		}
		return nil
	}

	if p.Debug && rec != nil {
		log.Printf("🎵 %s %s: %s - %s", identity, state, rec.Artist, rec.Title)
	}
	return p.Out.Write(block)
}

// find returns the first running application. Lookup failures only
// surface when no identity yields a running player.
func (p *Probe) find(ctx context.Context) (bridge.Application, string, error) {
	var errs []error
	for _, id := range p.Identities {
		app, err := p.Bridge.Application(ctx, id)
		if errors.Is(err, bridge.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to look up %s: %w", id, err))
			continue
		}
		if app.IsRunning() {
			return app, id, nil
		}
	}
	return nil, "", errors.Join(errs...)
}
