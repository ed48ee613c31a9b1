// Package bridge is the scripting-bridge view of a media player: find an
// application by identity, check that it runs, and read its state and
// current track.
package bridge

import (
	"context"
	"errors"

	"go-music-notify/track"
)

// Bundle identities of the macOS players, in lookup order.
const (
	MusicBundleID  = "com.apple.Music"
	ITunesBundleID = "com.apple.iTunes"
)

// MusicIdentities lists the macOS player identities, primary first.
var MusicIdentities = []string{MusicBundleID, ITunesBundleID}

// ErrNotFound is returned when no application exists for an identity.
var ErrNotFound = errors.New("application not found")

// Bridge resolves player applications.
type Bridge interface {
	// Application returns the application for the identity, or ErrNotFound.
	Application(ctx context.Context, identity string) (Application, error)
}

// Application is the scripting interface of one player.
type Application interface {
	IsRunning() bool
	// PlayerState returns the raw state code, see track.StateFromCode.
	PlayerState() string
	CurrentTrack() track.Fields
}
