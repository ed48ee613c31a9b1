package mpdplayer

import (
	"testing"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"go-music-notify/track"
)

func TestPayloadNormalizes(t *testing.T) {
	status := mpd.Attrs{"state": "play", "duration": "429.120"}
	song := mpd.Attrs{
		"file":   "Air/Moon Safari/01 La Femme d'Argent.flac",
		"Artist": "Air",
		"Title":  "La Femme d'Argent",
		"Album":  "Moon Safari",
		"Track":  "1/10",
		"Date":   "1998-01-16",
		"Time":   "429",
	}

	p := Payload(status, song)
	if got := p.State(); got != track.Playing {
		t.Errorf("state = %q", got)
	}

	got := track.Normalize(p)
	want := track.Record{
		Artist:      "Air",
		AlbumArtist: "Air",
		Title:       "La Femme d'Argent",
		Album:       "Moon Safari",
		TrackNumber: 1,
		Duration:    429 * time.Second,
		Year:        1998,
	}
	if got != want {
		t.Errorf("Normalize(Payload()) = %+v, want %+v", got, want)
	}
}

func TestPayloadStates(t *testing.T) {
	tests := map[string]track.State{
		"play":  track.Playing,
		"pause": track.Paused,
		"stop":  track.Stopped,
		"":      track.Unknown,
	}
	for state, want := range tests {
		if got := Payload(mpd.Attrs{"state": state}, mpd.Attrs{}).State(); got != want {
			t.Errorf("state %q = %q, want %q", state, got, want)
		}
	}
}

func TestPayloadMissingTitle(t *testing.T) {
	p := Payload(mpd.Attrs{"state": "play"}, mpd.Attrs{"file": "stream.mp3", "Artist": "Air"})
	if track.Normalize(p).Displayable() {
		t.Error("song without a title is displayable")
	}
	if _, ok := p[track.KeyName]; ok {
		t.Error("empty title stored in payload")
	}
}

func TestAppFields(t *testing.T) {
	a := newApp(mpd.Attrs{"state": "pause"}, mpd.Attrs{
		"Artist":      "Air",
		"AlbumArtist": "Air",
		"Title":       "Talisman",
		"Album":       "Moon Safari",
		"Track":       "5",
		"Date":        "1998",
		"Time":        "256",
	})

	if !a.IsRunning() {
		t.Error("IsRunning() = false")
	}
	if got := track.StateFromCode(a.PlayerState()); got != track.Paused {
		t.Errorf("state = %q", got)
	}
	want := track.Fields{Artist: "Air", AlbumArtist: "Air", Name: "Talisman", Album: "Moon Safari", TrackNumber: 5, Duration: 256, Year: 1998}
	if got := a.CurrentTrack(); got != want {
		t.Errorf("CurrentTrack() = %+v, want %+v", got, want)
	}

	if got := track.StateFromCode(newApp(mpd.Attrs{"state": "odd"}, nil).PlayerState()); got != track.Unknown {
		t.Errorf("unknown MPD state = %q", got)
	}
}

func TestHelpers(t *testing.T) {
	if n := trackNumber("x/12"); n != 0 {
		t.Errorf("trackNumber = %d", n)
	}
	if y := year("98"); y != 0 {
		t.Errorf("year = %d", y)
	}
	if d := duration(mpd.Attrs{}, mpd.Attrs{"duration": "bogus", "Time": "61"}); d != 61 {
		t.Errorf("duration = %v", d)
	}
}
