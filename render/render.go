// Package render formats now-playing state into SwiftBar streamable blocks.
package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-music-notify/track"
)

// ErrInsufficient is returned when a record lacks an artist or title. The
// caller is expected to query the player instead.
var ErrInsufficient = errors.New("insufficient track metadata")

const (
	separator = "~~~"
	menuBreak = "---"
	note      = "♫"

	playGlyph  = " :play.fill:"
	pauseGlyph = " :pause.fill:"
)

// Placeholder is the block shown before any player state is known.
func Placeholder() string {
	return separator + "\n" + note + " \ufe0e | size=12\n"
}

// Stopped is the block shown while the player is stopped.
func Stopped() string {
	return separator + "\n" + note + " :stop.fill: | size=12 sfsize=11\n"
}

// Track renders the now-playing block for rec in the given state.
func Track(rec *track.Record, state track.State) (string, error) {
	if state == track.Stopped {
		return Stopped(), nil
	}
	if rec == nil || !rec.Displayable() {
		return "", ErrInsufficient
	}

	title := label(rec.Title)
	artist := label(rec.Artist)

	albumArtist := rec.AlbumArtist
	if albumArtist == "" {
		albumArtist = rec.Artist
	}

	album := label(rec.Album)
	if rec.Year > 0 {
		album = strings.TrimSpace(fmt.Sprintf("%s (%d)", album, rec.Year))
	}

	detail := title
	if d := Duration(rec.Duration); d != "" {
		detail += " (" + d + ")"
	}

	var sb strings.Builder
	sb.WriteString(separator + "\n")
	sb.WriteString(fmt.Sprintf("%s%s %s - *%s* | size=12 md=True sfsize=11\n", note, glyph(state), title, artist))
	sb.WriteString(menuBreak + "\n")
	sb.WriteString(fmt.Sprintf("%s | sfimage=play.circle\n", album))
	sb.WriteString(fmt.Sprintf("%s | sfimage=music.note\n", detail))
	sb.WriteString(fmt.Sprintf("%s | sfimage=music.mic\n", label(albumArtist)))
	return sb.String(), nil
}

func glyph(state track.State) string {
	switch state {
	case track.Playing:
		return playGlyph
	case track.Paused:
		return pauseGlyph
	default:
		return ""
	}
}

var redundantHour = regexp.MustCompile(`^0:0?`)

// Duration formats d as H:MM:SS with a zero hour and one leading zero
// minute digit stripped: 59s is "0:59", 65s is "1:05", 3661s is "1:01:01".
// Zero or negative durations render as the empty string.
func Duration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs <= 0 {
		return ""
	}
	full := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	return redundantHour.ReplaceAllString(full, "")
}

// label keeps a field value on a single output line.
func label(s string) string {
	return lineBreaks.Replace(s)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
