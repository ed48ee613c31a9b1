// Package track holds the canonical now-playing record and the
// normalization of raw player payloads into it.
package track

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// State is the player state. Notification states pass through as given, so
// values other than the constants below can occur.
type State string

const (
	Stopped        State = "Stopped"
	Playing        State = "Playing"
	Paused         State = "Paused"
	FastForwarding State = "Fast Forwarding"
	Rewinding      State = "Rewinding"
	Unknown        State = "Unknown"
)

// Record is the canonical track description. A zero field is absent.
type Record struct {
	Artist      string
	AlbumArtist string
	Title       string
	Album       string
	TrackNumber int
	Duration    time.Duration
	Year        int
}

// Displayable reports whether the record has enough data to render.
func (r Record) Displayable() bool {
	return r.Artist != "" && r.Title != ""
}

// Keys of the playerInfo notification userInfo.
const (
	KeyPlayerState = "Player State"
	KeyArtist      = "Artist"
	KeyAlbumArtist = "Album Artist"
	KeyName        = "Name"
	KeyAlbum       = "Album"
	KeyTrackNumber = "Track Number"
	KeyTotalTime   = "Total Time"
	KeyYear        = "Year"
)

// Payload is a loosely typed notification userInfo dictionary.
type Payload map[string]any

// String returns the value for key if it is a non-empty string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Int returns the value for key as an integer. Integers, floats, json.Number
// and numeric strings are accepted; anything else is reported as absent.
func (p Payload) Int(key string) (int64, bool) {
	switch v := p[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case float64:
		return floatInt(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return floatInt(f)
		}
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatInt(f)
		}
	}
	return 0, false
}

func floatInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// State returns the player state carried by the payload.
func (p Payload) State() State {
	s, _ := p.String(KeyPlayerState)
	return ParseState(s)
}

// ParseState maps a notification state string. Unrecognized strings are
// returned unchanged; the empty string is Unknown.
func ParseState(s string) State {
	if s == "" {
		return Unknown
	}
	return State(s)
}

// Normalize builds a record from a notification payload.
func Normalize(p Payload) Record {
	var r Record
	r.Artist, _ = p.String(KeyArtist)
	r.AlbumArtist, _ = p.String(KeyAlbumArtist)
	r.Title, _ = p.String(KeyName)
	r.Album, _ = p.String(KeyAlbum)
	if n, ok := p.Int(KeyTrackNumber); ok && n > 0 {
		r.TrackNumber = int(n)
	}
	if ms, ok := p.Int(KeyTotalTime); ok && ms/1000 > 0 {
		r.Duration = time.Duration(ms/1000) * time.Second
	}
	if y, ok := p.Int(KeyYear); ok && y > 0 {
		r.Year = int(y)
	}
	return r.withDefaults()
}

// Fields are the typed current track properties read through a scripting
// bridge. Duration is in seconds.
type Fields struct {
	Artist      string  `json:"artist"`
	AlbumArtist string  `json:"albumArtist"`
	Name        string  `json:"name"`
	Album       string  `json:"album"`
	TrackNumber int     `json:"trackNumber"`
	Duration    float64 `json:"duration"`
	Year        int     `json:"year"`
}

// FromFields builds a record from bridge track properties.
func FromFields(f Fields) Record {
	r := Record{
		Artist:      f.Artist,
		AlbumArtist: f.AlbumArtist,
		Title:       f.Name,
		Album:       f.Album,
	}
	if f.TrackNumber > 0 {
		r.TrackNumber = f.TrackNumber
	}
	if secs, ok := floatInt(f.Duration); ok && secs > 0 {
		r.Duration = time.Duration(secs) * time.Second
	}
	if f.Year > 0 {
		r.Year = f.Year
	}
	return r.withDefaults()
}

func (r Record) withDefaults() Record {
	if r.AlbumArtist == "" {
		r.AlbumArtist = r.Artist
	}
	return r
}

// scriptStates covers the player state enumeration of the Music and iTunes
// scripting dictionaries, as four-char codes and as their names.
var scriptStates = map[string]State{
	"kPSS":            Stopped,
	"kPSP":            Playing,
	"kPSp":            Paused,
	"kPSF":            FastForwarding,
	"kPSR":            Rewinding,
	"stopped":         Stopped,
	"playing":         Playing,
	"paused":          Paused,
	"fast forwarding": FastForwarding,
	"rewinding":       Rewinding,
}

// StateFromCode maps a scripting bridge player state code.
func StateFromCode(code string) State {
	if s, ok := scriptStates[code]; ok {
		return s
	}
	return Unknown
}

// FourCharCode renders an OSType as its four-character string.
func FourCharCode(v uint32) string {
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
