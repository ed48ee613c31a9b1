// Package mpdplayer drives the now-playing pipeline from a Music Player
// Daemon: its idle watcher stands in for the playerInfo notification and its
// status commands for the scripting bridge.
package mpdplayer

import (
	"strconv"
	"strings"

	"github.com/fhs/gompd/v2/mpd"

	"go-music-notify/track"
)

// notificationStates maps MPD's state to playerInfo "Player State" values.
var notificationStates = map[string]string{
	"play":  "Playing",
	"pause": "Paused",
	"stop":  "Stopped",
}

// scriptStates maps MPD's state to scripting dictionary state names.
var scriptStates = map[string]string{
	"play":  "playing",
	"pause": "paused",
	"stop":  "stopped",
}

// Payload converts MPD status and current song attributes into a payload
// keyed like the playerInfo notification.
func Payload(status, song mpd.Attrs) track.Payload {
	p := track.Payload{}

	if state, ok := notificationStates[status["state"]]; ok {
		p[track.KeyPlayerState] = state
	} else if status["state"] != "" {
		p[track.KeyPlayerState] = status["state"]
	}

	set := func(key, value string) {
		if value != "" {
			p[key] = value
		}
	}
	set(track.KeyArtist, song["Artist"])
	set(track.KeyAlbumArtist, song["AlbumArtist"])
	set(track.KeyName, song["Title"])
	set(track.KeyAlbum, song["Album"])

	if n := trackNumber(song["Track"]); n > 0 {
		p[track.KeyTrackNumber] = n
	}
	if secs := duration(status, song); secs > 0 {
		p[track.KeyTotalTime] = int64(secs * 1000)
	}
	if y := year(song["Date"]); y > 0 {
		p[track.KeyYear] = y
	}
	return p
}

// Fields converts the current song attributes into bridge track fields.
func Fields(status, song mpd.Attrs) track.Fields {
	return track.Fields{
		Artist:      song["Artist"],
		AlbumArtist: song["AlbumArtist"],
		Name:        song["Title"],
		Album:       song["Album"],
		TrackNumber: trackNumber(song["Track"]),
		Duration:    duration(status, song),
		Year:        year(song["Date"]),
	}
}

// trackNumber parses "3" and "3/12".
func trackNumber(s string) int {
	s, _, _ = strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// duration returns the song length in seconds. Newer servers report a
// fractional "duration"; older ones only the whole-second "Time".
func duration(status, song mpd.Attrs) float64 {
	for _, v := range []string{song["duration"], status["duration"], song["Time"]} {
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return 0
}

// year takes the leading year of a "Date" tag such as "1998-01-16".
func year(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
