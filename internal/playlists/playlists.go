// Package playlists builds declared playlists from TOML files, audio directories and single audio files.
//
// A playlist file is TOML or YAML. A TOML playlist looks like:
//
//	name = "Road trip"
//
//	[[tracks]]
//	title  = "Intro"
//	artist = "Someone"
//	src    = "intro.mp3"  # relative to the playlist file
//	cover  = "intro.jpg"  # optional
//
// and the YAML form uses the same keys under a top-level tracks list.
//
// A directory yields one track per supported audio file in file-name order. A file named "Artist - Title.ext" is
// split into artist and title; an image named cover.* becomes the cover of every track.
package playlists

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/tapedeck/internal/audio"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"gopkg.in/yaml.v3"
)

var (
	coverExtensions    = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	playlistExtensions = []string{".toml", ".yaml", ".yml"}
)

// Load reads the playlist at path, dispatching on whether it is a directory, a TOML file or an audio file.
func Load(path string) (models.Playlist, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to open playlist: %w", err)
	}

	switch {
	case info.IsDir():
		return FromDir(path)
	case isPlaylistFile(path):
		return FromFile(path)
	case audio.Supported(path):
		return validate(models.Playlist{
			Name:   trackName(path),
			Tracks: []models.Track{trackFromFile(path, "")},
		})
	default:
		return models.Playlist{}, fmt.Errorf("%w: %s is neither a directory, a playlist file nor an audio file", shared.ErrInvalidPlaylist, path)
	}
}

// FromFile parses a TOML or YAML playlist. Relative sources and covers resolve against the file's directory.
func FromFile(path string) (models.Playlist, error) {
	var pl models.Playlist
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return models.Playlist{}, fmt.Errorf("failed to read playlist: %w", err)
		}
		if err := yaml.Unmarshal(data, &pl); err != nil {
			return models.Playlist{}, fmt.Errorf("%w: %v", shared.ErrInvalidPlaylist, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &pl); err != nil {
			return models.Playlist{}, fmt.Errorf("%w: %v", shared.ErrInvalidPlaylist, err)
		}
	}

	base := filepath.Dir(path)
	if pl.Name == "" {
		pl.Name = trackName(path)
	}
	for i := range pl.Tracks {
		t := &pl.Tracks[i]
		if t.Source == "" {
			return models.Playlist{}, fmt.Errorf("%w: track %d has no src", shared.ErrInvalidPlaylist, i+1)
		}
		t.Source = resolve(base, t.Source)
		if t.Cover != "" {
			t.Cover = resolve(base, t.Cover)
		}
		if t.Title == "" {
			t.Title = trackName(t.Source)
		}
		t.Duration, t.DurationSource = 0, models.DurationUnknown
	}
	return validate(pl)
}

// FromDir scans a directory for audio files. Subdirectories are not descended into.
func FromDir(dir string) (models.Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to read playlist directory: %w", err)
	}

	var cover string
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case audio.Supported(name):
			files = append(files, filepath.Join(dir, name))
		case cover == "" && strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), "cover") && slices.Contains(coverExtensions, ext):
			cover = filepath.Join(dir, name)
		}
	}

	pl := models.Playlist{Name: filepath.Base(filepath.Clean(dir))}
	for _, f := range files {
		pl.Tracks = append(pl.Tracks, trackFromFile(f, cover))
	}
	return validate(pl)
}

func isPlaylistFile(path string) bool {
	return slices.Contains(playlistExtensions, strings.ToLower(filepath.Ext(path)))
}

func trackFromFile(path, cover string) models.Track {
	t := models.Track{Source: path, Cover: cover, Title: trackName(path)}
	if artist, title, ok := strings.Cut(t.Title, " - "); ok {
		t.Artist, t.Title = strings.TrimSpace(artist), strings.TrimSpace(title)
	}
	return t
}

func trackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func validate(pl models.Playlist) (models.Playlist, error) {
	if pl.Len() == 0 {
		return models.Playlist{}, fmt.Errorf("%w: %s", shared.ErrEmptyPlaylist, pl.Name)
	}
	return pl, nil
}
