package playlists

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tapedeck/internal/shared"
	tu "github.com/desertthunder/tapedeck/internal/testing"
)

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("parses tracks and resolves paths", func(t *testing.T) {
		path := filepath.Join(dir, "trip.toml")
		tu.MustWriteFile(t, path, `
name = "Road trip"

[[tracks]]
title = "Intro"
artist = "Band"
src = "intro.mp3"
cover = "art/intro.jpg"

[[tracks]]
src = "/abs/Outro.ogg"
`)

		pl, err := FromFile(path)
		if err != nil {
			t.Fatalf("FromFile() error = %v", err)
		}
		if pl.Name != "Road trip" || pl.Len() != 2 {
			t.Fatalf("playlist = %+v", pl)
		}
		first := pl.Tracks[0]
		if first.Source != filepath.Join(dir, "intro.mp3") || first.Cover != filepath.Join(dir, "art/intro.jpg") {
			t.Errorf("paths = %q, %q", first.Source, first.Cover)
		}
		if first.HasDuration() {
			t.Error("duration set on load")
		}
		second := pl.Tracks[1]
		if second.Source != "/abs/Outro.ogg" || second.Title != "Outro" || second.Cover != "" {
			t.Errorf("second = %+v", second)
		}
	})

	t.Run("parses yaml", func(t *testing.T) {
		path := filepath.Join(dir, "night.yml")
		tu.MustWriteFile(t, path, `name: Night drive
tracks:
  - title: Dusk
    artist: Band
    src: dusk.ogg
  - src: sub/Dawn.mp3
    cover: dawn.png
`)

		pl, err := FromFile(path)
		if err != nil {
			t.Fatalf("FromFile() error = %v", err)
		}
		if pl.Name != "Night drive" || pl.Len() != 2 {
			t.Fatalf("playlist = %+v", pl)
		}
		if pl.Tracks[0].Title != "Dusk" || pl.Tracks[0].Source != filepath.Join(dir, "dusk.ogg") {
			t.Errorf("first = %+v", pl.Tracks[0])
		}
		if pl.Tracks[1].Title != "Dawn" || pl.Tracks[1].Cover != filepath.Join(dir, "dawn.png") {
			t.Errorf("second = %+v", pl.Tracks[1])
		}
	})

	t.Run("name defaults to file name", func(t *testing.T) {
		path := filepath.Join(dir, "unnamed.toml")
		tu.MustWriteFile(t, path, "[[tracks]]\nsrc = \"a.mp3\"\n")
		pl, err := FromFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if pl.Name != "unnamed" {
			t.Errorf("Name = %q", pl.Name)
		}
	})

	t.Run("rejects invalid files", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			want    error
		}{
			{"syntax error", "[[tracks]\n", shared.ErrInvalidPlaylist},
			{"missing src", "[[tracks]]\ntitle = \"x\"\n", shared.ErrInvalidPlaylist},
			{"no tracks", "name = \"empty\"\n", shared.ErrEmptyPlaylist},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(dir, "bad.toml")
				tu.MustWriteFile(t, path, tt.content)
				if _, err := FromFile(path); !errors.Is(err, tt.want) {
					t.Errorf("error = %v, want %v", err, tt.want)
				}
			})
		}
	})
}

func TestFromDir(t *testing.T) {
	t.Run("one track per audio file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "Album")
		if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"02 Second.wav", "Artist - 01 First.mp3", "notes.txt", "Cover.PNG", "nested/x.mp3"} {
			tu.MustWriteFile(t, filepath.Join(dir, name), "")
		}

		pl, err := FromDir(dir)
		if err != nil {
			t.Fatalf("FromDir() error = %v", err)
		}
		if pl.Name != "Album" || pl.Len() != 2 {
			t.Fatalf("playlist = %+v", pl)
		}

		want := []struct{ title, artist string }{{"02 Second", ""}, {"01 First", "Artist"}}
		for i, w := range want {
			tr := pl.Tracks[i]
			if tr.Title != w.title || tr.Artist != w.artist {
				t.Errorf("track %d = %q/%q, want %q/%q", i, tr.Title, tr.Artist, w.title, w.artist)
			}
			if tr.Cover != filepath.Join(dir, "Cover.PNG") {
				t.Errorf("track %d cover = %q", i, tr.Cover)
			}
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if _, err := FromDir(t.TempDir()); !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("error = %v, want ErrEmptyPlaylist", err)
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "Solo.mp3")
	tu.MustWriteFile(t, song, "")
	list := filepath.Join(dir, "list.toml")
	tu.MustWriteFile(t, list, "[[tracks]]\nsrc = \"Solo.mp3\"\n")
	yml := filepath.Join(dir, "list.yaml")
	tu.MustWriteFile(t, yml, "tracks:\n  - src: Solo.mp3\n")
	other := filepath.Join(dir, "readme.md")
	tu.MustWriteFile(t, other, "")

	tests := []struct {
		name    string
		path    string
		wantLen int
		wantErr bool
	}{
		{"directory", dir, 1, false},
		{"toml file", list, 1, false},
		{"yaml file", yml, 1, false},
		{"single audio file", song, 1, false},
		{"other file", other, 0, true},
		{"missing", filepath.Join(dir, "nope"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl, err := Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if pl.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", pl.Len(), tt.wantLen)
			}
		})
	}
}
