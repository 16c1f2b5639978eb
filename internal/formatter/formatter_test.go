package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	th "github.com/desertthunder/tapedeck/internal/testing"
)

func testPlaylist() models.Playlist {
	return models.Playlist{
		Name: "Test Playlist",
		Tracks: []models.Track{
			{
				Title:          "Song One",
				Artist:         "Artist One",
				Source:         "music/one.mp3",
				Cover:          "music/one.jpg",
				Duration:       180,
				DurationSource: models.DurationProbed,
			},
			{
				Title:  "Song | Two",
				Source: "music/two.ogg",
			},
		},
	}
}

func TestExporters(t *testing.T) {
	pl := testPlaylist()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(pl)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Index,Title,Artist,Duration,Seconds,Source,Cover") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Song One,Artist One,3:00,180,music/one.mp3,music/one.jpg") {
			t.Errorf("CSV missing track1 row, got: %s", output)
		}
		if !strings.Contains(output, "2,Song | Two,,--:--,,music/two.ogg,") {
			t.Errorf("CSV missing track2 row, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(pl)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Test Playlist",
			"![Cover](music/one.jpg)",
			"**Tracks**: 2",
			"**Total time**: 3:00+",
			"| 1 | Song One | Artist One | 3:00 |",
			`| 2 | Song \| Two |  | --:-- |`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(pl)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"Playlist: Test Playlist",
			"Tracks: 2 (3:00+)",
			"1. Artist One - Song One [3:00]",
			"2. Song | Two [--:--]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Text missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToTOML", func(t *testing.T) {
		data, err := ExportToTOML(pl)
		if err != nil {
			t.Fatalf("ExportToTOML failed: %v", err)
		}

		var decoded models.Playlist
		if _, err := toml.Decode(string(data), &decoded); err != nil {
			t.Fatalf("output is not valid TOML: %v\n%s", err, data)
		}
		if decoded.Name != pl.Name || decoded.Len() != 2 || decoded.Tracks[0].Source != "music/one.mp3" {
			t.Errorf("decoded = %+v", decoded)
		}
		if decoded.Tracks[0].HasDuration() {
			t.Error("durations should not be written to playlist files")
		}
	})

	t.Run("complete total has no marker", func(t *testing.T) {
		full := testPlaylist()
		full.Tracks = full.Tracks[:1]
		if got := totalString(full); got != "3:00" {
			t.Errorf("totalString() = %q", got)
		}
	})
}

func TestExport(t *testing.T) {
	pl := testPlaylist()

	tests := []struct {
		format string
		want   string
	}{
		{"", "Playlist: "},
		{"text", "Playlist: "},
		{"txt", "Playlist: "},
		{"markdown", "# Test Playlist"},
		{"MD", "# Test Playlist"},
		{"csv", "Index,Title"},
		{"toml", `name = "Test Playlist"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Export(pl, tt.format)
			if err != nil {
				t.Fatalf("Export(%q) error = %v", tt.format, err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Export(%q) missing %q", tt.format, tt.want)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		if _, err := Export(pl, "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("error = %v, want ErrInvalidFlag", err)
		}
	})
}

func TestWriters(t *testing.T) {
	pl := testPlaylist()

	t.Run("Write", func(t *testing.T) {
		var sb strings.Builder
		if err := Write(&sb, pl, FormatText); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.HasPrefix(sb.String(), "Playlist: Test Playlist") {
			t.Errorf("got %q", sb.String())
		}
	})

	t.Run("Write propagates writer errors", func(t *testing.T) {
		if err := Write(&th.FWriter{}, pl, FormatText); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("Write rejects unknown format", func(t *testing.T) {
		var sb strings.Builder
		if err := Write(&sb, pl, "xml"); err == nil || sb.Len() != 0 {
			t.Errorf("err = %v, wrote %d bytes", err, sb.Len())
		}
	})

	t.Run("WriteFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.md")
		if err := WriteFile(pl, FormatMarkdown, path); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "# Test Playlist") {
			t.Errorf("content = %q", content)
		}
	})

	t.Run("WriteFile to missing directory", func(t *testing.T) {
		if err := WriteFile(pl, FormatText, filepath.Join(t.TempDir(), "missing", "out.txt")); err == nil {
			t.Error("expected error")
		}
	})
}
