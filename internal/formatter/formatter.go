// package formatter renders playlists with their resolved durations to various formats (CSV, Markdown, plain text, TOML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/samber/lo"
)

// Supported output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatTOML     = "toml"
)

// Formats lists every accepted format name.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatTOML}

const unknownDuration = "--:--"

// ExportToCSV converts a Playlist to CSV format with columns: Index, Title, Artist, Duration, Seconds, Source, Cover
func ExportToCSV(pl models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Title", "Artist", "Duration", "Seconds", "Source", "Cover"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range pl.Tracks {
		seconds := ""
		if track.HasDuration() {
			seconds = strconv.FormatFloat(track.Duration, 'f', 0, 64)
		}
		record := []string{
			strconv.Itoa(i + 1),
			track.Title,
			track.Artist,
			durationString(track),
			seconds,
			track.Source,
			track.Cover,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Playlist to Markdown format with the first track's cover as heading image
func ExportToMarkdown(pl models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", pl.Name))

	if pl.Len() > 0 && pl.Tracks[0].Cover != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", pl.Tracks[0].Cover))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", pl.Len()))
	buf.WriteString(fmt.Sprintf("**Total time**: %s\n\n", totalString(pl)))

	buf.WriteString("## Tracks\n\n")
	buf.WriteString("| # | Title | Artist | Duration |\n")
	buf.WriteString("|---|-------|--------|----------|\n")
	for i, track := range pl.Tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, escapeCell(track.Title), escapeCell(track.Artist), durationString(track)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Playlist to plain text format
func ExportToText(pl models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", pl.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d (%s)\n\n", pl.Len(), totalString(pl)))

	for i, track := range pl.Tracks {
		name := track.Title
		if track.Artist != "" {
			name = fmt.Sprintf("%s - %s", track.Artist, track.Title)
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, name, durationString(track)))
	}

	return buf.Bytes(), nil
}

// ExportToTOML converts a Playlist to the TOML playlist file format, so a directory scan can be saved and edited.
func ExportToTOML(pl models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(pl); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders pl in the named format.
func Export(pl models.Playlist, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "txt", "":
		return ExportToText(pl)
	case FormatMarkdown, "md":
		return ExportToMarkdown(pl)
	case FormatCSV:
		return ExportToCSV(pl)
	case FormatTOML:
		return ExportToTOML(pl)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Write renders pl in the named format to w.
func Write(w io.Writer, pl models.Playlist, format string) error {
	data, err := Export(pl, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteFile renders pl in the named format to the file at path.
func WriteFile(pl models.Playlist, format, path string) error {
	data, err := Export(pl, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func durationString(t models.Track) string {
	if !t.HasDuration() {
		return unknownDuration
	}
	return shared.FormatTime(t.Duration)
}

// totalString sums the known durations. Unknown tracks are flagged with a trailing "+".
func totalString(pl models.Playlist) string {
	known := lo.Filter(pl.Tracks, func(t models.Track, _ int) bool { return t.HasDuration() })
	s := shared.FormatTime(lo.SumBy(known, func(t models.Track) float64 { return t.Duration }))
	if len(known) < pl.Len() {
		s += "+"
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
