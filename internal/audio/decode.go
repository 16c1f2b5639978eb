package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Extensions lists the file extensions the decoders accept.
var Extensions = []string{".mp3", ".wav", ".ogg", ".oga"}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// nopCloser wraps an in-memory reader to satisfy io.ReadCloser. Seek stays visible so the decoders can seek.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// track bundles a decoded source.
type track struct {
	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// seconds returns the decoded length.
func (t *track) seconds() float64 {
	return t.format.SampleRate.D(t.streamer.Len()).Seconds()
}

func (t *track) Close() {
	if t.streamer != nil {
		t.streamer.Close()
	}
}

// openTrack reads source into memory and decodes it.
func openTrack(source string) (*track, error) {
	if !Supported(source) {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, filepath.Ext(source))
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	streamer, format, err := decode(nopCloser{bytes.NewReader(data)}, filepath.Ext(source))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return &track{source: source, streamer: streamer, format: format}, nil
}

func decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return mp3.Decode(rc)
	case ".wav":
		return wav.Decode(rc)
	case ".ogg", ".oga":
		return vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, ext)
	}
}
