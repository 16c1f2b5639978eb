// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
)

// MockEngine is a test double for [player.Engine] that records every call.
type MockEngine struct {
	Loaded   []string  // Sources passed to Load, in order
	Seeks    []float64 // Positions passed to SetCurrentTime, in order
	Plays    int
	Pauses   int
	Time     float64 // Value returned by CurrentTime
	Vol      float64
	Mute     bool
	LoadErr  error
	PlayErr  error
	SeekErr  error
	VolCalls []float64
}

// NewMockEngine creates a MockEngine at full volume.
func NewMockEngine() *MockEngine { return &MockEngine{Vol: 1} }

func (m *MockEngine) Load(source string) error {
	m.Loaded = append(m.Loaded, source)
	m.Time = 0
	return m.LoadErr
}

func (m *MockEngine) Play() error {
	if m.PlayErr != nil {
		return m.PlayErr
	}
	m.Plays++
	return nil
}

func (m *MockEngine) Pause()               { m.Pauses++ }
func (m *MockEngine) CurrentTime() float64 { return m.Time }

func (m *MockEngine) SetCurrentTime(seconds float64) error {
	if m.SeekErr != nil {
		return m.SeekErr
	}
	m.Seeks = append(m.Seeks, seconds)
	m.Time = seconds
	return nil
}

func (m *MockEngine) Volume() float64 { return m.Vol }

func (m *MockEngine) SetVolume(v float64) {
	m.VolCalls = append(m.VolCalls, v)
	m.Vol = v
}

func (m *MockEngine) Muted() bool        { return m.Mute }
func (m *MockEngine) SetMuted(mute bool) { m.Mute = mute }

// LastLoaded returns the most recent source passed to Load.
func (m *MockEngine) LastLoaded() string {
	if len(m.Loaded) == 0 {
		return ""
	}
	return m.Loaded[len(m.Loaded)-1]
}

// MockProber is a test double for duration probing keyed by source.
type MockProber struct {
	mu        sync.Mutex
	Durations map[string]float64
	Errors    map[string]error
	Calls     []string
	Block     chan struct{} // When set, Probe waits on it or on ctx
}

func (m *MockProber) Probe(ctx context.Context, source string) (float64, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, source)
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if err, ok := m.Errors[source]; ok {
		return 0, err
	}
	if d, ok := m.Durations[source]; ok {
		return d, nil
	}
	return 0, errors.New("no such source")
}

// CallCount returns the number of Probe calls so far.
func (m *MockProber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
