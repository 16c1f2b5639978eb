package audio

import "context"

// Prober resolves track durations by decoding file headers.
type Prober struct{}

// NewProber creates a Prober.
func NewProber() *Prober { return &Prober{} }

// Probe returns the length of source in seconds.
func (p *Prober) Probe(ctx context.Context, source string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t, err := openTrack(source)
	if err != nil {
		return 0, err
	}
	defer t.Close()
	return t.seconds(), nil
}
