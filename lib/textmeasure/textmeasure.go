// Package textmeasure measures label text so renderers can reserve room for it.
package textmeasure

import (
	"math"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Ruler measures strings set in Go Regular at a fixed size and resolution.
type Ruler struct {
	mu   sync.Mutex
	face font.Face

	// LineHeight is the distance between two baselines in pixels.
	LineHeight float64
}

// NewRuler returns a Ruler for size points at dpi.
func NewRuler(size, dpi float64) (*Ruler, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	m := face.Metrics()
	return &Ruler{
		face:       face,
		LineHeight: fixedToFloat(m.Height),
	}, nil
}

// Measure returns the width and height in pixels of s. Newlines start new lines.
func (r *Ruler) Measure(s string) (width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := strings.Split(s, "\n")
	for _, l := range lines {
		width = math.Max(width, fixedToFloat(font.MeasureString(r.face, l)))
	}
	return math.Ceil(width), math.Ceil(r.LineHeight * float64(len(lines)))
}

// MaxWidth returns the widest of labels in pixels.
func (r *Ruler) MaxWidth(labels []string) float64 {
	w := 0.
	for _, l := range labels {
		lw, _ := r.Measure(l)
		w = math.Max(w, lw)
	}
	return w
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
