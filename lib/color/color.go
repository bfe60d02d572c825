// Package color resolves the colors used to draw model graphs.
package color

import (
	"fmt"
	stdcolor "image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Pastel1 is the ColorBrewer Pastel1 qualitative palette. Node kinds index into it.
var Pastel1 = []string{
	"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
	"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
}

// Tab10 is the Tableau 10 qualitative palette. Edge kinds index into it.
var Tab10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Pick returns palette[i], wrapping around when i is out of range.
func Pick(palette []string, i int) string {
	if len(palette) == 0 {
		return "#000000"
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// Parse parses any CSS color into an image/color value with the given alpha.
func Parse(colorString string, alpha float64) (stdcolor.NRGBA, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return stdcolor.NRGBA{}, fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: uint8(alpha*c.A*255 + 0.5)}, nil
}

// MustParse is Parse for the palette constants above.
func MustParse(colorString string, alpha float64) stdcolor.NRGBA {
	c, err := Parse(colorString, alpha)
	if err != nil {
		panic(err)
	}
	return c
}

