package amrplot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Formats lists the formats Export accepts.
var Formats = []string{"png", "svg", "pdf"}

// Export draws p on a Size square canvas in format.
func Export(p *plot.Plot, format string) ([]byte, error) {
	var wt io.WriterTo
	switch strings.ToLower(format) {
	case "png":
		img := vgimg.NewWith(vgimg.UseWH(Size, Size), vgimg.UseDPI(DPI))
		p.Draw(draw.New(img))
		wt = vgimg.PngCanvas{Canvas: img}
	case "svg":
		svg := vgsvg.New(Size, Size)
		p.Draw(draw.New(svg))
		wt = svg
	case "pdf":
		pdf := vgpdf.New(Size, Size)
		p.Draw(draw.New(pdf))
		wt = pdf
	default:
		return nil, fmt.Errorf("unsupported image format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}

	buf := &bytes.Buffer{}
	if _, err := wt.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
