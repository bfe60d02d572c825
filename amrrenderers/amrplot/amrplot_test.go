package amrplot_test

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts/amrshell"
	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/amrrenderers/amrplot"
	"oss.terrastruct.com/amrviz/lib/log"
)

func sir(t *testing.T, ctx context.Context) *amrgraph.Graph {
	doc := &amrmodel.Document{
		Format: amrmodel.FormatAMR,
		AMR: &amrmodel.AMR{
			Model: amrmodel.Model{
				States: []amrmodel.State{{ID: "S"}, {ID: "I"}, {ID: "R"}},
				Transitions: []amrmodel.Transition{
					{ID: "inf", Input: []string{"S", "I"}, Output: []string{"I", "I"}},
					{ID: "rec", Input: []string{"I"}, Output: []string{"R"}},
				},
			},
		},
	}
	g, err := amrgraph.Build(ctx, doc)
	assert.Nil(t, err)
	return g
}

func TestExport(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := sir(t, ctx)
	pos, err := amrshell.Layout(ctx, g)
	assert.Nil(t, err)

	p, err := amrplot.Render(ctx, g, pos, &amrplot.RenderOpts{Title: "SIR", Legend: true})
	assert.Nil(t, err)
	assert.Greater(t, p.X.Max, 1.5)
	assert.Equal(t, -p.X.Max, p.X.Min)

	png, err := amrplot.Export(p, "png")
	assert.Nil(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(png))
	assert.Nil(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 1200, cfg.Height)

	svg, err := amrplot.Export(p, "SVG")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(svg), "<svg"))

	pdf, err := amrplot.Export(p, "pdf")
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = amrplot.Export(p, "gif")
	assert.Error(t, err)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := sir(t, ctx)
	pos, err := amrshell.Layout(ctx, g)
	assert.Nil(t, err)

	_, err = amrplot.Render(ctx, g, pos, &amrplot.RenderOpts{StateColor: "not-a-color"})
	assert.Error(t, err)

	delete(pos, "rec")
	_, err = amrplot.Render(ctx, g, pos, nil)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `"rec"`)
	}
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g, err := amrgraph.Build(ctx, amrmodel.EmptyDocument())
	assert.Nil(t, err)
	pos, err := amrshell.Layout(ctx, g)
	assert.Nil(t, err)

	p, err := amrplot.Render(ctx, g, pos, &amrplot.RenderOpts{Legend: true})
	assert.Nil(t, err)
	_, err = amrplot.Export(p, "png")
	assert.Nil(t, err)
}
