package amrtex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/amrviz/amrtex"
)

const prefix = `<math xmlns="http://www.w3.org/1998/Math/MathML" display="inline"><mrow>`
const suffix = `</mrow></math>`

func TestConvert(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		latex string
		exp   string
	}{
		{
			name:  "sir_susceptible",
			latex: `\frac{d S}{d t} = -\beta S I`,
			exp:   `<mfrac><mrow><mi>d</mi><mi>S</mi></mrow><mrow><mi>d</mi><mi>t</mi></mrow></mfrac><mo>=</mo><mo>−</mo><mi>β</mi><mi>S</mi><mi>I</mi>`,
		},
		{
			name:  "sup",
			latex: `x^2`,
			exp:   `<msup><mi>x</mi><mn>2</mn></msup>`,
		},
		{
			name:  "subsup",
			latex: `x_i^{2}`,
			exp:   `<msubsup><mi>x</mi><mi>i</mi><mn>2</mn></msubsup>`,
		},
		{
			name:  "sqrt",
			latex: `\sqrt{x}`,
			exp:   `<msqrt><mi>x</mi></msqrt>`,
		},
		{
			name:  "root",
			latex: `\sqrt[3]{x}`,
			exp:   `<mroot><mi>x</mi><mn>3</mn></mroot>`,
		},
		{
			name:  "left_right",
			latex: `\left( a \right)`,
			exp:   `<mrow><mo>(</mo><mi>a</mi><mo>)</mo></mrow>`,
		},
		{
			name:  "mathrm",
			latex: `\mathrm{N}`,
			exp:   `<mi mathvariant="normal">N</mi>`,
		},
		{
			name:  "text",
			latex: `\text{rate}`,
			exp:   `<mtext>rate</mtext>`,
		},
		{
			name:  "escaped",
			latex: `a < b`,
			exp:   `<mi>a</mi><mo>&lt;</mo><mi>b</mi>`,
		},
		{
			name:  "decimal",
			latex: `1.5x`,
			exp:   `<mn>1.5</mn><mi>x</mi>`,
		},
		{
			name:  "space",
			latex: `a\,b`,
			exp:   `<mi>a</mi><mspace width="0.167em"/><mi>b</mi>`,
		},
		{
			name:  "cdot",
			latex: `\gamma \cdot I`,
			exp:   `<mi>γ</mi><mo>⋅</mo><mi>I</mi>`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := amrtex.Convert(tc.latex)
			assert.Nil(t, err)
			assert.Equal(t, prefix+tc.exp+suffix, got)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		latex string
	}{
		{name: "empty", latex: "  "},
		{name: "unclosed_group", latex: `{x`},
		{name: "unmatched_close", latex: `x}`},
		{name: "missing_denominator", latex: `\frac{a}`},
		{name: "dangling_script", latex: `x^`},
		{name: "double_superscript", latex: `x^1^2`},
		{name: "unknown_command", latex: `\foo`},
		{name: "unclosed_left", latex: `\left( x`},
		{name: "alignment", latex: `a & b`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := amrtex.Convert(tc.latex)
			assert.True(t, errors.Is(err, amrtex.ErrMalformedEquation), "got %v", err)
		})
	}
}

func TestConvertAll(t *testing.T) {
	t.Parallel()

	_, err := amrtex.ConvertAll(nil)
	assert.True(t, errors.Is(err, amrtex.ErrNoEquations))

	_, err = amrtex.ConvertAll([]string{`x`, `\frac{a}`})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "equation 1")
	}
	assert.True(t, errors.Is(err, amrtex.ErrMalformedEquation))

	out, err := amrtex.ConvertAll(sir)
	assert.Nil(t, err)
	assert.Len(t, out, len(sir))
}

var sir = []string{
	`\frac{d S}{d t} = -\beta S I`,
	`\frac{d I}{d t} = \beta S I - \gamma I`,
	`\frac{d R}{d t} = \gamma I`,
}

func TestDerivativeStates(t *testing.T) {
	t.Parallel()

	var states []string
	for _, eq := range sir {
		mml, err := amrtex.Convert(eq)
		assert.Nil(t, err)
		s, err := amrtex.DerivativeStates(mml)
		assert.Nil(t, err)
		states = append(states, s...)
	}
	assert.Equal(t, []string{"S", "I", "R"}, states)

	mml, err := amrtex.Convert(`\frac{a}{b}`)
	assert.Nil(t, err)
	s, err := amrtex.DerivativeStates(mml)
	assert.Nil(t, err)
	assert.Empty(t, s)
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	mml, err := amrtex.Convert(sir[1])
	assert.Nil(t, err)
	ids, err := amrtex.Identifiers(mml)
	assert.Nil(t, err)
	assert.Equal(t, []string{"d", "I", "t", "β", "S", "γ"}, ids)
}
