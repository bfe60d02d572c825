// Package amrmodel decodes and validates the Petri-net model documents returned
// by the SKEMA service.
//
// Two shapes are understood: the ASKEM Model Representation (AMR), where
// transitions reference states by id, and the older ACSet tables, where the
// input and output tables reference 1-based rows of the state and transition
// tables.
package amrmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema is returned when a document does not have the shape of
	// any known model format.
	ErrInvalidSchema = errors.New("invalid model document")
	// ErrInvalidModel is returned when a well formed document is semantically
	// broken, e.g. a transition references an undeclared state.
	ErrInvalidModel = errors.New("invalid model")
)

type Format string

const (
	FormatAuto  Format = "auto"
	FormatAMR   Format = "amr"
	FormatACSet Format = "acset"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatAMR, FormatACSet:
		return f, nil
	}
	return "", fmt.Errorf("unknown model format %q, expected one of auto, amr, acset", s)
}

// Document is a decoded model. At most one of AMR and ACSet is set. A document
// with neither is empty, which is what the service is taken to have returned on
// failure.
type Document struct {
	Format Format          `json:"format"`
	AMR    *AMR            `json:"amr,omitempty"`
	ACSet  *ACSet          `json:"acset,omitempty"`
	Raw    json.RawMessage `json:"-"`
}

// EmptyDocument returns the document standing in for a failed conversion.
func EmptyDocument() *Document {
	return &Document{
		Format: FormatAuto,
		Raw:    json.RawMessage("{}"),
	}
}

func (d *Document) Empty() bool {
	return d == nil || (d.AMR == nil && d.ACSet == nil)
}

type AMR struct {
	Header *Header `json:"header,omitempty"`
	Model  Model   `json:"model"`
}

type Header struct {
	Name         string `json:"name,omitempty"`
	Schema       string `json:"schema,omitempty"`
	SchemaName   string `json:"schema_name,omitempty"`
	Description  string `json:"description,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
}

type Model struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
}

type State struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Transition struct {
	ID         string                 `json:"id"`
	Input      []string               `json:"input"`
	Output     []string               `json:"output"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type ACSet struct {
	S []ACSetState      `json:"S"`
	T []ACSetTransition `json:"T"`
	I []ACSetInput      `json:"I"`
	O []ACSetOutput     `json:"O"`
}

type ACSetState struct {
	Name string `json:"sname"`
}

type ACSetTransition struct {
	Name string `json:"tname"`
}

// ACSetInput is an arc from state row IS to transition row IT.
type ACSetInput struct {
	IS int `json:"is"`
	IT int `json:"it"`
}

// ACSetOutput is an arc from transition row OT to state row OS.
type ACSetOutput struct {
	OS int `json:"os"`
	OT int `json:"ot"`
}
