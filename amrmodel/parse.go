package amrmodel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"oss.terrastruct.com/xdefer"
)

//go:embed schema.cue
var schemaSource string

// Parse decodes b as a model document of format f. FormatAuto picks the format
// from the top level keys. An empty object or null decodes to an empty
// document.
func Parse(b []byte, f Format) (_ *Document, err error) {
	defer xdefer.Errorf(&err, "failed to parse model document")

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: no content", ErrInvalidSchema)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if len(top) == 0 {
		doc := EmptyDocument()
		doc.Raw = append(json.RawMessage(nil), b...)
		return doc, nil
	}

	if f == FormatAuto {
		f, err = detect(top)
		if err != nil {
			return nil, err
		}
	}

	if err := requireKeys(top, f); err != nil {
		return nil, err
	}
	if err := validateSchema(b, f); err != nil {
		return nil, err
	}

	doc := &Document{
		Format: f,
		Raw:    append(json.RawMessage(nil), b...),
	}
	switch f {
	case FormatAMR:
		doc.AMR = &AMR{}
		err = json.Unmarshal(b, doc.AMR)
	case FormatACSet:
		doc.ACSet = &ACSet{}
		err = json.Unmarshal(b, doc.ACSet)
	default:
		return nil, fmt.Errorf("unknown model format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return doc, nil
}

func detect(top map[string]json.RawMessage) (Format, error) {
	if _, ok := top["model"]; ok {
		return FormatAMR, nil
	}
	_, hasS := top["S"]
	_, hasT := top["T"]
	if hasS || hasT {
		return FormatACSet, nil
	}
	return "", fmt.Errorf("%w: expected a \"model\" key (AMR) or \"S\" and \"T\" keys (ACSet)", ErrInvalidSchema)
}

func requireKeys(top map[string]json.RawMessage, f Format) error {
	var keys []string
	switch f {
	case FormatAMR:
		keys = []string{"model"}
	case FormatACSet:
		keys = []string{"S", "T"}
	}
	for _, k := range keys {
		if _, ok := top[k]; !ok {
			return fmt.Errorf("%w: %s document without %q", ErrInvalidSchema, f, k)
		}
	}
	return nil
}

func validateSchema(b []byte, f Format) error {
	def := "#AMR"
	if f == FormatACSet {
		def = "#ACSet"
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if schema.Err() != nil {
		return fmt.Errorf("failed to compile schema: %w", schema.Err())
	}

	v := ctx.CompileBytes(b)
	if v.Err() != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, v.Err())
	}
	u := schema.LookupPath(cue.ParsePath(def)).Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSchema, f, err)
	}
	return nil
}
