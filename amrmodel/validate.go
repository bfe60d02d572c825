package amrmodel

import (
	"fmt"
	"strings"
)

// ValidationError lists every semantic problem found in a document.
type ValidationError struct {
	Problems []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidModel, strings.Join(ve.Problems, "; "))
}

func (ve *ValidationError) Is(target error) bool {
	return target == ErrInvalidModel
}

func (ve *ValidationError) errorf(f string, v ...interface{}) {
	ve.Problems = append(ve.Problems, fmt.Sprintf(f, v...))
}

// Validate checks the references of the document. Empty documents are valid.
func (d *Document) Validate() error {
	ve := &ValidationError{}
	switch {
	case d.Empty():
	case d.AMR != nil:
		validateAMR(ve, d.AMR)
	case d.ACSet != nil:
		validateACSet(ve, d.ACSet)
	}
	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}

func validateAMR(ve *ValidationError, amr *AMR) {
	states := make(map[string]struct{}, len(amr.Model.States))
	for i, s := range amr.Model.States {
		if s.ID == "" {
			ve.errorf("state %d has no id", i)
			continue
		}
		if _, ok := states[s.ID]; ok {
			ve.errorf("duplicate state %q", s.ID)
		}
		states[s.ID] = struct{}{}
	}

	transitions := make(map[string]struct{}, len(amr.Model.Transitions))
	for i, t := range amr.Model.Transitions {
		if t.ID == "" {
			ve.errorf("transition %d has no id", i)
			continue
		}
		if _, ok := transitions[t.ID]; ok {
			ve.errorf("duplicate transition %q", t.ID)
		}
		if _, ok := states[t.ID]; ok {
			ve.errorf("transition %q has the same id as a state", t.ID)
		}
		transitions[t.ID] = struct{}{}

		validateRefs(ve, states, t.ID, "input", t.Input)
		validateRefs(ve, states, t.ID, "output", t.Output)
	}
}

func validateRefs(ve *ValidationError, states map[string]struct{}, tid, list string, refs []string) {
	for _, ref := range refs {
		if _, ok := states[ref]; !ok {
			ve.errorf("transition %q %s references undeclared state %q", tid, list, ref)
		}
	}
}

func validateACSet(ve *ValidationError, acs *ACSet) {
	names := make(map[string]struct{}, len(acs.S)+len(acs.T))
	for _, s := range acs.S {
		if _, ok := names[s.Name]; ok {
			ve.errorf("duplicate state %q", s.Name)
		}
		names[s.Name] = struct{}{}
	}
	for _, t := range acs.T {
		if _, ok := names[t.Name]; ok {
			ve.errorf("duplicate name %q for transition", t.Name)
		}
		names[t.Name] = struct{}{}
	}

	inRange := func(i, n int) bool { return i >= 1 && i <= n }
	for i, in := range acs.I {
		if !inRange(in.IS, len(acs.S)) {
			ve.errorf("I[%d] references state row %d of %d", i, in.IS, len(acs.S))
		}
		if !inRange(in.IT, len(acs.T)) {
			ve.errorf("I[%d] references transition row %d of %d", i, in.IT, len(acs.T))
		}
	}
	for i, out := range acs.O {
		if !inRange(out.OS, len(acs.S)) {
			ve.errorf("O[%d] references state row %d of %d", i, out.OS, len(acs.S))
		}
		if !inRange(out.OT, len(acs.T)) {
			ve.errorf("O[%d] references transition row %d of %d", i, out.OT, len(acs.T))
		}
	}
}
