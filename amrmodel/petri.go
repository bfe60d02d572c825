package amrmodel

// Petri is the format independent view of a model: a bipartite net of states
// and transitions.
type Petri struct {
	States      []string
	Transitions []PetriTransition
	// Arcs lists every arc in the order the document stores them. It is only
	// set for ACSet documents, whose I and O tables are not grouped by
	// transition.
	Arcs []PetriArc
}

type PetriTransition struct {
	ID     string
	Input  []string
	Output []string
}

// PetriArc is one row of an ACSet I or O table with its indices resolved.
type PetriArc struct {
	State      string
	Transition string
	Output     bool
}

// Petri validates d and returns its net. ACSet row indices are resolved to
// names, both grouped by transition and as Arcs in I then O table order.
func (d *Document) Petri() (*Petri, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := &Petri{}
	switch {
	case d.Empty():
	case d.AMR != nil:
		for _, s := range d.AMR.Model.States {
			p.States = append(p.States, s.ID)
		}
		for _, t := range d.AMR.Model.Transitions {
			p.Transitions = append(p.Transitions, PetriTransition{
				ID:     t.ID,
				Input:  append([]string(nil), t.Input...),
				Output: append([]string(nil), t.Output...),
			})
		}
	case d.ACSet != nil:
		acs := d.ACSet
		for _, s := range acs.S {
			p.States = append(p.States, s.Name)
		}
		p.Transitions = make([]PetriTransition, len(acs.T))
		for i, t := range acs.T {
			p.Transitions[i].ID = t.Name
		}
		for _, in := range acs.I {
			t := &p.Transitions[in.IT-1]
			t.Input = append(t.Input, acs.S[in.IS-1].Name)
			p.Arcs = append(p.Arcs, PetriArc{State: acs.S[in.IS-1].Name, Transition: t.ID})
		}
		for _, out := range acs.O {
			t := &p.Transitions[out.OT-1]
			t.Output = append(t.Output, acs.S[out.OS-1].Name)
			p.Arcs = append(p.Arcs, PetriArc{State: acs.S[out.OS-1].Name, Transition: t.ID, Output: true})
		}
	}
	return p, nil
}
