package amrplugin

import (
	"context"
	"encoding/json"
	"fmt"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/amrlayouts/amrspring"
)

var SpringPlugin = springPlugin{}

func init() {
	plugins = append(plugins, &SpringPlugin)
}

type springPlugin struct {
	opts *amrspring.ConfigurableOpts
}

func (p *springPlugin) Info(context.Context) (*PluginInfo, error) {
	return &PluginInfo{
		Name:      "spring",
		Type:      "bundled",
		ShortHelp: "Fruchterman-Reingold force directed layout",
		LongHelp: fmt.Sprintf(`spring simulates connected nodes pulling together while every pair of nodes
pushes apart. Starting positions are random but seeded from the model, so a
given model always gets the same layout.

Flags:
  --spring-seed %d
  --spring-iterations %d
`, amrspring.DefaultOpts.Seed, amrspring.DefaultOpts.Iterations),
	}, nil
}

func (p *springPlugin) Flags(context.Context) ([]PluginSpecificFlag, error) {
	return []PluginSpecificFlag{
		{
			Name:    "spring-seed",
			Type:    "int64",
			Default: amrspring.DefaultOpts.Seed,
			Usage:   "seed of the starting positions. 0 derives it from the model.",
			Tag:     "seed",
		},
		{
			Name:    "spring-iterations",
			Type:    "int64",
			Default: amrspring.DefaultOpts.Iterations,
			Usage:   "maximum number of simulation steps.",
			Tag:     "iterations",
		},
	}, nil
}

func (p *springPlugin) HydrateOpts(opts []byte) error {
	if opts != nil {
		var springOpts amrspring.ConfigurableOpts
		err := json.Unmarshal(opts, &springOpts)
		if err != nil {
			return err
		}
		if springOpts.Iterations <= 0 {
			springOpts.Iterations = amrspring.DefaultOpts.Iterations
		}
		p.opts = &springOpts
	}
	return nil
}

func (p *springPlugin) Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	return amrspring.Layout(ctx, g, p.opts)
}
