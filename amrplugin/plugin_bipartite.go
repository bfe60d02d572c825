package amrplugin

import (
	"context"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/amrlayouts/amrbipartite"
)

var BipartitePlugin = bipartitePlugin{}

func init() {
	plugins = append(plugins, BipartitePlugin)
}

type bipartitePlugin struct{}

func (p bipartitePlugin) Info(context.Context) (*PluginInfo, error) {
	return &PluginInfo{
		Name:      "bipartite",
		Type:      "bundled",
		ShortHelp: "States and transitions in two facing columns",
		LongHelp: `bipartite puts the states in a left column and the transitions in a right
column. Every arc crosses between the columns.
`,
	}, nil
}

func (p bipartitePlugin) Flags(context.Context) ([]PluginSpecificFlag, error) {
	return nil, nil
}

func (p bipartitePlugin) HydrateOpts([]byte) error {
	return nil
}

func (p bipartitePlugin) Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	return amrbipartite.Layout(ctx, g)
}
