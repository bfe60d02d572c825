package amrplugin

import (
	"context"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/amrlayouts/amrcircular"
)

var CircularPlugin = circularPlugin{}

func init() {
	plugins = append(plugins, CircularPlugin)
}

type circularPlugin struct{}

func (p circularPlugin) Info(context.Context) (*PluginInfo, error) {
	return &PluginInfo{
		Name:      "circular",
		Type:      "bundled",
		ShortHelp: "Every node on one circle, states first",
		LongHelp: `circular spaces all nodes evenly on a single circle, the states followed by
the transitions.
`,
	}, nil
}

func (p circularPlugin) Flags(context.Context) ([]PluginSpecificFlag, error) {
	return nil, nil
}

func (p circularPlugin) HydrateOpts([]byte) error {
	return nil
}

func (p circularPlugin) Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	return amrcircular.Layout(ctx, g)
}
