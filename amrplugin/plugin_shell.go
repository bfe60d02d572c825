package amrplugin

import (
	"context"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/amrlayouts/amrshell"
)

var ShellPlugin = shellPlugin{}

func init() {
	plugins = append(plugins, ShellPlugin)
}

type shellPlugin struct{}

func (p shellPlugin) Info(context.Context) (*PluginInfo, error) {
	return &PluginInfo{
		Name:      "shell",
		Type:      "bundled",
		ShortHelp: "Concentric shells: states inside, transitions outside (default)",
		LongHelp: `shell places the states on an inner circle and the transitions on an outer
circle rotated half a step so arcs between the two rings stay apart.
A model with a single state puts it at the centre.
`,
	}, nil
}

func (p shellPlugin) Flags(context.Context) ([]PluginSpecificFlag, error) {
	return nil, nil
}

func (p shellPlugin) HydrateOpts([]byte) error {
	return nil
}

func (p shellPlugin) Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	return amrshell.Layout(ctx, g)
}
