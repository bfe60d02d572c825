package amrcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"oss.terrastruct.com/amrviz/amrclient"
	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/amrplugin"
	"oss.terrastruct.com/amrviz/amrtex"
	"oss.terrastruct.com/amrviz/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s

Usage:
  %[1]s [--watch=false] [--layout=shell] input.tex [output.png]

%[1]s converts the equations of input.tex to MathML, asks SKEMA for the
Petri net model they describe and renders it to output.png.
Use - to have %[1]s read LaTeX from stdin or write SVG to stdout.

Inputs:
  .tex, .txt   one LaTeX equation per line, %% comments are skipped
  .json        a JSON array of LaTeX equations, or an AMR or ACSet model
               document which is rendered without calling SKEMA

Outputs are picked by extension:
  .png .svg .pdf   the drawing of the model
  .dot .d2         the graph for Graphviz or D2
  .json            the model document, or its node and edge tables with --json-tables
  .mml             the MathML of the equations
  .html            a report of the equations, tables and drawing

Flags:
%[3]s

Subcommands:
  %[1]s ping - Check the SKEMA service is reachable
  %[1]s mathml input.tex [output.mml] - Convert equations to MathML only
  %[1]s layout - Lists available layout engine options with short help
  %[1]s layout [name] - Display long help for a particular layout engine
  %[1]s version - Print the version
`, ms.Name, "LaTeX to Petri net model renderer", ms.Opts.Help())
}

func layoutCmd(ctx context.Context, ms *xmain.State, ps []amrplugin.Plugin) error {
	if ms.Opts.NArg() == 1 {
		return shortLayoutHelp(ctx, ms, ps)
	} else if ms.Opts.NArg() == 2 {
		return longLayoutHelp(ctx, ms, ps)
	}
	return xmain.UsageErrorf("layout subcommand accepts at most one argument")
}

func shortLayoutHelp(ctx context.Context, ms *xmain.State, ps []amrplugin.Plugin) error {
	infos, err := amrplugin.ListPluginInfos(ctx, ps)
	if err != nil {
		return err
	}
	var pluginLines []string
	for _, info := range infos {
		pluginLines = append(pluginLines, fmt.Sprintf("%s (%s) - %s", info.Name, info.Type, info.ShortHelp))
	}
	fmt.Fprintf(ms.Stdout, `Available layout engines found:

%s

Usage:
  To use a particular layout engine, set the environment variable AMRVIZ_LAYOUT=[layout name].

Example:
  AMRVIZ_LAYOUT=spring %[2]s in.tex out.png

Subcommands:
  %[2]s layout [layout name] - Display long help for a particular layout engine
`, strings.Join(pluginLines, "\n"), ms.Name)
	return nil
}

func longLayoutHelp(ctx context.Context, ms *xmain.State, ps []amrplugin.Plugin) error {
	layout := ms.Opts.Arg(1)
	plugin, err := amrplugin.FindPlugin(ctx, ps, layout)
	if errors.Is(err, exec.ErrNotFound) {
		return layoutNotFound(ctx, ps, layout)
	}
	if err != nil {
		return err
	}

	info, err := plugin.Info(ctx)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(info.LongHelp, "\n") {
		info.LongHelp += "\n"
	}
	fmt.Fprintf(ms.Stdout, "%s (%s):\n\n%s", info.Name, info.Type, info.LongHelp)
	return nil
}

func layoutNotFound(ctx context.Context, ps []amrplugin.Plugin, layout string) error {
	infos, err := amrplugin.ListPluginInfos(ctx, ps)
	if err != nil {
		return err
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}

	return xmain.UsageErrorf(`AMRVIZ_LAYOUT "%s" is not bundled.
The available options are: %s. For details on each option, run "amrviz layout".`,
		layout, strings.Join(names, ", "))
}

func pingCmd(ctx context.Context, ms *xmain.State, client *amrclient.Client) error {
	if ms.Opts.NArg() > 1 {
		return xmain.UsageErrorf("ping subcommand accepts no arguments")
	}
	body, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ms.Stdout, strings.TrimSpace(body))
	ms.Log.Success.Printf("%s is up", client.BaseURL)
	return nil
}

func mathmlCmd(ctx context.Context, ms *xmain.State, color bool) error {
	if ms.Opts.NArg() < 2 {
		return xmain.UsageErrorf("mathml subcommand needs an input")
	} else if ms.Opts.NArg() > 3 {
		return xmain.UsageErrorf("too many arguments passed to mathml")
	}
	inputPath := ms.Opts.Arg(1)
	outputPath := ms.Opts.Arg(2)
	if outputPath == "" {
		outputPath = "-"
	}

	b, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	in, err := parseInput(inputPath, b, amrmodel.FormatAuto)
	if err != nil {
		return err
	}
	if in.doc != nil {
		return xmain.UsageErrorf("%s is a model document, mathml needs LaTeX equations", inputPath)
	}
	mathml, err := amrtex.ConvertAll(in.equations)
	if err != nil {
		return err
	}
	co := &compileOpts{outputFormat: MML, color: color}
	_, err = writeOutput(ms, co, outputPath, []byte(strings.Join(mathml, "\n")+"\n"))
	return err
}
