// Package amrcli implements the amrviz command line.
package amrcli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/amrviz/amrclient"
	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/amrplugin"
	"oss.terrastruct.com/amrviz/amrrenderers/amrplot"
	"oss.terrastruct.com/amrviz/lib/version"
	"oss.terrastruct.com/amrviz/lib/xmain"
)

func Run(ctx context.Context, ms *xmain.State) (err error) {
	watchFlag, err := ms.Opts.Bool("AMRVIZ_WATCH", "watch", "w", false, "watch for changes to input and live reload. Use $HOST and $PORT to specify the listening address.\n(default localhost:0, which will open on a randomly available local port).")
	if err != nil {
		return err
	}
	hostFlag := ms.Opts.String("HOST", "host", "h", "localhost", "host listening address when used with watch")
	portFlag := ms.Opts.String("PORT", "port", "p", "0", "port listening address when used with watch")
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = new(bool)
	}
	skemaFlag := ms.Opts.String("AMRVIZ_SKEMA_URL", "skema-url", "", amrclient.DefaultBaseURL, "base URL of the SKEMA service that turns MathML into a model")
	endpointFlag := ms.Opts.String("AMRVIZ_ENDPOINT", "endpoint", "", amrclient.DefaultEndpoint, "SKEMA conversion endpoint")
	layoutFlag := ms.Opts.String("AMRVIZ_LAYOUT", "layout", "l", amrplugin.DefaultName, `the layout engine used`)
	modelFormatFlag := ms.Opts.String("AMRVIZ_MODEL_FORMAT", "model-format", "", "auto", "model format requested from SKEMA and expected in .json inputs (auto, amr, acset)")
	legendFlag, err := ms.Opts.Bool("AMRVIZ_LEGEND", "legend", "", true, "draw a legend of the node and edge kinds")
	if err != nil {
		return err
	}
	stateColorFlag := ms.Opts.String("AMRVIZ_STATE_COLOR", "state-color", "", "", "fill color of state nodes. Any CSS color.")
	transitionColorFlag := ms.Opts.String("AMRVIZ_TRANSITION_COLOR", "transition-color", "", "", "fill color of transition nodes. Any CSS color.")
	jsonTablesFlag, err := ms.Opts.Bool("AMRVIZ_JSON_TABLES", "json-tables", "", false, "write the node and edge tables instead of the model document to .json outputs")
	if err != nil {
		return err
	}
	timeoutFlag, err := ms.Opts.Int64("AMRVIZ_TIMEOUT", "timeout", "", 120, "the maximum number of seconds a compilation runs for before timing out. This includes the SKEMA request.")
	if err != nil {
		return err
	}
	browserFlag := ms.Opts.String("BROWSER", "browser", "", "", "browser executable that watch opens. Setting to 0 opens no browser.")
	colorFlag := ms.Opts.String("AMRVIZ_COLOR", "color", "", "auto", "highlight text written to stdout (auto, always, never)")
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	plugins, err := amrplugin.ListPlugins(ctx)
	if err != nil {
		return err
	}
	err = populateLayoutOpts(ctx, ms, plugins)
	if err != nil {
		return err
	}

	err = ms.Opts.Parse()
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
	}
	ctx = ms.Slog(ctx, *debugFlag)
	if *browserFlag != "" {
		ms.Env.Setenv("BROWSER", *browserFlag)
	}
	os.Setenv("AMRVIZ_TIMEOUT", fmt.Sprintf("%d", *timeoutFlag))

	color, err := colorMode(ms, *colorFlag)
	if err != nil {
		return err
	}
	format, err := amrmodel.ParseFormat(*modelFormatFlag)
	if err != nil {
		return xmain.UsageErrorf("%v", err)
	}
	client := amrclient.New(*skemaFlag,
		amrclient.WithEndpoint(*endpointFlag),
		amrclient.WithTimeout(time.Duration(*timeoutFlag)*time.Second),
	)

	if ms.Opts.NArg() > 0 {
		switch ms.Opts.Arg(0) {
		case "layout":
			return layoutCmd(ctx, ms, plugins)
		case "ping":
			return pingCmd(ctx, ms, client)
		case "mathml":
			return mathmlCmd(ctx, ms, color)
		case "version":
			if ms.Opts.NArg() > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if ms.Opts.NArg() == 0 {
		if *versionFlag {
			version.CheckVersion(ctx, http.DefaultClient, ms.Stdout, ms.Log)
			return nil
		}
		help(ms)
		return nil
	} else if ms.Opts.NArg() >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath := ms.Opts.Arg(0)
	outputPath := ms.Opts.Arg(1)
	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "-"
		} else {
			outputPath = renameExt(inputPath, ".png")
		}
	}
	outputFormat, err := getOutputFormat(outputPath)
	if err != nil {
		return xmain.UsageErrorf("%v", err)
	}

	plugin, err := amrplugin.FindPlugin(ctx, plugins, *layoutFlag)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return layoutNotFound(ctx, plugins, *layoutFlag)
		}
		return err
	}
	err = amrplugin.HydratePluginOpts(ctx, ms, plugin)
	if err != nil {
		return err
	}

	co := &compileOpts{
		client:       client,
		plugin:       plugin,
		layout:       *layoutFlag,
		format:       format,
		outputFormat: outputFormat,
		tables:       *jsonTablesFlag,
		color:        color,
		render: &amrplot.RenderOpts{
			Title:           strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)),
			Legend:          *legendFlag,
			StateColor:      *stateColorFlag,
			TransitionColor: *transitionColorFlag,
		},
	}
	if inputPath == "-" {
		co.render.Title = ""
	}

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		if outputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with writing output to stdout")
		}
		co.preview = true
		w, err := newWatcher(ctx, ms, co, inputPath, outputPath, *hostFlag, *portFlag)
		if err != nil {
			return err
		}
		return w.run()
	}

	_, written, err := compile(ctx, ms, co, inputPath, outputPath)
	if err != nil {
		return err
	}
	if written {
		ms.Log.Success.Printf("successfully compiled %s to %s", inputPath, outputPath)
	}
	return nil
}

func colorMode(ms *xmain.State, mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := ms.Stdout.(interface{ Fd() uintptr })
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, xmain.UsageErrorf("--color must be one of auto, always or never. You provided: %q", mode)
	}
}

func populateLayoutOpts(ctx context.Context, ms *xmain.State, ps []amrplugin.Plugin) error {
	pluginFlags, err := amrplugin.ListPluginFlags(ctx, ps)
	if err != nil {
		return err
	}

	for _, f := range pluginFlags {
		err = f.AddToOpts(ms.Opts)
		if err != nil {
			return err
		}
		// Don't pollute the main flagset with these.
		ms.Opts.Flags.MarkHidden(f.Name)
	}

	return nil
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
