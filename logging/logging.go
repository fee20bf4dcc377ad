// Package logging configures the structured logger shared by the
// inflammation commands.
//
// Commands log warnings and errors by default. -v adds progress messages such
// as tables loaded and points published, -vv adds per-request and cache
// detail. --log-datasets turns on debug output for the named datasets only,
// matched on the DatasetKey attribute.
package logging

import (
	"golang.org/x/exp/slog"

	"github.com/iand/pontium/hlog"
	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

// Flags are added to the app's global flags.
var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Log loaded tables, published points and other progress",
		Destination: &Opts.Verbose,
	},
	&cli.BoolFlag{
		Name:        "veryverbose",
		Aliases:     []string{"vv"},
		Usage:       "Also log cache activity, served requests and the loaded config",
		Destination: &Opts.VeryVerbose,
	},
	&cli.StringSliceFlag{
		Name:        "log-datasets",
		Usage:       "Log everything about these datasets regardless of verbosity, comma separated",
		Destination: &Opts.LogDatasets,
	},
}

var Opts struct {
	Verbose     bool
	VeryVerbose bool
	LogDatasets cli.StringSlice
}

// DatasetKey is the attribute key under which a dataset name is logged.
const DatasetKey = "dataset"

// Level returns the minimum level selected by the verbosity flags.
func Level() slog.Level {
	switch {
	case Opts.VeryVerbose:
		return slog.LevelDebug
	case Opts.Verbose:
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

// Setup installs the default logger. It must run after the flags are parsed.
func Setup() {
	h := new(hlog.Handler).WithLevel(Level())
	for _, name := range Opts.LogDatasets.Value() {
		h = h.WithAttrLevel(slog.String(DatasetKey, name), slog.LevelDebug)
	}

	slog.SetDefault(slog.New(h))
}

var (
	Debug = slog.Debug
	Info  = slog.Info
	Warn  = slog.Warn
	Error = slog.Error
)

// Dump logs v, expanded field by field, at info level.
func Dump(v any) {
	slog.Info(utter.Sdump(v))
}
