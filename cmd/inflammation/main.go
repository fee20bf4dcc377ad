// Program inflammation computes daily statistics over tables of patient
// inflammation readings, serves them over HTTP and publishes them to InfluxDB.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mtraver/inflammation/config"
	"github.com/mtraver/inflammation/logging"
)

var configPath string

// cfg is loaded before any command runs.
var cfg *config.Config

func newApp() *cli.App {
	return &cli.App{
		Name:     "inflammation",
		HelpName: "inflammation",
		Usage:    "Summarise patient inflammation data",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to the YAML config file",
				Value:       config.DefaultPath,
				Destination: &configPath,
			},
		}, logging.Flags...),
		Before: setup,
		Commands: []*cli.Command{
			statsCommand,
			normaliseCommand,
			serveCommand,
			publishCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func setup(cc *cli.Context) error {
	logging.Setup()

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if logging.Opts.VeryVerbose {
		logging.Dump(cfg)
	}
	return nil
}
