package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/mtraver/inflammation/db"
	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/load"
	"github.com/mtraver/inflammation/logging"
)

var publishCommand = &cli.Command{
	Name:      "publish",
	Usage:     "Save a dataset's daily statistics to InfluxDB, once or on a schedule",
	ArgsUsage: "<dataset>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "cronspec",
			Usage: "cron spec that specifies when to publish (default from config; empty publishes once)",
		},
		&cli.BoolFlag{
			Name:  "dryrun",
			Usage: "print rather than publish statistics",
		},
	},
	Action: publish,
}

// Saver stores a dataset's daily statistics.
type Saver interface {
	Save(ctx context.Context, dataset string, start time.Time, summaries []inflammation.DaySummary) error
}

type dryrunSaver struct {
	w io.Writer
}

func (d dryrunSaver) Save(ctx context.Context, dataset string, start time.Time, summaries []inflammation.DaySummary) error {
	fmt.Fprintf(d.w, "%s (day 0 = %s)\n", dataset, start.Format("2006-01-02"))
	return writeSummaries(d.w, summaries)
}

// PublishJob reloads a dataset and saves its statistics each time it runs.
type PublishJob struct {
	Dataset string
	Path    string
	Start   time.Time
	Tables  *load.Cached
	Saver   Saver
}

func (j PublishJob) publish(ctx context.Context) error {
	t, err := j.Tables.CSV(j.Path)
	if err != nil {
		return err
	}
	return j.Saver.Save(ctx, j.Dataset, j.Start, inflammation.Summarise(t))
}

// Run implements cron.Job.
func (j PublishJob) Run() {
	if err := j.publish(context.Background()); err != nil {
		logging.Error("failed to publish", logging.DatasetKey, j.Dataset, "error", err)
	}
}

func publish(cc *cli.Context) error {
	if cc.NArg() != 1 {
		return fmt.Errorf("publish: exactly one dataset must be given")
	}
	if err := cfg.RequireDataDir(); err != nil {
		return err
	}

	dataset := cc.Args().First()
	path, err := load.DatasetPath(cfg.DataDir, dataset)
	if err != nil {
		return err
	}

	var saver Saver = dryrunSaver{w: cc.App.Writer}
	if !cc.Bool("dryrun") {
		if err := cfg.RequireInfluxDB(); err != nil {
			return err
		}
		saver = db.NewInfluxDB(cfg.InfluxDB.URL, cfg.InfluxDB.Token(), cfg.InfluxDB.Org, cfg.InfluxDB.Bucket)
	}

	job := PublishJob{
		Dataset: dataset,
		Path:    path,
		Start:   cfg.InfluxDB.Start(),
		Tables:  load.NewCached(cfg.CacheTTL),
		Saver:   saver,
	}

	cronSpec := cfg.Publish.CronSpec
	if cc.IsSet("cronspec") {
		cronSpec = cc.String("cronspec")
	}
	if cronSpec == "" {
		return job.publish(cc.Context)
	}

	cr := cron.New()
	if _, err := cr.AddJob(cronSpec, job); err != nil {
		return fmt.Errorf("publish: bad cron spec %q: %w", cronSpec, err)
	}
	logging.Info("starting cron scheduler", "spec", cronSpec, logging.DatasetKey, dataset)
	cr.Start()

	ctx, stop := signal.NotifyContext(cc.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logging.Info("cleaning up")
	<-cr.Stop().Done()
	return nil
}
