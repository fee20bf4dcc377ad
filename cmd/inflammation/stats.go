package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/load"
	"github.com/mtraver/inflammation/logging"
)

var statsCommand = &cli.Command{
	Name:      "stats",
	Usage:     "Print the daily mean, min, max and standard deviation of a CSV table",
	ArgsUsage: "<csv_file>",
	Action:    stats,
}

var normaliseCommand = &cli.Command{
	Name:      "normalise",
	Usage:     "Print a CSV table with each patient's readings divided by their maximum",
	ArgsUsage: "<csv_file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "zero-max",
			Usage: "What to do with a patient whose maximum is zero: zero or error (default from config)",
		},
	},
	Action: normalise,
}

func tableArg(cc *cli.Context) (string, inflammation.Table, error) {
	if cc.NArg() != 1 {
		return "", inflammation.Table{}, fmt.Errorf("%s: exactly one CSV file must be given", cc.Command.Name)
	}

	filename := cc.Args().First()
	t, err := load.CSV(filename)
	if err != nil {
		return "", inflammation.Table{}, err
	}

	logging.Info("loaded table", "file", filename, "patients", t.Patients(), "days", t.Days())
	return filename, t, nil
}

func stats(cc *cli.Context) error {
	_, t, err := tableArg(cc)
	if err != nil {
		return err
	}

	return writeSummaries(cc.App.Writer, inflammation.Summarise(t))
}

func writeSummaries(w io.Writer, summaries []inflammation.DaySummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "day\tmean\tmin\tmax\tstddev\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t\n", s.Day, s.Mean, s.Min, s.Max, s.StdDev)
	}
	return tw.Flush()
}

func normalise(cc *cli.Context) error {
	policy := cfg.Normalise.Policy()
	if cc.IsSet("zero-max") {
		var err error
		if policy, err = inflammation.ParseZeroMaxPolicy(cc.String("zero-max")); err != nil {
			return err
		}
	}

	filename, t, err := tableArg(cc)
	if err != nil {
		return err
	}

	norm, err := inflammation.PatientNormalise(t, inflammation.WithZeroMax(policy))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	return writeTable(cc.App.Writer, norm)
}

func writeTable(w io.Writer, t inflammation.Table) error {
	for _, row := range t.Rows() {
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = fmt.Sprintf("%.6g", v)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}
