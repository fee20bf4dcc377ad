// Package db publishes daily inflammation statistics to InfluxDB.
package db

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/logging"
)

const measurementName = "inflammation"

const day = 24 * time.Hour

func newInfluxDBPoints(dataset string, start time.Time, summaries []inflammation.DaySummary) []*write.Point {
	points := make([]*write.Point, 0, len(summaries))
	for _, s := range summaries {
		p := influxdb2.NewPointWithMeasurement(measurementName).
			AddTag("dataset", dataset).
			AddField("mean", s.Mean).
			AddField("min", s.Min).
			AddField("max", s.Max).
			AddField("stddev", s.StdDev).
			SetTime(start.Add(time.Duration(s.Day) * day))
		points = append(points, p)
	}

	return points
}

type InfluxDB struct {
	serverURL string
	token     string
	org       string
	bucket    string
}

func NewInfluxDB(serverURL, token, org, bucket string) *InfluxDB {
	return &InfluxDB{
		serverURL: serverURL,
		token:     token,
		org:       org,
		bucket:    bucket,
	}
}

// Save writes one point per day. Day 0 is timestamped start and each later
// day a further 24 hours on.
func (db *InfluxDB) Save(ctx context.Context, dataset string, start time.Time, summaries []inflammation.DaySummary) error {
	points := newInfluxDBPoints(dataset, start, summaries)

	client := influxdb2.NewClient(db.serverURL, db.token)
	defer client.Close()

	writeAPI := client.WriteAPIBlocking(db.org, db.bucket)
	if err := writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("db: write %s to %s/%s: %w", dataset, db.org, db.bucket, err)
	}

	logging.Info("saved daily statistics", logging.DatasetKey, dataset, "points", len(points))
	return nil
}
