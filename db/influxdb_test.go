package db

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mtraver/inflammation/inflammation"
)

var testStart = time.Date(2018, time.March, 25, 0, 0, 0, 0, time.UTC)

func TestNewInfluxDBPoints(t *testing.T) {
	cases := []struct {
		name      string
		summaries []inflammation.DaySummary
		want      []*write.Point
	}{
		{
			name:      "none",
			summaries: nil,
			want:      []*write.Point{},
		},
		{
			name: "many",
			summaries: []inflammation.DaySummary{
				{Day: 0, Mean: 3, Min: 1, Max: 5, StdDev: 1.5},
				{Day: 2, Mean: 4, Min: 2, Max: 6, StdDev: 0.5},
			},
			want: []*write.Point{
				influxdb2.NewPointWithMeasurement("inflammation").AddTag("dataset", "foo").
					AddField("mean", 3.0).AddField("min", 1.0).AddField("max", 5.0).AddField("stddev", 1.5).
					SetTime(testStart),
				influxdb2.NewPointWithMeasurement("inflammation").AddTag("dataset", "foo").
					AddField("mean", 4.0).AddField("min", 2.0).AddField("max", 6.0).AddField("stddev", 0.5).
					SetTime(testStart.Add(48 * time.Hour)),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := newInfluxDBPoints("foo", testStart, c.summaries)
			if diff := cmp.Diff(got, c.want, cmp.AllowUnexported(write.Point{})); diff != "" {
				t.Errorf("Unexpected result (-got +want):\n%s", diff)
			}
		})
	}
}
