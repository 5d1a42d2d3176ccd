package scoring_test

import (
	"errors"
	"testing"

	"github.com/michellecs268/driftwatch/internal/domain/model"
	"github.com/michellecs268/driftwatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDailyScores(t *testing.T) {
	Convey("Given a baseline and accumulated live series", t, func() {
		base := map[string]model.EventStatistic{
			"Logins":     {Name: "Logins", Mean: 4, StdDev: 2},
			"TimeOnline": {Name: "TimeOnline", Mean: 8, StdDev: 1},
		}
		weights := map[string]int{"Logins": 2, "TimeOnline": 3}

		Convey("When every day is fully observed", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Logins":     {4, 6, 10},
					"TimeOnline": {8, 8, 11},
				},
				Days: 3,
			}
			scores, err := scoring.DailyScores(acc, base, weights)

			Convey("Then each day gets its weighted deviation sum", func() {
				So(err, ShouldBeNil)
				// day 1: both at the mean -> 0
				// day 2: |6-4|/2 * 2 = 2
				// day 3: |10-4|/2 * 2 + |11-8|/1 * 3 = 6 + 9 = 15
				So(scores, ShouldResemble, []float64{0, 2, 15})
			})
		})

		Convey("When a baseline stddev is zero", func() {
			flat := map[string]model.EventStatistic{
				"Logins":     {Name: "Logins", Mean: 4, StdDev: 0},
				"TimeOnline": {Name: "TimeOnline", Mean: 8, StdDev: 1},
			}
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Logins":     {900},
					"TimeOnline": {9},
				},
				Days: 1,
			}
			scores, err := scoring.DailyScores(acc, flat, weights)

			Convey("Then that event contributes nothing", func() {
				So(err, ShouldBeNil)
				So(scores, ShouldResemble, []float64{3})
			})
		})

		Convey("When an event has no weight entry", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Logins":     {6},
					"TimeOnline": {8},
				},
				Days: 1,
			}
			scores, err := scoring.DailyScores(acc, base, map[string]int{})

			Convey("Then the weight defaults to one", func() {
				So(err, ShouldBeNil)
				So(scores, ShouldResemble, []float64{1})
			})
		})

		Convey("When increasing one event's deviation", func() {
			near := &model.AccumulatedSeries{
				Series: map[string][]float64{"Logins": {5}, "TimeOnline": {8}},
				Days:   1,
			}
			far := &model.AccumulatedSeries{
				Series: map[string][]float64{"Logins": {9}, "TimeOnline": {8}},
				Days:   1,
			}
			nearScores, err := scoring.DailyScores(near, base, weights)
			So(err, ShouldBeNil)
			farScores, err := scoring.DailyScores(far, base, weights)
			So(err, ShouldBeNil)

			Convey("Then the day's score never decreases", func() {
				So(farScores[0], ShouldBeGreaterThanOrEqualTo, nearScores[0])
			})
		})

		Convey("When an event lacks a baseline entry", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{"Uploads": {1}},
				Days:   1,
			}
			_, err := scoring.DailyScores(acc, base, weights)

			Convey("Then scoring fails on the missing key", func() {
				So(errors.Is(err, scoring.ErrMissingBaseline), ShouldBeTrue)
			})
		})

		Convey("When a series is shorter than the day count", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Logins":     {4},
					"TimeOnline": {8, 8},
				},
				Days: 2,
			}
			_, err := scoring.DailyScores(acc, base, weights)

			Convey("Then the gap is an error, not a misalignment", func() {
				So(errors.Is(err, scoring.ErrSeriesGap), ShouldBeTrue)
			})
		})
	})
}

func TestThreshold(t *testing.T) {
	Convey("Given event weights", t, func() {
		weights := map[string]int{"Logins": 2, "TimeOnline": 3, "EmailsSent": 1}

		Convey("When computing the threshold", func() {
			got := scoring.Threshold(weights, 2)

			Convey("Then it is the multiplier times the weight sum", func() {
				So(got, ShouldEqual, 12)
			})

			Convey("And repeated calls agree", func() {
				So(scoring.Threshold(weights, 2), ShouldEqual, got)
			})
		})
	})
}

func TestEndToEndScenario(t *testing.T) {
	Convey("Given the single-event scenario", t, func() {
		base := map[string]model.EventStatistic{
			"A": {Name: "A", Mean: 5, StdDev: 1},
		}
		weights := map[string]int{"A": 1}

		acc := &model.AccumulatedSeries{
			Series: map[string][]float64{"A": {5.0, 7.0, 10.0}},
			Days:   3,
		}

		Convey("When scoring three observed days", func() {
			scores, err := scoring.DailyScores(acc, base, weights)
			So(err, ShouldBeNil)
			threshold := scoring.Threshold(weights, 2)

			Convey("Then day one is quiet, day two sits at the threshold, day three alerts", func() {
				So(threshold, ShouldEqual, 2)
				So(scores[0], ShouldEqual, 0)
				So(scores[1], ShouldEqual, 2)
				So(scores[2], ShouldEqual, 5)
				So(scores[2] >= threshold, ShouldBeTrue)
			})
		})
	})
}
