package synth_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/michellecs268/driftwatch/internal/domain/model"
	"github.com/michellecs268/driftwatch/internal/domain/synth"
	. "github.com/smartystreets/goconvey/convey"
)

const testSeed = 42

func TestGenerate(t *testing.T) {
	Convey("Given a seeded synthesizer", t, func() {
		s := synth.New(synth.WithSeed(testSeed))

		Convey("When drawing continuous values", func() {
			Convey("Then every draw stays inside the bounds with at most two decimals", func() {
				for i := 0; i < 1000; i++ {
					v, err := s.Generate(model.Continuous, 0, 10, 5, 2)
					So(err, ShouldBeNil)
					So(v, ShouldBeBetweenOrEqual, 0, 10)
					So(v*100, ShouldAlmostEqual, math.Round(v*100), 1e-9)
				}
			})

			Convey("And bounds far from the mean still produce in-range draws", func() {
				// The mean sits 20 stddevs below the window; rejection
				// sampling would effectively never terminate here.
				for i := 0; i < 200; i++ {
					v, err := s.Generate(model.Continuous, 20, 30, 0, 1)
					So(err, ShouldBeNil)
					So(v, ShouldBeBetweenOrEqual, 20, 30)
				}
			})
		})

		Convey("When drawing discrete values", func() {
			Convey("Then every draw is an integer inside the bounds", func() {
				for i := 0; i < 1000; i++ {
					v, err := s.Generate(model.Discrete, 0, 50, 25, 10)
					So(err, ShouldBeNil)
					So(v, ShouldEqual, math.Trunc(v))
					So(v, ShouldBeBetweenOrEqual, 0, 50)
				}
			})

			Convey("And fractional bounds keep the integer result in range", func() {
				for i := 0; i < 500; i++ {
					v, err := s.Generate(model.Discrete, 5.2, 9.8, 7, 3)
					So(err, ShouldBeNil)
					So(v, ShouldEqual, math.Trunc(v))
					So(v, ShouldBeBetweenOrEqual, 6, 9)
				}
			})
		})

		Convey("When stddev is zero", func() {
			Convey("Then an in-range mean is returned as a point mass", func() {
				v, err := s.Generate(model.Continuous, 0, 10, 5.126, 0)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 5.13)

				d, err := s.Generate(model.Discrete, 0, 10, 5.9, 0)
				So(err, ShouldBeNil)
				So(d, ShouldEqual, 5)
			})

			Convey("And the result is deterministic across draws", func() {
				first, err := s.Generate(model.Continuous, 0, 10, 7, 0)
				So(err, ShouldBeNil)
				second, err := s.Generate(model.Continuous, 0, 10, 7, 0)
				So(err, ShouldBeNil)
				So(first, ShouldEqual, second)
			})

			Convey("And an out-of-range mean fails", func() {
				_, err := s.Generate(model.Continuous, 0, 10, 12, 0)
				So(errors.Is(err, synth.ErrOutOfBoundsBaseline), ShouldBeTrue)
			})
		})

		Convey("When the kind is unrecognized", func() {
			_, err := s.Generate("Z", 0, 10, 5, 1)

			Convey("Then it should fail as an invalid kind", func() {
				So(errors.Is(err, synth.ErrInvalidEventKind), ShouldBeTrue)
			})
		})

		Convey("When stddev is negative", func() {
			_, err := s.Generate(model.Continuous, 0, 10, 5, -1)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGenerateBatch(t *testing.T) {
	Convey("Given a catalog and matching statistics", t, func() {
		catalog, err := model.NewCatalog([]model.EventDefinition{
			{Name: "Logins", Kind: model.Discrete, Min: 0, Max: 100, Weight: 2},
			{Name: "TimeOnline", Kind: model.Continuous, Min: 0, Max: 24, Weight: 3},
		})
		So(err, ShouldBeNil)

		stats := map[string]model.EventStatistic{
			"Logins":     {Name: "Logins", Mean: 40, StdDev: 10},
			"TimeOnline": {Name: "TimeOnline", Mean: 8, StdDev: 2},
		}

		s := synth.New(synth.WithSeed(testSeed))

		Convey("When generating a batch", func() {
			batch, err := s.GenerateBatch(context.Background(), catalog, stats, 5)

			Convey("Then it has one log per day in catalog order", func() {
				So(err, ShouldBeNil)
				So(batch, ShouldHaveLength, 5)
				for _, daily := range batch {
					So(daily, ShouldHaveLength, 2)
					So(daily[0].Name, ShouldEqual, "Logins")
					So(daily[1].Name, ShouldEqual, "TimeOnline")
				}
			})

			Convey("And all values respect their event bounds", func() {
				So(err, ShouldBeNil)
				for _, daily := range batch {
					So(daily[0].Value, ShouldBeBetweenOrEqual, 0, 100)
					So(daily[1].Value, ShouldBeBetweenOrEqual, 0, 24)
				}
			})
		})

		Convey("When a statistics entry is missing", func() {
			partial := map[string]model.EventStatistic{
				"Logins": {Name: "Logins", Mean: 40, StdDev: 10},
			}
			_, err := s.GenerateBatch(context.Background(), catalog, partial, 3)

			Convey("Then generation fails on the absent event", func() {
				So(errors.Is(err, synth.ErrMissingStatistic), ShouldBeTrue)
			})
		})

		Convey("When the day count is not positive", func() {
			_, err := s.GenerateBatch(context.Background(), catalog, stats, 0)

			Convey("Then generation fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := s.GenerateBatch(ctx, catalog, stats, 3)

			Convey("Then generation stops with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
