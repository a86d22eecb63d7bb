package scoring_test

import (
	"testing"

	"github.com/okian/vlaboard/internal/domain/model"
	scoring "github.com/okian/vlaboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRule_Fill(t *testing.T) {
	Convey("Given the LIBERO rule", t, func() {
		rule := scoring.Libero

		Convey("When the average is reported", func() {
			score, derived := rule.Fill(model.Some(91.2), model.Some(10), model.Some(20), model.Some(30))

			Convey("Then it is kept as-is", func() {
				So(derived, ShouldBeFalse)
				So(score.OrZero(), ShouldEqual, 91.2)
			})
		})

		Convey("When three of four sub-metrics are present", func() {
			score, derived := rule.Fill(model.Null(), model.Some(80), model.Some(70), model.Null(), model.Some(60))

			Convey("Then the average is their rounded mean", func() {
				So(derived, ShouldBeTrue)
				So(score.OrZero(), ShouldEqual, 70.0)
			})
		})

		Convey("When only two sub-metrics are present", func() {
			score, derived := rule.Fill(model.Null(), model.Some(80), model.Null(), model.Null(), model.Some(60))

			Convey("Then no average is derived", func() {
				So(derived, ShouldBeFalse)
				So(score.Valid(), ShouldBeFalse)
			})
		})

		Convey("When the mean has more than two decimals", func() {
			score, _ := rule.Fill(model.Null(), model.Some(80), model.Some(80), model.Some(81), model.Null())

			Convey("Then it is rounded to two places", func() {
				So(score.OrZero(), ShouldEqual, 80.33)
			})
		})
	})

	Convey("Given the Meta-World rule", t, func() {
		Convey("Then two present sub-metrics are enough", func() {
			score, derived := scoring.MetaWorld.Fill(model.Null(), model.Some(90), model.Null(), model.Some(45), model.Null())
			So(derived, ShouldBeTrue)
			So(score.OrZero(), ShouldEqual, 67.5)
		})

		Convey("Then one present sub-metric is not", func() {
			_, derived := scoring.MetaWorld.Fill(model.Null(), model.Some(90), model.Null(), model.Null(), model.Null())
			So(derived, ShouldBeFalse)
		})
	})

	Convey("Given the LIBERO-Plus rule", t, func() {
		Convey("Then four of seven dimensions are required", func() {
			So(scoring.LiberoPlus.MinPresent(), ShouldEqual, 4)
			_, derived := scoring.LiberoPlus.Fill(model.Null(), model.Some(1), model.Some(2), model.Some(3))
			So(derived, ShouldBeFalse)
			score, derived := scoring.LiberoPlus.Fill(model.Null(), model.Some(1), model.Some(2), model.Some(3), model.Some(4))
			So(derived, ShouldBeTrue)
			So(score.OrZero(), ShouldEqual, 2.5)
		})
	})

	Convey("Given a custom rule", t, func() {
		rule := scoring.NewRule(1, scoring.WithPlaces(0))

		Convey("Then the configured precision is used", func() {
			score, _ := rule.Fill(model.Null(), model.Some(1), model.Some(2))
			So(score.OrZero(), ShouldEqual, 2.0)
		})

		Convey("Then no sub-metrics derive nothing", func() {
			score, derived := rule.Fill(model.Null())
			So(derived, ShouldBeFalse)
			So(score.Valid(), ShouldBeFalse)
		})
	})
}

func TestMeanAndRound(t *testing.T) {
	Convey("Given score lists", t, func() {
		Convey("Then nulls are ignored by the mean", func() {
			mean, n := scoring.Mean(model.Some(10), model.Null(), model.Some(20))
			So(n, ShouldEqual, 2)
			So(mean, ShouldEqual, 15.0)
		})

		Convey("Then an empty list has no mean", func() {
			mean, n := scoring.Mean()
			So(n, ShouldEqual, 0)
			So(mean, ShouldEqual, 0.0)
		})

		Convey("Then rounding keeps the requested places", func() {
			So(scoring.Round(70.0, 2), ShouldEqual, 70.0)
			So(scoring.Round(3.14159, 2), ShouldEqual, 3.14)
			So(scoring.Round(2.5, 0), ShouldEqual, 3.0)
		})
	})
}
