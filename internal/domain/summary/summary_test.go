package summary_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/ranking"
	"github.com/okian/vlaboard/internal/domain/summary"
	"github.com/okian/vlaboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var scoreCmp = cmp.Comparer(func(a, b model.Score) bool {
	av, aok := a.Value()
	bv, bok := b.Value()
	return aok == bok && av == bv
})

func lp(name string, total float64, standard, open, mix bool) *model.LiberoPlusEntry {
	return &model.LiberoPlusEntry{
		Meta:             model.Meta{Name: name, OpenSource: open},
		LiberoPlusScores: model.LiberoPlusScores{Total: model.Some(total)},
		Annotation:       model.Annotation{Standard: standard},
		MixSFT:           mix,
	}
}

func lib(name string, avg float64, standard, open bool) *model.LiberoEntry {
	return &model.LiberoEntry{
		Meta:         model.Meta{Name: name, OpenSource: open},
		LiberoScores: model.LiberoScores{Average: model.Some(avg)},
		Annotation:   model.Annotation{Standard: standard},
	}
}

func cal(name string, avgLen float64) *model.CalvinEntry {
	return &model.CalvinEntry{
		Meta:         model.Meta{Name: name, OpenSource: true},
		CalvinScores: model.CalvinScores{AvgLen: model.Some(avgLen)},
		Annotation:   model.Annotation{Standard: true},
	}
}

func boards() summary.Boards {
	libero := category.Split([]*model.LiberoEntry{
		lib("a", 90, true, true),
		lib("b", 95, true, true),
		lib("c", 99, true, false),
		lib("d", 50, false, true),
	})
	ranking.Board(libero)

	plus := category.SplitMixed([]*model.LiberoPlusEntry{
		lp("p1", 60, true, true, false),
		lp("m1", 70, true, true, true),
		lp("p2", 65, true, true, false),
		lp("c1", 90, true, false, false),
	})
	ranking.MixBoard(plus)

	var calvin [model.CalvinSettingCount]*category.Board[*model.CalvinEntry]
	calvin[model.SettingABCDD] = category.Split([]*model.CalvinEntry{cal("x", 4.2), cal("y", 4.0)})
	calvin[model.SettingABCD] = category.Split([]*model.CalvinEntry{cal("x", 3.1)})
	calvin[model.SettingDD] = category.Split([]*model.CalvinEntry{})
	for _, b := range calvin {
		ranking.Board(b)
	}

	return summary.Boards{
		Libero:     libero,
		LiberoPlus: plus,
		MetaWorld:  category.Split([]*model.MetaWorldEntry{}),
		Calvin:     calvin,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given ranked boards", t, func() {
		s := summary.Build(boards())

		Convey("Then LIBERO counts and leaders come from its categories", func() {
			want := summary.Overview{
				TotalModels:             4,
				StandardOpenSourceCount: 2,
				StandardClosedCount:     1,
				NonStandardCount:        1,
				PrimaryMetric:           summary.AverageSuccessRate,
				Top: []types.Entry{
					{Name: "b", Score: model.Some(95), Rank: 1},
					{Name: "a", Score: model.Some(90), Rank: 2},
				},
			}
			So(cmp.Diff(want, s.Libero, scoreCmp), ShouldBeEmpty)
		})

		Convey("Then LIBERO-Plus leaders are re-ranked across both recipes", func() {
			So(s.LiberoPlus.TotalModels, ShouldEqual, 4)
			So(s.LiberoPlus.StandardOpenSourceCount, ShouldEqual, 2)
			So(s.LiberoPlus.StandardOpenSourceMixSFTCount, ShouldEqual, 1)
			So(s.LiberoPlus.StandardClosedCount, ShouldEqual, 1)
			want := []types.Entry{
				{Name: "m1", Score: model.Some(70), Rank: 1},
				{Name: "p2", Score: model.Some(65), Rank: 2},
				{Name: "p1", Score: model.Some(60), Rank: 3},
			}
			So(cmp.Diff(want, s.LiberoPlus.Top, scoreCmp), ShouldBeEmpty)
		})

		Convey("Then stored per-category ranks are not disturbed", func() {
			b := boards()
			summary.Build(b)
			So(b.LiberoPlus.StandardOpenSource[0].Name, ShouldEqual, "p2")
			So(b.LiberoPlus.StandardOpenSource[0].Rank, ShouldEqual, 1)
			So(b.LiberoPlus.StandardOpenSourceMixSFT[0].Rank, ShouldEqual, 1)
		})

		Convey("Then CALVIN reports the default setting and all setting sizes", func() {
			So(s.Calvin.TotalModels, ShouldEqual, 1)
			So(s.Calvin.PrimaryMetric, ShouldEqual, summary.AverageLength)
			So(s.Calvin.Description, ShouldEqual, "ABC-D Setting (Default)")
			So(s.Calvin.Top, ShouldHaveLength, 1)
			So(s.Calvin.Top[0].Name, ShouldEqual, "x")
			So(s.Calvin.Settings, ShouldResemble, summary.CalvinSettings{ABCDD: 2, ABCD: 1, DD: 0})
		})

		Convey("Then empty leaderboards have empty leader lists", func() {
			So(s.MetaWorld.TotalModels, ShouldEqual, 0)
			b, err := json.Marshal(s.MetaWorld)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"top_5":[]`)
		})
	})

	Convey("Given a smaller leader count", t, func() {
		s := summary.Build(boards(), summary.WithTopN(1))

		Convey("Then every overview lists that many leaders at most", func() {
			So(s.Libero.Top, ShouldHaveLength, 1)
			So(s.LiberoPlus.Top, ShouldHaveLength, 1)
			So(s.LiberoPlus.Top[0].Name, ShouldEqual, "m1")
		})
	})

	Convey("Given a summary", t, func() {
		b, err := json.Marshal(summary.Build(boards()))

		Convey("Then it encodes with the data.json keys", func() {
			So(err, ShouldBeNil)
			var raw map[string]map[string]any
			So(json.Unmarshal(b, &raw), ShouldBeNil)
			So(raw, ShouldContainKey, "libero_plus")
			So(raw["libero_plus"], ShouldContainKey, "non_standard_mixsft_count")
			So(raw["calvin"], ShouldContainKey, "settings")
			So(raw["calvin"]["primary_metric"], ShouldEqual, "Average Length (Avg. Len.)")
		})
	})
}
