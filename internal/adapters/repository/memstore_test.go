package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	repository "github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/extract"
	"github.com/okian/vlaboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() *board.Result {
	rows := []model.Row{
		{Name: "OpenVLA", PaperURL: "https://a", OpenSource: "1",
			Libero:     model.LiberoCells{Standard: "1", Average: "76.5"},
			LiberoPlus: model.LiberoPlusCells{Standard: "1", Total: "15.6"}},
		{Name: "pi0", PaperURL: "https://b", OpenSource: "1",
			Libero:     model.LiberoCells{Standard: "1", Average: "94.2"},
			LiberoPlus: model.LiberoPlusCells{Standard: "1", MixSFT: "1", Total: "53.6"}},
		{Name: "pi0", PaperURL: "from LIBERO-Plus",
			LiberoPlus: model.LiberoPlusCells{Standard: "1", Total: "40"}},
		{Name: "Closed", PaperURL: "https://c", OpenSource: "0",
			Libero: model.LiberoCells{Standard: "1", Average: "97"}},
		{Name: "Tweaked", PaperURL: "https://d", OpenSource: "1",
			Libero: model.LiberoCells{Standard: "0", Average: "99"}},
	}
	extracted := make([]extract.Extracted, len(rows))
	for i, r := range rows {
		extracted[i] = extract.Row(r)
	}
	return board.Build(aggregate.Run(extracted))
}

func TestMemStore_Empty(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()
		ctx := context.Background()

		Convey("Then every read reports it is not ready", func() {
			_, err := s.Leaderboard(ctx, model.Libero, "", 0)
			So(errors.Is(err, repository.ErrNotReady), ShouldBeTrue)
			_, err = s.Rank(ctx, model.Libero, "pi0")
			So(errors.Is(err, repository.ErrNotReady), ShouldBeTrue)
			_, err = s.Summary(ctx)
			So(errors.Is(err, repository.ErrNotReady), ShouldBeTrue)
			_, err = s.Info(ctx)
			So(errors.Is(err, repository.ErrNotReady), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
			So(s.Current(), ShouldBeNil)
		})

		Convey("Then a nil result cannot be published", func() {
			_, err := s.Publish(ctx, "run", nil)
			So(errors.Is(err, repository.ErrNilResult), ShouldBeTrue)
		})
	})
}

func TestMemStore_Publish(t *testing.T) {
	Convey("Given a store with a published build", t, func() {
		builtAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		s := repository.NewMemStore(repository.WithClock(func() time.Time { return builtAt }))
		ctx := context.Background()

		info, err := s.Publish(ctx, "run-1", fixture())
		So(err, ShouldBeNil)

		Convey("Then the build is described", func() {
			So(info.RunID, ShouldEqual, "run-1")
			So(info.BuiltAt, ShouldEqual, builtAt)
			So(info.Stats.Models, ShouldEqual, 4)
			So(info.Counts[model.Libero][category.StandardOpenSource], ShouldEqual, 2)
			So(s.Count(ctx), ShouldEqual, 4)
		})

		Convey("When listing a whole leaderboard", func() {
			entries, err := s.Leaderboard(ctx, model.Libero, "", 0)

			Convey("Then categories follow output order and keep their ranks", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 4)
				So(entries[0].Name, ShouldEqual, "pi0")
				So(entries[0].Category, ShouldEqual, category.StandardOpenSource)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[2].Name, ShouldEqual, "Closed")
				So(entries[2].Rank, ShouldEqual, 1)
				So(entries[3].Name, ShouldEqual, "Tweaked")
				So(entries[3].Category, ShouldEqual, category.NonStandard)
			})
		})

		Convey("When listing one category with a limit", func() {
			entries, err := s.Leaderboard(ctx, model.Libero, category.StandardOpenSource, 1)

			Convey("Then only its leaders are returned", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Name, ShouldEqual, "pi0")
				So(entries[0].Score.OrZero(), ShouldEqual, 94.2)
			})
		})

		Convey("When asking for invalid slices", func() {
			_, err := s.Leaderboard(ctx, model.Libero, "", -1)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)

			_, err = s.Leaderboard(ctx, "robocasa", "", 0)
			So(errors.Is(err, repository.ErrUnknownBenchmark), ShouldBeTrue)

			_, err = s.Leaderboard(ctx, model.Libero, category.StandardOpenSourceMixSFT, 0)
			So(errors.Is(err, category.ErrUnknownCategory), ShouldBeTrue)
		})

		Convey("When ranking a model listed twice on LIBERO-Plus", func() {
			entries, err := s.Rank(ctx, model.LiberoPlus, "pi0")

			Convey("Then both entries are returned", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Category, ShouldEqual, category.StandardOpenSourceMixSFT)
				So(entries[0].Score.OrZero(), ShouldEqual, 53.6)
				So(entries[1].Category, ShouldEqual, category.StandardClosed)
				So(entries[1].Score.OrZero(), ShouldEqual, 40.0)
			})
		})

		Convey("When ranking an unknown model", func() {
			_, err := s.Rank(ctx, model.Libero, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then entries encode with their full detail", func() {
			entries, _ := s.Rank(ctx, model.Libero, "Closed")
			b, err := json.Marshal(entries[0])
			So(err, ShouldBeNil)
			var raw map[string]any
			So(json.Unmarshal(b, &raw), ShouldBeNil)
			So(raw["category"], ShouldEqual, "standard_closed")
			So(raw["detail"].(map[string]any)["average"], ShouldEqual, 97.0)
		})

		Convey("Then the summary is served", func() {
			sum, err := s.Summary(ctx)
			So(err, ShouldBeNil)
			So(sum.Libero.TotalModels, ShouldEqual, 4)
		})
	})
}

func TestMemStore_ConcurrentPublish(t *testing.T) {
	Convey("Given readers racing a publisher", t, func() {
		s := repository.NewMemStore()
		ctx := context.Background()
		r := fixture()
		_, err := s.Publish(ctx, "run-0", r)
		So(err, ShouldBeNil)

		var wg sync.WaitGroup
		failures := make(chan error, 64)
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = s.Publish(ctx, "run", r)
			}()
			go func() {
				defer wg.Done()
				if _, err := s.Leaderboard(ctx, model.Libero, "", 0); err != nil {
					failures <- err
				}
			}()
		}
		wg.Wait()
		close(failures)

		Convey("Then readers always see a complete build", func() {
			So(failures, ShouldBeEmpty)
		})
	})
}
