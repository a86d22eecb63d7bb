package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/okian/vlaboard/internal/app"
	"github.com/okian/vlaboard/internal/adapters/output"
	repository "github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/adapters/source"
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/sample"
	"github.com/okian/vlaboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// writeSheet saves a generated sheet with the given number of models.
func writeSheet(t *testing.T, path string, models int, seed uint64) {
	t.Helper()
	rows, err := sample.New(sample.WithModels(models), sample.WithSeed(seed)).Rows(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := source.Save(context.Background(), path, rows); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestService_Build(t *testing.T) {
	Convey("Given a service with an output directory and a store", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "VLA_SOTA.csv")
		writeSheet(t, input, 30, 3)
		store := repository.NewMemStore()
		svc := service.New(
			service.WithOutputDir(filepath.Join(dir, "out")),
			service.WithStore(store),
			service.WithWorkers(4),
			service.WithTopN(3),
			service.WithMetricsFile(filepath.Join(dir, "vlaboard.prom")),
		)

		Convey("When building", func() {
			report, err := svc.Build(context.Background(), input)

			Convey("Then a consistent report is returned", func() {
				So(err, ShouldBeNil)
				So(report.RunID, ShouldNotBeEmpty)
				So(report.Violations, ShouldEqual, 0)
				So(report.Result.Stats.Models, ShouldEqual, 30)
				So(report.Result.Summary.Libero.Top, ShouldHaveLength, 3)
			})

			Convey("Then every output file is written", func() {
				So(report.Files, ShouldHaveLength, 5)
				for _, name := range []string{output.LiberoFile, output.SummaryFile} {
					_, statErr := os.Stat(filepath.Join(dir, "out", name))
					So(statErr, ShouldBeNil)
				}
			})

			Convey("Then the build is published", func() {
				info, infoErr := store.Info(context.Background())
				So(infoErr, ShouldBeNil)
				So(info.RunID, ShouldEqual, report.RunID)
				So(store.Count(context.Background()), ShouldEqual, 30)
				So(svc.Store(), ShouldEqual, store)
			})

			Convey("Then the metrics textfile is dumped", func() {
				_, statErr := os.Stat(filepath.Join(dir, "vlaboard.prom"))
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When the worker count changes", func() {
			one, err := service.New(service.WithWorkers(1)).Build(context.Background(), input)
			So(err, ShouldBeNil)
			many, err := service.New(service.WithWorkers(16)).Build(context.Background(), input)
			So(err, ShouldBeNil)

			Convey("Then the result does not", func() {
				So(many.Result.Summary, ShouldResemble, one.Result.Summary)
				So(many.Result.Stats, ShouldResemble, one.Result.Stats)
			})
		})

		Convey("When the input does not exist", func() {
			_, err := svc.Build(context.Background(), filepath.Join(dir, "missing.csv"))

			Convey("Then the source error is returned and nothing is published", func() {
				So(errors.Is(err, source.ErrOpen), ShouldBeTrue)
				_, infoErr := store.Info(context.Background())
				So(errors.Is(infoErr, repository.ErrNotReady), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := svc.Build(ctx, input)

			Convey("Then the build fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Policy(t *testing.T) {
	Convey("Given a sheet with two original rows for one model", t, func() {
		path := filepath.Join(t.TempDir(), "sheet.csv")
		rows := []model.Row{
			{Name: "X", PaperURL: "https://a", OpenSource: "1", Libero: model.LiberoCells{Standard: "1", Average: "80"}},
			{Name: "X", PaperURL: "https://b", OpenSource: "1", Libero: model.LiberoCells{Standard: "1", Average: "85"}},
		}
		So(source.Save(context.Background(), path, rows), ShouldBeNil)

		Convey("Then the configured policy decides the published score", func() {
			last, err := service.New().Build(context.Background(), path)
			So(err, ShouldBeNil)
			So(last.Result.Libero.StandardOpenSource[0].Average.OrZero(), ShouldEqual, 85.0)

			first, err := service.New(service.WithPolicy(aggregate.FirstOriginalWins)).Build(context.Background(), path)
			So(err, ShouldBeNil)
			So(first.Result.Libero.StandardOpenSource[0].Average.OrZero(), ShouldEqual, 80.0)
		})
	})
}

func TestService_Watch(t *testing.T) {
	Convey("Given a published build and a watcher", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "VLA_SOTA.csv")
		writeSheet(t, input, 5, 1)
		store := repository.NewMemStore()
		svc := service.New(service.WithStore(store))
		_, err := svc.Build(context.Background(), input)
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Watch(ctx, input, 50*time.Millisecond) }()
		// Give the watcher time to register.
		time.Sleep(100 * time.Millisecond)

		Convey("When the sheet is replaced", func() {
			writeSheet(t, input, 8, 2)

			Convey("Then the new build is published", func() {
				deadline := time.Now().Add(5 * time.Second)
				for store.Count(context.Background()) != 8 && time.Now().Before(deadline) {
					time.Sleep(20 * time.Millisecond)
				}
				So(store.Count(context.Background()), ShouldEqual, 8)

				cancel()
				So(<-done, ShouldBeNil)
			})
		})

		Reset(cancel)
	})
}
