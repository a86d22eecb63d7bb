package output_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/vlaboard/internal/adapters/output"
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/extract"
	"github.com/okian/vlaboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func result() *board.Result {
	row := model.Row{
		Name: "π0 & friends", PaperURL: "https://arxiv.org/abs/2410.24164", OpenSource: "1",
		Libero: model.LiberoCells{Standard: "1", Note: "使用腕部相机", Average: "94.2"},
	}
	return board.Build(aggregate.Run([]extract.Extracted{extract.Row(row)}))
}

func TestWrite(t *testing.T) {
	Convey("Given a build result", t, func() {
		dir := filepath.Join(t.TempDir(), "public", "data")
		w := output.New(dir)

		paths, err := w.Write(context.Background(), result())

		Convey("Then all five files are written", func() {
			So(err, ShouldBeNil)
			So(paths, ShouldHaveLength, 5)
			for _, name := range []string{output.LiberoFile, output.LiberoPlusFile, output.MetaWorldFile, output.CalvinFile, output.SummaryFile} {
				_, err := os.Stat(filepath.Join(dir, name))
				So(err, ShouldBeNil)
			}
		})

		Convey("Then no temporary files are left behind", func() {
			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 5)
		})

		Convey("Then text is written unescaped with two-space indentation", func() {
			b, err := os.ReadFile(filepath.Join(dir, output.LiberoFile))
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"name": "π0 & friends"`)
			So(string(b), ShouldContainSubstring, `"note": "使用腕部相机"`)
			So(string(b), ShouldStartWith, "{\n  \"standard_opensource\": [\n    {")
		})

		Convey("Then the summary decodes with its published keys", func() {
			b, err := os.ReadFile(filepath.Join(dir, output.SummaryFile))
			So(err, ShouldBeNil)
			var raw map[string]map[string]any
			So(json.Unmarshal(b, &raw), ShouldBeNil)
			So(raw["libero"]["total_models"], ShouldEqual, 1.0)
			So(raw["libero"]["primary_metric"], ShouldEqual, "Average Success Rate (%)")
		})

		Convey("Then missing scores are null", func() {
			b, err := os.ReadFile(filepath.Join(dir, output.LiberoFile))
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"spatial": null`)
			So(string(b), ShouldContainSubstring, `"pub_date": null`)
		})
	})

	Convey("Given an output path that is a file", t, func() {
		file := filepath.Join(t.TempDir(), "taken")
		So(os.WriteFile(file, []byte("x"), 0o600), ShouldBeNil)

		_, err := output.New(file).Write(context.Background(), result())

		Convey("Then a write error is returned", func() {
			So(errors.Is(err, output.ErrWrite), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		paths, err := output.New(t.TempDir()).Write(ctx, result())

		Convey("Then nothing is written", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(paths, ShouldBeEmpty)
		})
	})
}

func TestEncode(t *testing.T) {
	Convey("Given a value with HTML characters", t, func() {
		var buf bytes.Buffer
		So(output.Encode(&buf, map[string]string{"a": "<b>"}), ShouldBeNil)
		So(buf.String(), ShouldEqual, "{\n  \"a\": \"<b>\"\n}\n")
	})
}
