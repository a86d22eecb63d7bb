package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Banner is the first row of sheets produced by Encode.
const Banner = "VLA SOTA leaderboard submissions"

// Header returns the column titles of the submission sheet.
func Header() []string {
	h := make([]string, LayoutWidth)
	h[0] = "#"
	h[colName] = "model"
	h[colPaper] = "paper"
	h[colDate] = "date"
	h[colOpenSource] = "open_source"
	put := func(at int, names ...string) {
		copy(h[at:], names)
	}
	put(colLiberoStandard, "libero_standard", "libero_note",
		"spatial", "object", "goal", "long", "libero_90", "libero_avg")
	put(colLiberoPlusStandard, "libero_plus_standard", "mixsft", "libero_plus_note",
		"camera", "robot", "language", "light", "background", "noise", "layout", "libero_plus_total")
	put(colMetaWorldStandard, "metaworld_standard", "metaworld_note",
		"easy", "medium", "hard", "very_hard", "metaworld_avg")
	put(colCalvinStandard, "calvin_standard", "calvin_note")
	for s := model.CalvinSetting(0); s < model.CalvinSettingCount; s++ {
		base := colCalvinSettings + int(s)*calvinSettingSpan
		for i := 0; i < calvinSettingSpan-1; i++ {
			h[base+i] = fmt.Sprintf("%s_inst%d", s.Key(), i+1)
		}
		h[base+calvinSettingSpan-1] = s.Key() + "_avg_len"
	}
	return h
}

// Encode lays rows out as records readable by Decode with DefaultHeaderRows.
func Encode(rows []model.Row) [][]string {
	banner := make([]string, LayoutWidth)
	banner[0] = Banner
	out := make([][]string, 0, len(rows)+DefaultHeaderRows)
	out = append(out, banner, Header())
	for i := range rows {
		out = append(out, encodeRow(&rows[i], i+1))
	}
	return out
}

func encodeRow(r *model.Row, n int) []string {
	c := make([]string, LayoutWidth)
	c[0] = fmt.Sprint(n)
	c[colName] = r.Name
	c[colPaper] = r.PaperURL
	c[colDate] = r.PubDate
	c[colOpenSource] = r.OpenSource

	l := r.Libero
	copy(c[colLiberoStandard:], []string{l.Standard, l.Note,
		l.Spatial, l.Object, l.Goal, l.Long, l.Libero90, l.Average})
	p := r.LiberoPlus
	copy(c[colLiberoPlusStandard:], []string{p.Standard, p.MixSFT, p.Note,
		p.Camera, p.Robot, p.Language, p.Light, p.Background, p.Noise, p.Layout, p.Total})
	m := r.MetaWorld
	copy(c[colMetaWorldStandard:], []string{m.Standard, m.Note,
		m.Easy, m.Medium, m.Hard, m.VeryHard, m.Average})
	c[colCalvinStandard] = r.Calvin.Standard
	c[colCalvinNote] = r.Calvin.Note
	for s, set := range r.Calvin.Settings {
		base := colCalvinSettings + s*calvinSettingSpan
		copy(c[base:], set.Inst[:])
		c[base+len(set.Inst)] = set.AvgLen
	}
	return c
}

// Save writes rows to path as CSV or Excel, chosen by extension.
func Save(ctx context.Context, path string, rows []model.Row, opts ...Option) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := New(opts...)
	records := Encode(rows)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeCSV(path, records)
	case ".xlsx", ".xlsm":
		return writeXLSX(path, l.sheet, records)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func writeXLSX(path, sheet string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	} else {
		sheet = f.GetSheetName(0)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
