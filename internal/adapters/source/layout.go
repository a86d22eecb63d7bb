package source

import (
	"fmt"

	"github.com/okian/vlaboard/internal/domain/model"
)

// Column positions of the submission sheet, 0-based.
const (
	colName       = 1
	colPaper      = 2
	colDate       = 3
	colOpenSource = 4

	colLiberoStandard = 11
	colLiberoNote     = 12
	colLiberoSpatial  = 13 // spatial, object, goal, long, libero_90, average

	colLiberoPlusStandard = 19
	colLiberoPlusMixSFT   = 20
	colLiberoPlusNote     = 21
	colLiberoPlusCamera   = 22 // camera .. layout, total

	colMetaWorldStandard = 30
	colMetaWorldNote     = 31
	colMetaWorldEasy     = 32 // easy, medium, hard, very_hard, average

	colCalvinStandard = 37
	colCalvinNote     = 38
	colCalvinSettings = 39 // three settings of inst1..inst5, avg_len
	calvinSettingSpan = 6

	// LayoutWidth is the minimum number of columns a header must have.
	LayoutWidth = colCalvinSettings + model.CalvinSettingCount*calvinSettingSpan
)

// Decode maps raw records to rows. The first headerRows records are
// skipped and the last of them must span the layout. lines holds the
// 1-based source line of each record; nil means record index + 1.
func Decode(records [][]string, lines []int, headerRows int) ([]model.Row, error) {
	if headerRows > 0 {
		if len(records) < headerRows {
			return nil, fmt.Errorf("%w: %d header rows expected, file has %d rows", ErrLayout, headerRows, len(records))
		}
		if width := len(records[headerRows-1]); width < LayoutWidth {
			return nil, fmt.Errorf("%w: header has %d columns, need at least %d", ErrLayout, width, LayoutWidth)
		}
	}
	if headerRows > len(records) {
		headerRows = len(records)
	}
	rows := make([]model.Row, 0, len(records)-headerRows)
	for i := headerRows; i < len(records); i++ {
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		rows = append(rows, decodeRow(pad(records[i]), line))
	}
	return rows, nil
}

// pad extends short records; spreadsheet readers drop trailing empty cells.
func pad(rec []string) []string {
	if len(rec) >= LayoutWidth {
		return rec
	}
	out := make([]string, LayoutWidth)
	copy(out, rec)
	return out
}

func decodeRow(c []string, line int) model.Row {
	r := model.Row{
		Line:       line,
		Name:       c[colName],
		PaperURL:   c[colPaper],
		PubDate:    c[colDate],
		OpenSource: c[colOpenSource],
		Libero: model.LiberoCells{
			Standard: c[colLiberoStandard],
			Note:     c[colLiberoNote],
			Spatial:  c[colLiberoSpatial],
			Object:   c[colLiberoSpatial+1],
			Goal:     c[colLiberoSpatial+2],
			Long:     c[colLiberoSpatial+3],
			Libero90: c[colLiberoSpatial+4],
			Average:  c[colLiberoSpatial+5],
		},
		LiberoPlus: model.LiberoPlusCells{
			Standard:   c[colLiberoPlusStandard],
			MixSFT:     c[colLiberoPlusMixSFT],
			Note:       c[colLiberoPlusNote],
			Camera:     c[colLiberoPlusCamera],
			Robot:      c[colLiberoPlusCamera+1],
			Language:   c[colLiberoPlusCamera+2],
			Light:      c[colLiberoPlusCamera+3],
			Background: c[colLiberoPlusCamera+4],
			Noise:      c[colLiberoPlusCamera+5],
			Layout:     c[colLiberoPlusCamera+6],
			Total:      c[colLiberoPlusCamera+7],
		},
		MetaWorld: model.MetaWorldCells{
			Standard: c[colMetaWorldStandard],
			Note:     c[colMetaWorldNote],
			Easy:     c[colMetaWorldEasy],
			Medium:   c[colMetaWorldEasy+1],
			Hard:     c[colMetaWorldEasy+2],
			VeryHard: c[colMetaWorldEasy+3],
			Average:  c[colMetaWorldEasy+4],
		},
		Calvin: model.CalvinCells{
			Standard: c[colCalvinStandard],
			Note:     c[colCalvinNote],
		},
	}
	for s := range r.Calvin.Settings {
		base := colCalvinSettings + s*calvinSettingSpan
		set := &r.Calvin.Settings[s]
		copy(set.Inst[:], c[base:base+len(set.Inst)])
		set.AvgLen = c[base+len(set.Inst)]
	}
	return r
}
