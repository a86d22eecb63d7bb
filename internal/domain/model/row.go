package model

// Row is one spreadsheet row with every cell the pipeline reads bound to a
// named field. Cells hold raw text; an empty string is an empty cell.
type Row struct {
	Line int // 1-based line in the source file

	Name       string
	PaperURL   string
	PubDate    string
	OpenSource string

	Libero     LiberoCells
	LiberoPlus LiberoPlusCells
	MetaWorld  MetaWorldCells
	Calvin     CalvinCells
}

// LiberoCells holds the LIBERO columns.
type LiberoCells struct {
	Standard string
	Note     string
	Spatial  string
	Object   string
	Goal     string
	Long     string
	Libero90 string
	Average  string
}

// LiberoPlusCells holds the LIBERO-Plus columns.
type LiberoPlusCells struct {
	Standard   string
	MixSFT     string
	Note       string
	Camera     string
	Robot      string
	Language   string
	Light      string
	Background string
	Noise      string
	Layout     string
	Total      string
}

// MetaWorldCells holds the Meta-World columns.
type MetaWorldCells struct {
	Standard string
	Note     string
	Easy     string
	Medium   string
	Hard     string
	VeryHard string
	Average  string
}

// CalvinCells holds the CALVIN protocol columns and its three settings.
type CalvinCells struct {
	Standard string
	Note     string
	Settings [CalvinSettingCount]CalvinSettingCells
}

// CalvinSettingCells holds one CALVIN setting: five instruction-chain
// success rates and the average length.
type CalvinSettingCells struct {
	Inst   [5]string
	AvgLen string
}
