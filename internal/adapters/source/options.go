package source

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithSheet selects the workbook sheet to read. Empty means the first sheet.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithHeaderRows sets how many leading rows precede the data. The last of
// them is the column header.
func WithHeaderRows(n int) Option {
	return func(l *Loader) {
		if n >= 0 {
			l.headerRows = n
		}
	}
}
