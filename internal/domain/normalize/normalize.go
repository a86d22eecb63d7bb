// Package normalize converts raw spreadsheet cells into typed optional values.
//
// Every function is total: malformed input degrades to null, false or the
// original text, never to an error.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/vlaboard/internal/domain/model"
)

const (
	referencePrefix  = "from"
	urlPrefix        = "http"
	fullWidthParen   = "（"
	centuryPivot     = 50
	flagTrue         = "1"
	flagTrueDecimal  = "1.0"
	flagFalse        = "0"
	emptyPlaceholder = "-"
)

var (
	shortDatePattern = regexp.MustCompile(`^(\d{2})\.(\d{1,2})$`)
	embeddedURL      = regexp.MustCompile(`https?://\S+`)
)

// Number parses a score cell. Annotations in ASCII or full-width parentheses
// are dropped, e.g. "79(30 subtasks)" is 79.
func Number(cell string) model.Score {
	s := strings.TrimSpace(cell)
	if s == "" || s == emptyPlaceholder {
		return model.Null()
	}
	if i := strings.IndexAny(s, "(（"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if isNonValue(s) {
		return model.Null()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return model.Null()
	}
	return model.Some(v)
}

// Date formats "YY.M" and "YY.MM" as "YYYY-MM". Other text is returned as-is.
func Date(cell string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	m := shortDatePattern.FindStringSubmatch(s)
	if m == nil {
		return &s
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if year < centuryPivot {
		year += 2000
	} else {
		year += 1900
	}
	out := fmt.Sprintf("%d-%02d", year, month)
	return &out
}

// IsReference reports whether a paper cell quotes another source ("from <paper>").
func IsReference(cell string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(cell)), referencePrefix)
}

// PaperURL extracts the paper link from a paper cell. Reference cells have none.
func PaperURL(cell string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, urlPrefix) {
		if i := strings.Index(s, fullWidthParen); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		return &s
	}
	if IsReference(s) {
		return nil
	}
	if u := embeddedURL.FindString(s); u != "" {
		return &u
	}
	return nil
}

// OpenSourceURL returns the repository link of an open-source cell.
func OpenSourceURL(cell string) *string {
	s := strings.TrimSpace(cell)
	switch {
	case s == "", s == flagFalse, s == flagTrue:
		return nil
	case strings.HasPrefix(s, urlPrefix):
		return &s
	default:
		return nil
	}
}

// IsOpenSource reads an open-source cell: "1" or a link means released.
func IsOpenSource(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == flagTrue || strings.HasPrefix(s, urlPrefix)
}

// IsStandardEval reads a standard-evaluation flag cell.
func IsStandardEval(cell string) bool { return flag(cell) }

// IsMixSFT reads the LIBERO-Plus mix-sft flag cell.
func IsMixSFT(cell string) bool { return flag(cell) }

// Note returns the annotation text of a note cell.
func Note(cell string) string {
	if strings.TrimSpace(cell) == "" {
		return ""
	}
	return cell
}

// isNonValue matches placeholders maintainers put in score cells instead of a number.
func isNonValue(s string) bool {
	switch s {
	case "", emptyPlaceholder, "(未写)", "未写", "有结果", "(not written)", "not written", "written", "has result":
		return true
	}
	return false
}

// flag is true iff the cell holds exactly one, as 1 or 1.0.
func flag(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v == 1
	}
	return s == flagTrue || s == flagTrueDecimal
}
