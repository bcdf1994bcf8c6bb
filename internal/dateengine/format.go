package dateengine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned when text matches none of the patterns.
var ErrUnparseable = errors.New("unparseable date")

// Patterns are Go layouts with a few extra placeholders that layouts cannot express.
const (
	TokenWeekYear  = "{GGGG}"
	TokenWeek      = "{WW}"
	TokenQuarter   = "{Q}"
	TokenMonthName = "{MMMM}"
	TokenMonthAbbr = "{MMM}"
)

var knownTokens = []string{TokenWeekYear, TokenWeek, TokenQuarter, TokenMonthName, TokenMonthAbbr}

type segment struct {
	text  string
	token bool
}

// splitPattern cuts a pattern into plain layout runs and placeholder tokens.
// Unknown brace groups stay in the layout text.
func splitPattern(pattern string) []segment {
	var out []segment
	var plain strings.Builder
	for i := 0; i < len(pattern); {
		matched := ""
		if pattern[i] == '{' {
			for _, tok := range knownTokens {
				if strings.HasPrefix(pattern[i:], tok) {
					matched = tok
					break
				}
			}
		}
		if matched == "" {
			plain.WriteByte(pattern[i])
			i++
			continue
		}
		if plain.Len() > 0 {
			out = append(out, segment{text: plain.String()})
			plain.Reset()
		}
		out = append(out, segment{text: matched, token: true})
		i += len(matched)
	}
	if plain.Len() > 0 {
		out = append(out, segment{text: plain.String()})
	}
	return out
}

func hasTokens(pattern string) bool {
	for _, seg := range splitPattern(pattern) {
		if seg.token {
			return true
		}
	}
	return false
}

func (e *TimeEngine) Format(v Value, pattern string) string {
	if !v.valid {
		return ""
	}
	t := v.t.In(e.loc)
	var b strings.Builder
	for _, seg := range splitPattern(pattern) {
		if !seg.token {
			// Each plain run is formatted on its own so digits produced by a token
			// are never reinterpreted as layout elements.
			b.WriteString(t.Format(seg.text))
			continue
		}
		switch seg.text {
		case TokenWeekYear:
			y, _ := e.weekNumber(t)
			b.WriteString(strconv.Itoa(y))
		case TokenWeek:
			_, w := e.weekNumber(t)
			fmt.Fprintf(&b, "%02d", w)
		case TokenQuarter:
			b.WriteString(strconv.Itoa((int(t.Month())-1)/3 + 1))
		case TokenMonthName:
			b.WriteString(e.locale.MonthName(t.Month()))
		case TokenMonthAbbr:
			b.WriteString(e.locale.ShortMonthName(t.Month()))
		}
	}
	return b.String()
}

func (e *TimeEngine) Parse(text string, patterns []string) (Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Value{}, fmt.Errorf("%w: empty input", ErrUnparseable)
	}
	if v, ok := e.parseAny(text, patterns); ok {
		return v, nil
	}
	if normalized := e.locale.NormalizeMonths(text); normalized != text {
		if v, ok := e.parseAny(normalized, patterns); ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

func (e *TimeEngine) parseAny(text string, patterns []string) (Value, bool) {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if !hasTokens(p) {
			t, err := time.ParseInLocation(p, text, e.loc)
			if err == nil {
				return Of(t), true
			}
			continue
		}
		if v, ok := e.parseExtended(text, p); ok {
			return v, true
		}
	}
	return Value{}, false
}

// layoutPieces are the only layout elements understood inside a pattern that also
// carries placeholders.
var layoutPieces = []struct {
	layout string
	field  string
	expr   string
}{
	{"2006", "year", `(\d{4})`},
	{"01", "month", `(\d{2})`},
	{"02", "day", `(\d{2})`},
	{"1", "month", `(\d{1,2})`},
	{"2", "day", `(\d{1,2})`},
}

func (e *TimeEngine) parseExtended(text, pattern string) (Value, bool) {
	var expr strings.Builder
	var fields []string
	expr.WriteString("^")
	for _, seg := range splitPattern(pattern) {
		if seg.token {
			switch seg.text {
			case TokenWeekYear:
				expr.WriteString(`(\d{4})`)
				fields = append(fields, "weekyear")
			case TokenWeek:
				expr.WriteString(`(\d{1,2})`)
				fields = append(fields, "week")
			case TokenQuarter:
				expr.WriteString(`([1-4])`)
				fields = append(fields, "quarter")
			case TokenMonthName, TokenMonthAbbr:
				expr.WriteString(`(\pL+)`)
				fields = append(fields, "monthname")
			}
			continue
		}
		s := seg.text
		for len(s) > 0 {
			matched := false
			for _, piece := range layoutPieces {
				if strings.HasPrefix(s, piece.layout) {
					expr.WriteString(piece.expr)
					fields = append(fields, piece.field)
					s = s[len(piece.layout):]
					matched = true
					break
				}
			}
			if !matched {
				expr.WriteString(regexp.QuoteMeta(s[:1]))
				s = s[1:]
			}
		}
	}
	expr.WriteString("$")
	re, err := regexp.Compile("(?i)" + expr.String())
	if err != nil {
		return Value{}, false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return Value{}, false
	}

	year, month, day, week, weekYear, quarter := 0, 1, 1, 0, 0, 0
	for i, f := range fields {
		raw := m[i+1]
		if f == "monthname" {
			mo, ok := e.locale.lookupMonth(raw)
			if !ok {
				return Value{}, false
			}
			month = int(mo)
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, false
		}
		switch f {
		case "year":
			year = n
		case "month":
			month = n
		case "day":
			day = n
		case "week":
			week = n
		case "weekyear":
			weekYear = n
		case "quarter":
			quarter = n
		}
	}

	if week > 0 {
		if weekYear == 0 {
			weekYear = year
		}
		t := e.firstDayOfWeek(weekYear, week)
		if y, w := e.weekNumber(t); y != weekYear || w != week {
			return Value{}, false
		}
		return Of(t), true
	}
	if quarter > 0 {
		month = (quarter-1)*3 + 1
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return Value{}, false
	}
	return Of(time.Date(year, time.Month(month), day, 0, 0, 0, 0, e.loc)), true
}
