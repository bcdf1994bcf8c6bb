package dateengine

import (
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/language"
)

// Locale carries the strings a picker shows and the month names it accepts.
type Locale struct {
	Tag         language.Tag
	Months      [12]string
	ShortMonths [12]string
	// Weekdays holds short names starting at Sunday, matching time.Weekday.
	Weekdays [7]string

	Today     string
	Now       string
	Ok        string
	Clear     string
	Separator string

	StartPlaceholder string
	EndPlaceholder   string
	// PanelHeader titles date and week panels.
	PanelHeader string
	WeekStart   time.Weekday
}

var English = &Locale{
	Tag: language.English,
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	ShortMonths: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
	Weekdays:         [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	Today:            "Today",
	Now:              "Now",
	Ok:               "OK",
	Clear:            "Clear",
	Separator:        "~",
	StartPlaceholder: "Start date",
	EndPlaceholder:   "End date",
	PanelHeader:      "{MMM} 2006",
	WeekStart:        time.Monday,
}

var German = &Locale{
	Tag: language.German,
	Months: [12]string{
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	},
	ShortMonths: [12]string{
		"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
		"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
	},
	Weekdays:         [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	Today:            "Heute",
	Now:              "Jetzt",
	Ok:               "OK",
	Clear:            "Löschen",
	Separator:        "~",
	StartPlaceholder: "Startdatum",
	EndPlaceholder:   "Enddatum",
	PanelHeader:      "{MMM} 2006",
	WeekStart:        time.Monday,
}

var Chinese = &Locale{
	Tag: language.SimplifiedChinese,
	Months: [12]string{
		"一月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "十一月", "十二月",
	},
	ShortMonths: [12]string{
		"1月", "2月", "3月", "4月", "5月", "6月",
		"7月", "8月", "9月", "10月", "11月", "12月",
	},
	Weekdays:         [7]string{"日", "一", "二", "三", "四", "五", "六"},
	Today:            "今天",
	Now:              "此刻",
	Ok:               "确定",
	Clear:            "清除",
	Separator:        "~",
	StartPlaceholder: "开始日期",
	EndPlaceholder:   "结束日期",
	PanelHeader:      "2006年{MMM}",
	WeekStart:        time.Monday,
}

var supported = []*Locale{English, German, Chinese}

var matcher = language.NewMatcher([]language.Tag{English.Tag, German.Tag, Chinese.Tag})

// LookupLocale returns the closest built-in locale for a BCP-47 tag. Unknown or
// malformed tags fall back to English.
func LookupLocale(tag string) *Locale {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

func (l *Locale) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.Months[m-1]
}

func (l *Locale) ShortMonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.ShortMonths[m-1]
}

// WeekdayHeaders returns the short weekday names starting at start.
func (l *Locale) WeekdayHeaders(start time.Weekday) []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, l.Weekdays[(int(start)+i)%7])
	}
	return out
}

func (l *Locale) lookupMonth(word string) (time.Month, bool) {
	for _, names := range [][12]string{l.Months, l.ShortMonths, English.Months, English.ShortMonths} {
		for i, name := range names {
			if strings.EqualFold(name, word) {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}

// maxMonthTypos bounds how far a typed word may be from a month name and still be
// read as that month.
const maxMonthTypos = 2

// NormalizeMonths rewrites localized or slightly misspelled month names in text to
// the English names Go layouts understand. Words that are not close to any month
// are left alone.
func (l *Locale) NormalizeMonths(text string) string {
	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			out.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		word := string(runes[i:j])
		out.WriteString(l.canonicalMonth(word))
		i = j
	}
	return out.String()
}

func (l *Locale) canonicalMonth(word string) string {
	if isPeriodMarker(word) || isWeekdayName(word) {
		return word
	}
	if m, ok := l.lookupMonth(word); ok {
		return canonicalName(word, m)
	}
	if len([]rune(word)) < 3 {
		return word
	}
	lower := strings.ToLower(word)
	best, bestMonth := maxMonthTypos+1, time.Month(0)
	for _, names := range [][12]string{l.Months, English.Months, l.ShortMonths, English.ShortMonths} {
		for i, name := range names {
			d := levenshtein.ComputeDistance(lower, strings.ToLower(name))
			if d < best {
				best, bestMonth = d, time.Month(i+1)
			}
		}
	}
	if bestMonth == 0 || best >= len([]rune(word))/2+1 {
		return word
	}
	return bestMonth.String()
}

// canonicalName keeps already-English abbreviations short so "Mar 5 2024" still
// matches a "Jan 2 2006" layout.
func canonicalName(word string, m time.Month) string {
	full := m.String()
	if strings.EqualFold(word, full) {
		return full
	}
	if strings.EqualFold(word, full[:3]) {
		return full[:3]
	}
	return full
}

func isPeriodMarker(word string) bool {
	switch strings.ToUpper(word) {
	case "AM", "PM", "W", "Q", "T", "Z":
		return true
	}
	return false
}

func isWeekdayName(word string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if strings.EqualFold(word, name) || strings.EqualFold(word, name[:3]) {
			return true
		}
	}
	return false
}
