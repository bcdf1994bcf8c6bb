package core

import (
	"sort"
	"strings"
)

// ListItem is one row of a filterable list. Section groups rows; rows keep
// their section order while filtering.
type ListItem struct {
	ID      string
	Label   string
	Section string
	Meta    string
	Search  string
}

type ListAction int

const (
	ListActionNone ListAction = iota
	ListActionMoved
	ListActionSelected
	ListActionCancelled
)

type ListResult struct {
	Action ListAction
	Item   ListItem
}

// ListFilter is a cursor over items narrowed by a typed fuzzy query.
type ListFilter struct {
	items    []ListItem
	filtered []ListItem
	query    string
	cursor   int
}

func NewListFilter(items []ListItem) *ListFilter {
	f := &ListFilter{}
	f.SetItems(items)
	return f
}

func (f *ListFilter) Query() string {
	if f == nil {
		return ""
	}
	return f.query
}

func (f *ListFilter) Cursor() int {
	if f == nil {
		return 0
	}
	return f.cursor
}

func (f *ListFilter) Items() []ListItem {
	if f == nil {
		return nil
	}
	return append([]ListItem(nil), f.filtered...)
}

// SetItems replaces the rows, keeping the query and clamping the cursor.
func (f *ListFilter) SetItems(items []ListItem) {
	if f == nil {
		return
	}
	f.items = append([]ListItem(nil), items...)
	f.rebuild()
}

func (f *ListFilter) SetQuery(q string) {
	if f == nil {
		return
	}
	f.query = q
	f.rebuild()
}

func (f *ListFilter) CursorUp() bool {
	if f == nil || f.cursor == 0 {
		return false
	}
	f.cursor--
	return true
}

func (f *ListFilter) CursorDown() bool {
	if f == nil || f.cursor >= len(f.filtered)-1 {
		return false
	}
	f.cursor++
	return true
}

func (f *ListFilter) Current() (ListItem, bool) {
	if f == nil || len(f.filtered) == 0 {
		return ListItem{}, false
	}
	return f.filtered[min(max(f.cursor, 0), len(f.filtered)-1)], true
}

// HandleKey applies a key name as typed by the user: navigation keys move,
// printable keys extend the query.
func (f *ListFilter) HandleKey(keyName string) ListResult {
	if f == nil {
		return ListResult{}
	}
	switch keyName {
	case "up", "ctrl+p":
		if f.CursorUp() {
			return ListResult{Action: ListActionMoved}
		}
	case "down", "ctrl+n":
		if f.CursorDown() {
			return ListResult{Action: ListActionMoved}
		}
	case "enter":
		if item, ok := f.Current(); ok {
			return ListResult{Action: ListActionSelected, Item: item}
		}
	case "esc":
		return ListResult{Action: ListActionCancelled}
	case "backspace":
		if len(f.query) > 0 {
			r := []rune(f.query)
			f.SetQuery(string(r[:len(r)-1]))
		}
	default:
		if isPrintableKey(keyName) {
			f.SetQuery(f.query + keyName)
		}
	}
	return ListResult{}
}

func (f *ListFilter) sectionOrder() []string {
	seen := make(map[string]bool, len(f.items))
	out := make([]string, 0, len(f.items))
	for _, item := range f.items {
		if seen[item.Section] {
			continue
		}
		seen[item.Section] = true
		out = append(out, item.Section)
	}
	return out
}

type scoredItem struct {
	item  ListItem
	score int
	index int
}

func (f *ListFilter) rebuild() {
	q := strings.TrimSpace(f.query)
	bySection := make(map[string][]scoredItem)
	for idx, item := range f.items {
		search := strings.TrimSpace(item.Search)
		if search == "" {
			search = item.Label
		}
		matched, score := FuzzyScore(search, q)
		if !matched {
			continue
		}
		bySection[item.Section] = append(bySection[item.Section], scoredItem{item: item, score: score, index: idx})
	}

	out := make([]ListItem, 0, len(f.items))
	for _, section := range f.sectionOrder() {
		scored := bySection[section]
		sort.Slice(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].index < scored[j].index
		})
		for _, row := range scored {
			out = append(out, row.item)
		}
	}
	f.filtered = out
	f.cursor = max(0, min(f.cursor, len(f.filtered)-1))
}

// FuzzyScore matches query as a subsequence of label. Prefix matches, runs of
// adjacent characters and exact matches score higher.
func FuzzyScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	from := 0
	for i := 0; i < len(queryLower); i++ {
		j := strings.IndexByte(labelLower[from:], queryLower[i])
		if j < 0 {
			return false, 0
		}
		matchIdx = append(matchIdx, from+j)
		from += j + 1
	}

	score := len(queryLower)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func isPrintableKey(keyName string) bool {
	r := []rune(keyName)
	return len(r) == 1 && r[0] >= 32 && r[0] != 127
}
