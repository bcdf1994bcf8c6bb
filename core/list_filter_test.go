package core

import "testing"

func TestListFilterKeepsSectionOrder(t *testing.T) {
	f := NewListFilter([]ListItem{
		{ID: "1", Label: "Last 7 days", Section: "relative"},
		{ID: "2", Label: "Q1 2024", Section: "absolute"},
		{ID: "3", Label: "Last month", Section: "relative"},
	})
	f.SetQuery("last")
	items := f.Items()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("items = %+v, want 1 then 3", items)
	}
}

func TestListFilterScoresPrefixHigher(t *testing.T) {
	f := NewListFilter([]ListItem{
		{ID: "a", Label: "This week"},
		{ID: "b", Label: "Week to date"},
	})
	f.SetQuery("week")
	items := f.Items()
	if len(items) != 2 || items[0].ID != "b" {
		t.Fatalf("items = %+v, want prefix match first", items)
	}
}

func TestListFilterHandleKey(t *testing.T) {
	f := NewListFilter([]ListItem{{ID: "1", Label: "Today"}, {ID: "2", Label: "Yesterday"}})
	if res := f.HandleKey("down"); res.Action != ListActionMoved {
		t.Fatalf("down action = %v, want moved", res.Action)
	}
	if res := f.HandleKey("down"); res.Action != ListActionNone {
		t.Fatalf("down at bottom = %v, want none", res.Action)
	}
	res := f.HandleKey("enter")
	if res.Action != ListActionSelected || res.Item.ID != "2" {
		t.Fatalf("enter = %+v, want item 2", res)
	}
	f.HandleKey("t")
	f.HandleKey("o")
	if f.Query() != "to" || f.Cursor() != 0 {
		t.Fatalf("query = %q cursor = %d", f.Query(), f.Cursor())
	}
	f.HandleKey("backspace")
	if f.Query() != "t" {
		t.Fatalf("query after backspace = %q", f.Query())
	}
	if res := f.HandleKey("esc"); res.Action != ListActionCancelled {
		t.Fatalf("esc = %v, want cancelled", res.Action)
	}
}

func TestFuzzyScoreRejectsMissingLetters(t *testing.T) {
	if ok, _ := FuzzyScore("Today", "tx"); ok {
		t.Fatalf("expected no match")
	}
	ok, exact := FuzzyScore("Today", "today")
	_, partial := FuzzyScore("Today", "tdy")
	if !ok || exact <= partial {
		t.Fatalf("exact %d should beat partial %d", exact, partial)
	}
}
