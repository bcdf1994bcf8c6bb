package rangepick

// Shortcut is a named preset pair. Supplier, when set, is evaluated at the
// moment the shortcut is used so relative presets follow the clock.
type Shortcut struct {
	Label    string
	Value    Range
	Supplier func() Range
}

func (s Shortcut) Resolve() Range {
	if s.Supplier != nil {
		return s.Supplier()
	}
	return s.Value
}
