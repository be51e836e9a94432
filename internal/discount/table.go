package discount

// mapTable implements Table using a map for O(1) lookups.
type mapTable struct {
	codes map[string]int
}

// NewMapTable creates a new map-based discount table.
func NewMapTable(capacity int) Table {
	return &mapTable{
		codes: make(map[string]int, capacity),
	}
}

// Builtin returns the default discount table.
func Builtin() Table {
	t := &mapTable{codes: make(map[string]int, 2)}
	t.Add("CODE10", 10)
	t.Add("CODE20", 20)
	return t
}

// Lookup returns the percentage for a code.
func (t *mapTable) Lookup(code string) (int, bool) {
	percentage, exists := t.codes[code]
	return percentage, exists
}

// Size returns the number of codes in the table.
func (t *mapTable) Size() int {
	return len(t.codes)
}

// Add adds or replaces a code in the table.
func (t *mapTable) Add(code string, percentage int) {
	t.codes[code] = percentage
}
