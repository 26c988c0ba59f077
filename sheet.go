package twplug

// Sheet accumulates the statements of one plugin invocation.
// Push only appends; statements are never reordered or deduplicated.
type Sheet struct {
	stmts List
}

// Push appends a statement. Nil nodes are ignored.
func (s *Sheet) Push(n Node) {
	if n == nil {
		return
	}
	s.stmts = append(s.stmts, n)
}

// Len returns the number of statements pushed so far.
func (s *Sheet) Len() int {
	return len(s.stmts)
}

// Statements returns the accumulated statements in push order.
func (s *Sheet) Statements() List {
	out := make(List, len(s.stmts))
	copy(out, s.stmts)
	return out
}
