package board

// Perft counts the leaf nodes of the legal move tree to the given depth. It
// is the standard movegen correctness oracle: the counts for well-known
// positions are published and any generator bug changes them.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var list MoveList
	if depth == 1 {
		p.LegalMoves(&list)
		return uint64(list.Len())
	}

	var nodes uint64
	p.LegalMoves(&list)
	for _, m := range list.Slice() {
		u := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, u)
	}
	return nodes
}

// DivideEntry is one root move and its subtree leaf count.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide splits Perft(depth) by root move, in generation order. Summing the
// entries gives Perft(depth), which makes diverging subtrees easy to isolate.
func (p *Position) Divide(depth int) []DivideEntry {
	var list MoveList
	p.LegalMoves(&list)
	entries := make([]DivideEntry, 0, list.Len())
	for _, m := range list.Slice() {
		u := p.MakeMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: p.Perft(depth - 1)})
		p.UnmakeMove(m, u)
	}
	return entries
}
