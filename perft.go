package chess

// Perft (performance test) node counting: a move-generator correctness
// check against known exact node counts, and the `perft` debug command in
// uci.go.

// Perft counts the number of leaf positions reachable from pos after
// exactly depth plies of strictly legal moves.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	ml := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		child := pos.MakeMove(ml.At(i))
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// PerftDivideEntry is one root move's subtree count, as printed by the
// `perft` debug command.
type PerftDivideEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide returns, for each legal root move, the perft count of the
// subtree after playing it -- the standard per-move breakdown used to
// bisect a move generator bug against a reference engine.
func PerftDivide(pos *Position, depth int) []PerftDivideEntry {
	ml := pos.GenerateLegalMoves()
	entries := make([]PerftDivideEntry, 0, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		child := pos.MakeMove(m)
		entries = append(entries, PerftDivideEntry{Move: m, Nodes: Perft(child, depth-1)})
	}
	return entries
}
