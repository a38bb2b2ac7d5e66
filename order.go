package chess

// Move ordering tiers, scored into buckets wide enough apart that a tier
// never collides with its neighbors, against this package's
// MoveList.SelectBest staged selection rather than a full sort.
const (
	scoreTT          int32 = 10_000_000
	scoreGoodCapture int32 = 8_000_000
	scoreKiller1     int32 = 6_000_000
	scoreKiller2     int32 = 5_000_000
	scoreCounter     int32 = 4_000_000
	scoreBadCapture  int32 = -2_000_000
)

// mvvLvaValue mirrors seeValue but kept distinct so move ordering can be
// tuned independently of SEE's exchange arithmetic.
var mvvLvaValue = seeValue

// OrderingState carries per-search move-ordering heuristics that persist
// across nodes: killer moves per ply, a history table, and a counter-move
// table.
type OrderingState struct {
	killers [maxPly][2]Move
	history [2][64][64]int32
	counter [64][64]Move
}

// NewOrderingState returns a zeroed heuristics table. Killers, history and
// counter-moves persist across searches until Clear resets them.
func NewOrderingState() *OrderingState {
	os := &OrderingState{}
	for i := range os.killers {
		os.killers[i][0], os.killers[i][1] = NoMove, NoMove
	}
	return os
}

// Clear resets killers, history, and counter-moves, used by UCI's
// ucinewgame and XBoard's new.
func (os *OrderingState) Clear() {
	*os = *NewOrderingState()
}

// RecordKiller records a quiet move that caused a beta cutoff at ply.
func (os *OrderingState) RecordKiller(ply int, m Move) {
	if ply >= maxPly {
		return
	}
	if os.killers[ply][0] == m {
		return
	}
	os.killers[ply][1] = os.killers[ply][0]
	os.killers[ply][0] = m
}

// RecordHistory rewards a quiet move that caused a beta cutoff with a
// depth-squared increment, saturating so a long search can't overflow it.
func (os *OrderingState) RecordHistory(c Color, m Move, depth int) {
	from, to := m.From(), m.To()
	v := os.history[c][from][to] + int32(depth*depth)
	const cap = 1 << 20
	if v > cap {
		v = cap
	}
	os.history[c][from][to] = v
}

// RecordCounter records the reply that refuted prevMove.
func (os *OrderingState) RecordCounter(prevMove, reply Move) {
	if prevMove == NoMove {
		return
	}
	os.counter[prevMove.From()][prevMove.To()] = reply
}

// CounterMove returns the recorded counter to prevMove, or NoMove.
func (os *OrderingState) CounterMove(prevMove Move) Move {
	if prevMove == NoMove {
		return NoMove
	}
	return os.counter[prevMove.From()][prevMove.To()]
}

// ScoreMoves assigns an ordering score to every move in ml: TT move, good
// captures (MVV-LVA, SEE >= 0), killers, counter-move, quiet history, and
// losing captures (SEE < 0) last.
func (pos *Position) ScoreMoves(ml *MoveList, os *OrderingState, ttMove Move, ply int, prevMove Move) {
	counterMove := os.CounterMove(prevMove)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		switch {
		case m == ttMove:
			ml.SetScore(i, scoreTT)
		case m.IsCapture() || m.IsEnPassant():
			ml.SetScore(i, captureScore(pos, m))
		case m == os.killers[ply][0]:
			ml.SetScore(i, scoreKiller1)
		case m == os.killers[ply][1]:
			ml.SetScore(i, scoreKiller2)
		case m == counterMove:
			ml.SetScore(i, scoreCounter)
		default:
			ml.SetScore(i, os.history[pos.turn][m.From()][m.To()])
		}
	}
}

// captureScore ranks a capture by MVV-LVA, classifying it as a "good" or
// "bad" capture via SEE.
func captureScore(pos *Position, m Move) int32 {
	victim := Pawn
	if m.IsEnPassant() {
		victim = Pawn
	} else {
		victim = pos.board.PieceAt(m.To()).Type()
	}
	attacker := pos.board.PieceAt(m.From()).Type()
	mvvLva := int32(mvvLvaValue[victim]*10 - mvvLvaValue[attacker])

	if pos.SEEGe(m, 0) {
		return scoreGoodCapture + mvvLva
	}
	return scoreBadCapture + mvvLva
}
