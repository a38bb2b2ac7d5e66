package chess

import (
	"sync/atomic"
	"time"
)

// Iterative-deepening negamax with PVS, null-move pruning, reverse
// futility pruning, late-move reductions, check extensions, and aspiration
// windows. An iterative deepening driver calls a PVS negamax that in turn
// calls quiescence search at the horizon, all against this package's
// copy-make Position and MoveList.

const (
	mateScore = 32000
	infScore  = 32001
	maxPly    = 128
)

// SearchLimits bundles the stop conditions a `go` (UCI) or search command
// (XBoard) can specify.
type SearchLimits struct {
	Depth     int
	Nodes     uint64
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
	MoveTime  time.Duration
	Infinite  bool
}

// SearchInfo is emitted periodically during a search for UCI's `info` /
// XBoard's post-mode output.
type SearchInfo struct {
	Depth    int
	Score    int
	Mate     int // non-zero: moves to mate, sign indicates side
	Nodes    uint64
	NPS      uint64
	Time     time.Duration
	PV       []Move
}

// Searcher owns the mutable state of one search: the shared transposition
// table, per-search move-ordering heuristics, node/time accounting, and
// the stop flag UCI's `stop` command and the time manager both set.
type Searcher struct {
	TT     *TranspositionTable
	Order  *OrderingState
	Config TuningConfig

	nodes   uint64
	stop    atomic.Bool
	start   time.Time
	hardEnd time.Time
	limits  SearchLimits

	pv    [maxPly + 1][maxPly + 1]Move
	pvLen [maxPly + 1]int

	Info func(SearchInfo)
}

// NewSearcher wires a Searcher to a transposition table that the engine
// keeps for its whole lifetime and reuses across searches.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{TT: tt, Order: NewOrderingState(), Config: DefaultTuningConfig()}
}

// Stop requests the in-flight search halt as soon as it next polls.
func (s *Searcher) Stop() {
	s.stop.Store(true)
}

func (s *Searcher) stopped() bool {
	return s.stop.Load()
}

// allocate computes soft/hard time budgets from the search limits:
// base = time/max(movestogo, 30); alloc = base + 3/4*inc; hard cap =
// time - 100ms safety margin.
func allocate(pos *Position, limits SearchLimits) (soft, hard time.Duration) {
	if limits.MoveTime > 0 {
		return limits.MoveTime, limits.MoveTime
	}
	var clock, inc time.Duration
	if pos.Turn() == White {
		clock, inc = limits.WTime, limits.WInc
	} else {
		clock, inc = limits.BTime, limits.BInc
	}
	if clock <= 0 {
		return 0, 0
	}
	movesToGo := limits.MovesToGo
	if movesToGo < 30 {
		movesToGo = 30
	}
	base := clock / time.Duration(movesToGo)
	soft = base + (inc*3)/4
	hard = clock - 100*time.Millisecond
	if hard < time.Millisecond {
		hard = time.Millisecond
	}
	if soft > hard {
		soft = hard
	}
	return soft, hard
}

// SearchPosition runs iterative deepening from pos until a stop condition
// fires and returns the best move found. This is the entry point used by
// uci.go/xboard.go.
func (s *Searcher) SearchPosition(pos *Position, limits SearchLimits) Move {
	return s.search(pos, limits)
}

func (s *Searcher) search(pos *Position, limits SearchLimits) Move {
	s.nodes = 0
	s.stop.Store(false)
	s.start = time.Now()
	s.limits = limits
	s.TT.NewSearch()

	soft, hard := allocate(pos, limits)
	if hard > 0 {
		s.hardEnd = s.start.Add(hard)
	} else {
		s.hardEnd = time.Time{}
	}

	ml := pos.GenerateLegalMoves()
	if ml.Len() == 0 {
		return NoMove
	}
	best := ml.At(0)
	if ml.Len() == 1 && !limits.Infinite {
		return best
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > maxPly-1 {
		maxDepth = maxPly - 1
	}

	alpha, beta := -infScore, infScore
	score := 0
	for depth := 1; depth <= maxDepth; depth++ {
		delta := s.Config.AspirationDelta
		if depth >= 5 {
			alpha = score - delta
			beta = score + delta
		} else {
			alpha, beta = -infScore, infScore
		}

		var val int
		for {
			val = s.negamax(pos, depth, 0, alpha, beta, true, NoMove)
			if s.stopped() {
				break
			}
			if val <= alpha {
				alpha -= delta
			} else if val >= beta {
				beta += delta
			} else {
				break
			}
			delta *= 2
			if alpha < -mateScore {
				alpha = -infScore
			}
			if beta > mateScore {
				beta = infScore
			}
		}
		if s.stopped() {
			break
		}
		score = val
		if s.pvLen[0] > 0 {
			best = s.pv[0][0]
		}

		if s.Info != nil {
			pvMoves := make([]Move, s.pvLen[0])
			copy(pvMoves, s.pv[0][:s.pvLen[0]])
			info := SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: s.nodes,
				Time:  time.Since(s.start),
				PV:    pvMoves,
			}
			if score >= mateScore-maxPly {
				info.Mate = (mateScore - score + 1) / 2
			} else if score <= -mateScore+maxPly {
				info.Mate = -(mateScore + score + 1) / 2
			}
			if info.Time > 0 {
				info.NPS = uint64(float64(info.Nodes) / info.Time.Seconds())
			}
			s.Info(info)
		}

		if !limits.Infinite && soft > 0 && time.Since(s.start) >= soft {
			break
		}
	}
	return best
}

// checkTime polls the clock every 2048 nodes.
func (s *Searcher) checkTime() {
	if s.nodes&2047 != 0 {
		return
	}
	if s.limits.Infinite {
		return
	}
	if !s.hardEnd.IsZero() && time.Now().After(s.hardEnd) {
		s.stop.Store(true)
	}
}

// negamax is the main search node: mate-distance pruning, draw detection,
// TT probe, static eval, reverse futility pruning, null move pruning,
// check extension, move-loop with PVS + LMR, and TT store. prevMove is the
// move that led to pos (NoMove at the root), used to key the counter-move
// table.
func (s *Searcher) negamax(pos *Position, depth, ply int, alpha, beta int, pvNode bool, prevMove Move) int {
	s.nodes++
	s.checkTime()
	s.pvLen[ply] = 0

	if s.stopped() {
		return 0
	}

	if ply > 0 {
		if pos.IsDraw() {
			return 0
		}
		// mate distance pruning
		alpha = max(alpha, -mateScore+ply)
		beta = min(beta, mateScore-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.qsearch(pos, alpha, beta, ply)
	}

	origAlpha := alpha
	var ttMove Move = NoMove
	if entry, ok := s.TT.Probe(pos.Hash()); ok {
		ttMove = entry.move
		if ply > 0 && int(entry.depth) >= depth {
			ttScore := fromTT(int(entry.score), ply)
			switch entry.bound {
			case BoundExact:
				return ttScore
			case BoundLower:
				if ttScore >= beta {
					return ttScore
				}
			case BoundUpper:
				if ttScore <= alpha {
					return ttScore
				}
			}
		}
	}

	inCheck := pos.InCheck()
	staticEval := 0
	if !inCheck {
		staticEval = pos.Evaluate()
	}

	// reverse futility pruning
	if !pvNode && !inCheck && depth <= 7 && beta < mateScore-maxPly {
		margin := s.Config.RFPMarginPerPly * depth
		if staticEval-margin >= beta {
			return staticEval - margin
		}
	}

	// null move pruning; a fail-high returns beta, not the null-search score
	if !pvNode && !inCheck && depth >= 3 && ply > 0 && staticEval >= beta && hasNonPawnMaterial(pos) {
		r := s.Config.NullMoveBaseR + depth/4
		child := pos.MakeNullMove()
		val := -s.negamax(child, depth-1-r, ply+1, -beta, -beta+1, false, NoMove)
		if s.stopped() {
			return 0
		}
		if val >= beta {
			return beta
		}
	}

	ml := pos.GenerateLegalMoves()
	if ml.Len() == 0 {
		if inCheck {
			return -mateScore + ply
		}
		return 0
	}

	pos.ScoreMoves(ml, s.Order, ttMove, ply, prevMove)

	bestScore := -infScore
	bestMove := NoMove
	movesSearched := 0

	for i := 0; i < ml.Len(); i++ {
		m := ml.SelectBest(i)
		child := pos.MakeMove(m)

		givesCheck := child.InCheck()
		ext := 0
		if givesCheck {
			ext = 1
		}

		var val int
		if movesSearched == 0 {
			val = -s.negamax(child, depth-1+ext, ply+1, -beta, -alpha, pvNode, m)
		} else {
			reduction := 0
			if depth >= 3 && movesSearched >= 4 && !m.IsCapture() && !m.IsPromotion() && !givesCheck && !inCheck {
				reduction = s.lmrReduction(depth, movesSearched)
			}
			val = -s.negamax(child, depth-1-reduction+ext, ply+1, -alpha-1, -alpha, false, m)
			if val > alpha && (reduction > 0 || val < beta) {
				val = -s.negamax(child, depth-1+ext, ply+1, -beta, -alpha, pvNode, m)
			}
		}
		movesSearched++

		if s.stopped() {
			return 0
		}

		if val > bestScore {
			bestScore = val
			bestMove = m
			if val > alpha {
				alpha = val
				s.pv[ply][0] = m
				copy(s.pv[ply][1:], s.pv[ply+1][:s.pvLen[ply+1]])
				s.pvLen[ply] = s.pvLen[ply+1] + 1
			}
		}
		if alpha >= beta {
			if !m.IsCapture() {
				s.Order.RecordKiller(ply, m)
				s.Order.RecordHistory(pos.Turn(), m, depth)
				s.Order.RecordCounter(prevMove, m)
			}
			break
		}
	}

	var bound Bound
	switch {
	case bestScore <= origAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	default:
		bound = BoundExact
	}
	s.TT.Store(pos.Hash(), bestMove, bestScore, depth, bound, ply)

	return bestScore
}

// lmrReduction computes the late-move-reduction depth cut:
// floor(0.75 + ln(depth)*ln(moves)/divisor).
func (s *Searcher) lmrReduction(depth, moveIndex int) int {
	r := 0.75 + lnTable(depth)*lnTable(moveIndex)/s.Config.LMRDivisor
	if r < 0 {
		return 0
	}
	return int(r)
}

// lnTable returns a natural-log approximation for small positive integers,
// avoiding a math.Log import for a handful of table-friendly values while
// staying numerically equivalent to it for the depths/move-counts the
// reduction formula actually sees (1..127).
func lnTable(n int) float64 {
	if n < 1 {
		return 0
	}
	return naturalLog(float64(n))
}

func naturalLog(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// Simple argument-reduction + series expansion: ln(x) = ln(m*2^e) for
	// x = m*2^e, m in [1,2). Accurate enough for move ordering heuristics.
	e := 0
	for x >= 2 {
		x /= 2
		e++
	}
	for x < 1 {
		x *= 2
		e--
	}
	y := (x - 1) / (x + 1)
	y2 := y * y
	sum := y
	term := y
	for i := 1; i < 8; i++ {
		term *= y2
		sum += term / float64(2*i+1)
	}
	const ln2 = 0.6931471805599453
	return 2*sum + float64(e)*ln2
}

func hasNonPawnMaterial(pos *Position) bool {
	b := pos.Board()
	us := pos.Turn()
	return b.PieceBB(us, Knight)|b.PieceBB(us, Bishop)|b.PieceBB(us, Rook)|b.PieceBB(us, Queen) != 0
}

// qsearch is the quiescence search: stand-pat, delta pruning, generate
// captures and queen promotions, SEE pruning, recurse, return.
func (s *Searcher) qsearch(pos *Position, alpha, beta int, ply int) int {
	s.nodes++
	s.checkTime()
	if s.stopped() {
		return 0
	}
	if ply >= maxPly {
		return pos.Evaluate()
	}

	inCheck := pos.InCheck()
	standPat := 0
	if !inCheck {
		standPat = pos.Evaluate()
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var ml *MoveList
	if inCheck {
		ml = pos.GenerateLegalMoves()
		if ml.Len() == 0 {
			return -mateScore + ply
		}
	} else {
		ml = pos.GenerateCaptures()
	}
	pos.ScoreMoves(ml, s.Order, NoMove, ply, NoMove)

	const bigDelta = 975 // queen value + a margin, for delta pruning

	for i := 0; i < ml.Len(); i++ {
		m := ml.SelectBest(i)

		if !inCheck {
			if !m.IsPromotion() && standPat+bigDelta < alpha {
				continue
			}
			if (m.IsCapture() || m.IsEnPassant()) && !pos.SEEGe(m, 0) {
				continue
			}
		}

		child := pos.MakeMove(m)
		val := -s.qsearch(child, -beta, -alpha, ply+1)
		if s.stopped() {
			return 0
		}
		if val >= beta {
			return val
		}
		if val > alpha {
			alpha = val
		}
	}
	if inCheck {
		return alpha
	}
	return alpha
}
