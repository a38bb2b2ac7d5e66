package chess

import "fmt"

// Move is packed into 16 bits: low 6 bits "from", next 6 bits "to", high 4
// bits flags. Perft and search generate tens of millions of these per run,
// so the fixed-width value type and the stack-allocated MoveList below are
// load-bearing, not a style preference.
type Move uint16

// NoMove is the sentinel "no move" value -- an all-zero Move would alias
// a1a1 quiet, so NoMove uses an otherwise-unreachable encoding (from==to,
// flags all set).
const NoMove Move = 0xFFFF

// Move flag nibble.
const (
	FlagQuiet        = 0x0
	FlagDoublePush   = 0x1
	FlagCastleKing   = 0x2
	FlagCastleQueen  = 0x3
	FlagCapture      = 0x4
	FlagEnPassant    = 0x5
	FlagPromoKnight  = 0x8
	FlagPromoBishop  = 0x9
	FlagPromoRook    = 0xA
	FlagPromoQueen   = 0xB
	FlagPromoCapKnight = 0xC
	FlagPromoCapBishop = 0xD
	FlagPromoCapRook   = 0xE
	FlagPromoCapQueen  = 0xF
)

// NewMove packs from/to/flags into a Move.
func NewMove(from, to Square, flags uint16) Move {
	return Move(uint16(from) | uint16(to)<<6 | flags<<12)
}

func (m Move) From() Square  { return Square(m & 0x3F) }
func (m Move) To() Square    { return Square((m >> 6) & 0x3F) }
func (m Move) Flags() uint16 { return uint16(m>>12) & 0xF }

func (m Move) IsCapture() bool {
	return m.Flags()&FlagCapture != 0
}

func (m Move) IsEnPassant() bool {
	return m.Flags() == FlagEnPassant
}

func (m Move) IsCastle() bool {
	f := m.Flags()
	return f == FlagCastleKing || f == FlagCastleQueen
}

func (m Move) IsDoublePush() bool {
	return m.Flags() == FlagDoublePush
}

func (m Move) IsPromotion() bool {
	return m.Flags()&0x8 != 0
}

// PromotionType returns the piece type promoted to, or NoPieceType if the
// move is not a promotion.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	switch m.Flags() & 0x3 {
	case 0:
		return Knight
	case 1:
		return Bishop
	case 2:
		return Rook
	default:
		return Queen
	}
}

func promoFlag(pt PieceType, isCapture bool) uint16 {
	var base uint16
	switch pt {
	case Knight:
		base = 0x8
	case Bishop:
		base = 0x9
	case Rook:
		base = 0xA
	default:
		base = 0xB
	}
	if isCapture {
		base |= 0x4
	}
	return base
}

// String returns long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if pt := m.PromotionType(); pt != NoPieceType {
		s += pt.String()
	}
	return s
}

// scoredMove pairs a move with an ordering score; MoveList is a per-node
// stack value of these, never heap-allocated.
type scoredMove struct {
	move  Move
	score int32
}

// maxMoves is MoveList's fixed capacity, comfortably above the largest
// number of legal moves reachable in any standard chess position.
const maxMoves = 256

// MoveList is a fixed-capacity, allocation-free stack of moves with
// ordering scores, generated fresh at every search node.
type MoveList struct {
	moves [maxMoves]scoredMove
	n     int
}

// Add appends a move with zero score.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = scoredMove{move: m}
	ml.n++
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.n }

// At returns the move at index i.
func (ml *MoveList) At(i int) Move { return ml.moves[i].move }

// SetScore assigns an ordering score to the move at index i.
func (ml *MoveList) SetScore(i int, score int32) { ml.moves[i].score = score }

// Score returns the ordering score of the move at index i.
func (ml *MoveList) Score(i int) int32 { return ml.moves[i].score }

// Swap exchanges the moves (and scores) at i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// SelectBest performs one step of a selection sort: it finds the
// highest-scored move at or after `from`, swaps it into position `from`,
// and returns it. Staged selection beats a full sort here, since search
// usually returns on a beta-cutoff long before the tail of the list would
// ever be examined.
func (ml *MoveList) SelectBest(from int) Move {
	best := from
	for i := from + 1; i < ml.n; i++ {
		if ml.moves[i].score > ml.moves[best].score {
			best = i
		}
	}
	ml.Swap(from, best)
	return ml.moves[from].move
}

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i].move == m {
			return true
		}
	}
	return false
}

// ParseLongAlgebraic decodes a move string (e.g. "e2e4", "e7e8q") against a
// legal move list, returning an error if no legal move matches. This is
// UCI's own move notation, not a distinct format.
func (ml *MoveList) ParseLongAlgebraic(s string) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("chess: invalid move text %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	var promo PieceType = NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("chess: invalid promotion piece %q", s)
		}
	}
	for i := 0; i < ml.n; i++ {
		m := ml.moves[i].move
		if m.From() == from && m.To() == to && m.PromotionType() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("chess: illegal move %q", s)
}
