package chess

// Board holds a dual representation: a [color][ptype] array of bitboards
// for fast set operations, plus a mailbox for O(1) square->piece lookup.
type Board struct {
	pieces  [2][6]Bitboard
	mailbox [64]Piece

	occupied    [2]Bitboard
	allOccupied Bitboard
}

// NewEmptyBoard returns a Board with every square empty.
func NewEmptyBoard() *Board {
	b := &Board{}
	for i := range b.mailbox {
		b.mailbox[i] = NoPiece
	}
	return b
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	return b.mailbox[sq]
}

// PieceBB returns the bitboard for a given color and piece type.
func (b *Board) PieceBB(c Color, pt PieceType) Bitboard {
	return b.pieces[c][pt]
}

// Occupied returns the combined occupancy of one color.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupied[c]
}

// AllOccupied returns the combined occupancy of both colors.
func (b *Board) AllOccupied() Bitboard {
	return b.allOccupied
}

// put places p on sq, updating bitboards, mailbox and occupancy caches.
// sq must be empty; callers are responsible for clearing first if not.
func (b *Board) put(p Piece, sq Square) {
	bb := SquareBB(sq)
	b.pieces[p.Color()][p.Type()] |= bb
	b.mailbox[sq] = p
	b.occupied[p.Color()] |= bb
	b.allOccupied |= bb
}

// remove clears sq, which must hold p.
func (b *Board) remove(p Piece, sq Square) {
	bb := ^SquareBB(sq)
	b.pieces[p.Color()][p.Type()] &= bb
	b.mailbox[sq] = NoPiece
	b.occupied[p.Color()] &= bb
	b.allOccupied &= bb
}

// move relocates the piece on from to to (to must be empty).
func (b *Board) move(from, to Square) {
	p := b.mailbox[from]
	b.remove(p, from)
	b.put(p, to)
}

// copyInto duplicates the receiver's state into other.
func (b *Board) copyInto(other *Board) {
	*other = *b
}

// String renders the board as a FEN piece-placement field (ranks 8->1,
// runs of empties collapsed).
func (b *Board) String() string {
	var out []byte
	for r := 7; r >= 0; r-- {
		empties := 0
		for f := 0; f < 8; f++ {
			p := b.PieceAt(NewSquare(File(f), Rank(r)))
			if p == NoPiece {
				empties++
				continue
			}
			if empties > 0 {
				out = append(out, byte('0'+empties))
				empties = 0
			}
			out = append(out, pieceFEN(p))
		}
		if empties > 0 {
			out = append(out, byte('0'+empties))
		}
		if r > 0 {
			out = append(out, '/')
		}
	}
	return string(out)
}

var fenLetters = [6]byte{'p', 'n', 'b', 'r', 'q', 'k'}

func pieceFEN(p Piece) byte {
	c := fenLetters[p.Type()]
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return c
}

// Draw returns a human-debugging grid.
func (b *Board) Draw() string {
	s := "\n A B C D E F G H\n"
	for r := 7; r >= 0; r-- {
		s += Rank(r).String() + " "
		for f := 0; f < 8; f++ {
			p := b.PieceAt(NewSquare(File(f), Rank(r)))
			if p == NoPiece {
				s += "-"
			} else {
				s += p.String()
			}
			s += " "
		}
		s += "\n"
	}
	return s
}
