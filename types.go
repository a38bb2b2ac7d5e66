package chess

import "fmt"

// NOTE: Piece, PieceType and Color constant values are carefully chosen to
// allow for bit operations between them, and are used directly as array
// indices by the PSQT and phase-weight tables in eval.go.

// Color represents the color of a chess piece or side to move.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the FEN-compatible notation for the color.
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// PieceType is the type of a piece, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 15
)

var pieceTypeLetters = [6]string{"p", "n", "b", "r", "q", "k"}

// String returns the lowercase FEN letter for the piece type.
func (pt PieceType) String() string {
	if pt > King {
		return ""
	}
	return pieceTypeLetters[pt]
}

// AllPieceTypes lists the six piece types in material-ascending order,
// which also happens to be the order SEE and MVV-LVA want to iterate in.
var AllPieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// Piece is a piece type with a color, packed as color<<3|type (White
// pieces 0..5, Black pieces 8..13).
type Piece uint8

const NoPiece Piece = 255

// NewPiece packs a color and piece type into a Piece.
func NewPiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)<<3 | uint8(pt))
}

// Type returns the piece type of the receiver.
func (p Piece) Type() PieceType {
	return PieceType(p & 0x7)
}

// Color returns the color of the receiver.
func (p Piece) Color() Color {
	return Color(p >> 3)
}

// String implements fmt.Stringer, returning the FEN letter (uppercase for
// white, lowercase for black).
func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	s := p.Type().String()
	if p.Color() == White {
		return fmt.Sprintf("%s", upper(s))
	}
	return s
}

func upper(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// File is a board file, a=0..h=7.
type File uint8

// Rank is a board rank, 1=0..8=7.
type Rank uint8

func (f File) String() string {
	return string(rune('a' + f))
}

func (r Rank) String() string {
	return string(rune('1' + r))
}

// Square is a board square, a1=0..h8=63 (file = sq%8, rank = sq/8).
type Square uint8

const NoSquare Square = 64

// NewSquare builds a Square from a file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(uint8(r)*8 + uint8(f))
}

// File returns the file of the receiver.
func (sq Square) File() File {
	return File(sq % 8)
}

// Rank returns the rank of the receiver.
func (sq Square) Rank() Rank {
	return Rank(sq / 8)
}

// String returns algebraic notation for the square, e.g. "e4".
func (sq Square) String() string {
	if sq == NoSquare || sq > 63 {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// ParseSquare parses algebraic notation, e.g. "e4", into a Square.
func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	f := s[0]
	r := s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	return NewSquare(File(f-'a'), Rank(r-'1')), nil
}

// Named squares used by castling and en-passant logic.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// CastlingRights is a 4-bit mask: WK, WQ, BK, BQ from low to high bit.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// String renders castling rights in FEN order (KQkq), or "-" if none.
func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// kingSideRights and queenSideRights index by Color.
var kingSideRights = [2]CastlingRights{WhiteKingSide, BlackKingSide}
var queenSideRights = [2]CastlingRights{WhiteQueenSide, BlackQueenSide}
