package chess

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVG board rendering, additive to Board.Draw()'s plain-text grid, which
// stays the fallback for terminals and log output. Used by the UCI loop's
// `svg <path>` debug command (uci.go).

const (
	squareSize  = 60
	boardMargin = 20
)

var squareLight = "fill:#f0d9b5"
var squareDark = "fill:#b58863"

// pieceGlyph is the Unicode chess glyph for each piece, used as SVG text.
var pieceGlyph = map[Piece]string{
	NewPiece(White, Pawn):   "♙",
	NewPiece(White, Knight): "♘",
	NewPiece(White, Bishop): "♗",
	NewPiece(White, Rook):   "♖",
	NewPiece(White, Queen):  "♕",
	NewPiece(White, King):   "♔",
	NewPiece(Black, Pawn):   "♟",
	NewPiece(Black, Knight): "♞",
	NewPiece(Black, Bishop): "♝",
	NewPiece(Black, Rook):   "♜",
	NewPiece(Black, Queen):  "♛",
	NewPiece(Black, King):   "♚",
}

// WriteDiagram renders pos as an 8x8 SVG board to w, with a1 in the
// bottom-left corner (White's perspective).
func WriteDiagram(w io.Writer, pos *Position) {
	dim := boardMargin*2 + squareSize*8
	canvas := svg.New(w)
	canvas.Start(dim, dim)
	defer canvas.End()

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			x := boardMargin + f*squareSize
			y := boardMargin + (7-r)*squareSize
			style := squareLight
			if (r+f)%2 == 0 {
				style = squareDark
			}
			canvas.Rect(x, y, squareSize, squareSize, style)

			sq := NewSquare(File(f), Rank(r))
			p := pos.Board().PieceAt(sq)
			if p == NoPiece {
				continue
			}
			glyph, ok := pieceGlyph[p]
			if !ok {
				continue
			}
			canvas.Text(x+squareSize/2, y+squareSize*2/3, glyph,
				"text-anchor:middle;font-size:36px")
		}
	}
}
