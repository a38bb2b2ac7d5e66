package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Black king on e8 is checked simultaneously by the knight on f6 and
	// the rook on e1 along the open e-file: a genuine double check, where
	// only king moves can be legal.
	pos, err := ParseFEN("4k3/8/5N2/8/8/8/8/4R1K1 b - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 2, pos.Checkers().Count())
	ml := pos.GenerateLegalMoves()
	require.NotZero(t, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		require.Equal(t, E8, ml.At(i).From(), "double check must only generate king moves")
	}
}

func TestEnPassantFifthRankPin(t *testing.T) {
	// White king and rook share the fifth rank with a black pawn that just
	// played a double push and a white pawn that could capture it en
	// passant; capturing would expose the white king to the black rook
	// along that rank, so the en passant capture must be excluded.
	pos, err := ParseFEN("8/8/8/1K2Pp1r/8/8/8/7k w - f6 0 1")
	require.NoError(t, err)
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		require.False(t, m.IsEnPassant(), "5th-rank-pin en passant must be illegal")
	}
}

func TestEnPassantCaptureAllowedWithoutPin(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/1p1pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	found := false
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).IsEnPassant() {
			found = true
		}
	}
	require.True(t, found)
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f8 covers f1, so White may not castle kingside even
	// though the king's start/end squares are themselves safe.
	pos, err := ParseFEN("5rk1/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		require.False(t, ml.At(i).IsCastle(), "castling through an attacked square must be illegal")
	}
}

func TestPinnedPieceRestrictedToRay(t *testing.T) {
	// White rook on e1 is pinned to its king on h1 by the black queen on
	// a1 along the first rank.
	pos, err := ParseFEN("3k4/8/8/8/8/8/8/q3R2K w - - 0 1")
	require.NoError(t, err)
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == E1 {
			// the rook may only move along the a1-h1 rank it is pinned on.
			require.Equal(t, Rank(0), m.To().Rank())
		}
	}
}
