package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSEEWinningCapture(t *testing.T) {
	pos, err := ParseFEN("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, E1, E5)
	require.True(t, pos.SEEGe(m, 0))
}

func TestSEELosingCapture(t *testing.T) {
	pos, err := ParseFEN("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, D3, E5)
	require.False(t, pos.SEEGe(m, 0))
}

func findMove(t *testing.T, pos *Position, from, to Square) Move {
	t.Helper()
	ml := pos.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == from && m.To() == to {
			return m
		}
	}
	t.Fatalf("no legal move %s%s in %s", from, to, pos)
	return NoMove
}
