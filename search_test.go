package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(4))
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := ParseFEN("4k3/8/4K3/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)
	s := newTestSearcher()
	best := s.SearchPosition(pos, SearchLimits{Depth: 2})
	require.NotEqual(t, NoMove, best)

	child := pos.MakeMove(best)
	require.Empty(t, movesOf(child.GenerateLegalMoves()))
	require.True(t, child.InCheck())
}

func TestSearchStalemateReturnsNoMove(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.False(t, pos.InCheck())
	ml := pos.GenerateLegalMoves()
	require.Equal(t, 0, ml.Len())

	s := newTestSearcher()
	best := s.SearchPosition(pos, SearchLimits{Depth: 1})
	require.Equal(t, NoMove, best)
}

func TestQuiescenceDoesNotPreferUnsoundBishopCapture(t *testing.T) {
	// Bxf7+ looks tempting to a depth-1-only search but loses the bishop;
	// a quiescence-backed eval at low depth must not prefer it.
	pos, err := ParseFEN("r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)
	s := newTestSearcher()
	best := s.SearchPosition(pos, SearchLimits{Depth: 4})
	require.NotEqual(t, Move(NewMove(C4, F7, FlagCapture)), best)
}

func movesOf(ml *MoveList) []Move {
	out := make([]Move, ml.Len())
	for i := range out {
		out[i] = ml.At(i)
	}
	return out
}
