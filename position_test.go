package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// TestTransposingMoveOrdersReachIdenticalPosition exercises invariant #2 from
// the other direction: two independent, non-interacting move orders must
// transpose into a struct-for-struct identical Position (history aside,
// since the two paths push different intermediate hashes).
func TestTransposingMoveOrdersReachIdenticalPosition(t *testing.T) {
	playLine := func(moves []string) *Position {
		pos := StartingPosition()
		for _, mv := range moves {
			ml := pos.GenerateLegalMoves()
			m, err := ml.ParseLongAlgebraic(mv)
			require.NoError(t, err)
			pos = pos.MakeMove(m)
		}
		return pos
	}

	a := playLine([]string{"g1f3", "g8f6", "b1c3", "b8c6"})
	b := playLine([]string{"b1c3", "b8c6", "g1f3", "g8f6"})

	diff := cmp.Diff(a, b, cmp.AllowUnexported(Position{}, Board{}), cmpopts.IgnoreFields(Position{}, "history"))
	require.Empty(t, diff, "commuting move orders must transpose to the identical position")
}

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		startFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/4K3/8/8/8/8/R7 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)
		require.Equal(t, fen, pos.String())
	}
}

func TestParseFENRejectsOpponentInCheck(t *testing.T) {
	// White's king on h4 is attacked by the black queen on d8 while it is
	// Black to move -- White's own king being left in check by White's
	// previous move is illegal.
	_, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/7K/8/PPPPPPPP/RNBQ1BNR b kq - 0 1")
	require.Error(t, err)
}

// TestIncrementalHashMatchesRecompute exercises invariant #2: hash updated
// incrementally by MakeMove must equal a from-scratch Zobrist recompute.
func TestIncrementalHashMatchesRecompute(t *testing.T) {
	pos := StartingPosition()
	require.Equal(t, pos.recomputeHash(), pos.Hash())

	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5a4", "g8f6"}
	for _, mv := range moves {
		ml := pos.GenerateLegalMoves()
		m, err := ml.ParseLongAlgebraic(mv)
		require.NoError(t, err)
		pos = pos.MakeMove(m)
		require.Equal(t, pos.recomputeHash(), pos.Hash(), "after move %s", mv)
	}
}

func TestCastlingRightsClearedByRookCapture(t *testing.T) {
	// A white rook sits en prise on h1 to a black bishop on the long
	// diagonal; capturing it must clear White's kingside castling right
	// even though White's own king and rook never moved.
	pos, err := ParseFEN("4k3/8/2b5/8/8/8/8/4K2R b K - 0 1")
	require.NoError(t, err)
	pos = pos.MakeMove(mustMove(t, pos, "c6h1"))
	require.Equal(t, CastlingRights(0), pos.Castling())
}

func mustMove(t *testing.T, pos *Position, s string) Move {
	t.Helper()
	ml := pos.GenerateLegalMoves()
	m, err := ml.ParseLongAlgebraic(s)
	require.NoError(t, err)
	return m
}

func TestThreefoldRepetition(t *testing.T) {
	pos := StartingPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, mv := range shuffle {
		ml := pos.GenerateLegalMoves()
		m, err := ml.ParseLongAlgebraic(mv)
		require.NoError(t, err)
		pos = pos.MakeMove(m)
	}
	require.True(t, pos.IsRepetition())
}

func TestInsufficientMaterial(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.HasInsufficientMaterial())

	pos2, err := ParseFEN("8/8/4k3/8/8/4K2N/8/8 w - - 0 1")
	require.NoError(t, err)
	require.True(t, pos2.HasInsufficientMaterial())

	pos3, err := ParseFEN("8/8/4k3/8/8/4K1NN/8/8 w - - 0 1")
	require.NoError(t, err)
	require.False(t, pos3.HasInsufficientMaterial())
}
