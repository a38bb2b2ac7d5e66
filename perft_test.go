package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Perft node counts exercise the full legal move generator -- pins,
// castling, en passant, promotions, check evasion -- against known-correct
// totals. These are the standard Perft Results reference positions.
func TestPerft(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"startpos", startFEN, 5, 4865609},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},
		{"endgame-rook", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
		{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, 2103487},
		{"position6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, 3894594},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			require.NoError(t, err)
			require.Equal(t, tc.nodes, Perft(pos, tc.depth))
		})
	}
}

func TestPerftShallow(t *testing.T) {
	pos := StartingPosition()
	require.Equal(t, uint64(20), Perft(pos, 1))
	require.Equal(t, uint64(400), Perft(pos, 2))
	require.Equal(t, uint64(8902), Perft(pos, 3))
}
