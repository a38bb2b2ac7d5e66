package chess

import "fmt"

// Game is the session-level wrapper the UCI/XBoard loops drive: it tracks
// the position history needed for repetition/undo and derives game-over
// status, exposing only FEN and long algebraic to the protocol loops.
type Game struct {
	positions []*Position
}

// Outcome is the result of a finished game.
type Outcome int

const (
	NoOutcome Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Method explains why an Outcome was reached.
type Method int

const (
	NoMethod Method = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
	Resignation
)

// NewGame starts a session from the standard initial position.
func NewGame() *Game {
	return &Game{positions: []*Position{StartingPosition()}}
}

// NewGameFromFEN starts a session from an arbitrary FEN.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{positions: []*Position{pos}}, nil
}

// Position returns the current position.
func (g *Game) Position() *Position {
	return g.positions[len(g.positions)-1]
}

// Move validates and applies a long-algebraic move string against the
// current position.
func (g *Game) Move(s string) error {
	ml := g.Position().GenerateLegalMoves()
	m, err := ml.ParseLongAlgebraic(s)
	if err != nil {
		return err
	}
	g.MakeMove(m)
	return nil
}

// MakeMove applies an already-validated Move, appending to history.
func (g *Game) MakeMove(m Move) {
	g.positions = append(g.positions, g.Position().MakeMove(m))
}

// Undo pops the most recent move, for XBoard's `undo` command. It is a
// no-op (returns false) at the starting position.
func (g *Game) Undo() bool {
	if len(g.positions) <= 1 {
		return false
	}
	g.positions = g.positions[:len(g.positions)-1]
	return true
}

// Remove pops the last two plies, for XBoard's `remove` command (undoes
// both the engine's move and the opponent's).
func (g *Game) Remove() bool {
	if len(g.positions) <= 2 {
		return false
	}
	g.positions = g.positions[:len(g.positions)-2]
	return true
}

// Status reports whether the game has ended and, if so, how.
func (g *Game) Status() (Outcome, Method) {
	pos := g.Position()
	ml := pos.GenerateLegalMoves()
	if ml.Len() == 0 {
		if pos.InCheck() {
			if pos.Turn() == White {
				return BlackWins, Checkmate
			}
			return WhiteWins, Checkmate
		}
		return Draw, Stalemate
	}
	if pos.IsFiftyMoveDraw() {
		return Draw, FiftyMoveRule
	}
	if pos.IsRepetition() {
		return Draw, ThreefoldRepetition
	}
	if pos.HasInsufficientMaterial() {
		return Draw, InsufficientMaterial
	}
	return NoOutcome, NoMethod
}

// Over reports whether Status returns anything other than NoOutcome.
func (g *Game) Over() bool {
	outcome, _ := g.Status()
	return outcome != NoOutcome
}

// String renders the game's result in PGN-style notation ("1-0", "0-1",
// "1/2-1/2", or "*" while still in progress).
func (g *Game) String() string {
	outcome, _ := g.Status()
	switch outcome {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ResultComment renders a human-readable reason for XBoard's result line,
// e.g. "{Checkmate}".
func ResultComment(m Method) string {
	switch m {
	case Checkmate:
		return "{Checkmate}"
	case Stalemate:
		return "{Stalemate}"
	case FiftyMoveRule:
		return "{Draw by fifty-move rule}"
	case ThreefoldRepetition:
		return "{Draw by threefold repetition}"
	case InsufficientMaterial:
		return "{Draw by insufficient material}"
	case Resignation:
		return "{Resignation}"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

func (m Method) String() string {
	switch m {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	case Resignation:
		return "resignation"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}
