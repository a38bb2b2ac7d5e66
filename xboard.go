package chess

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// XBoard/CECP protocol loop, using the same bufio.Scanner line-dispatch
// idiom as uci.go.
type XBoardEngine struct {
	game     *Game
	searcher *Searcher
	tt       *TranspositionTable
	out      io.Writer

	forceMode bool
	post      bool

	// level/time controls, translated into SearchLimits per go.
	baseTime  time.Duration
	increment time.Duration
	movesToGo int
	fixedDepth int
}

// NewXBoardEngine wires a fresh session, transposition table, and
// searcher together, ready to run the protocol loop. cfg seeds the
// searcher's tuning knobs; its HashSizeMB sizes the initial transposition
// table.
func NewXBoardEngine(out io.Writer, cfg TuningConfig) *XBoardEngine {
	tt := NewTranspositionTable(cfg.HashSizeMB)
	searcher := NewSearcher(tt)
	searcher.Config = cfg
	return &XBoardEngine{
		game:     NewGame(),
		searcher: searcher,
		tt:       tt,
		out:      out,
	}
}

// Run drives the XBoard loop over in until EOF or `quit`.
func (e *XBoardEngine) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if e.dispatch(line) {
			return
		}
	}
}

func (e *XBoardEngine) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "xboard":
		// no reply required
	case "protover":
		fmt.Fprintln(e.out, "feature myname=\"magus\" setboard=1 san=0 usermove=1 ping=1 sigint=0 sigterm=0 memory=1 done=1")
	case "new":
		e.game = NewGame()
		e.forceMode = false
		e.tt.Clear()
		e.searcher.Order.Clear()
	case "force":
		e.forceMode = true
	case "playother":
		e.forceMode = false
	case "go":
		e.forceMode = false
		e.think()
	case "level":
		e.handleLevel(args)
	case "st":
		if len(args) >= 1 {
			secs, err := strconv.Atoi(args[0])
			if err == nil {
				e.baseTime = time.Duration(secs) * time.Second
				e.movesToGo = 1
			}
		}
	case "sd":
		if len(args) >= 1 {
			e.fixedDepth, _ = strconv.Atoi(args[0])
		}
	case "time":
		if len(args) >= 1 {
			cs, err := strconv.Atoi(args[0])
			if err == nil {
				e.baseTime = time.Duration(cs) * 10 * time.Millisecond
			}
		}
	case "otim":
		// opponent clock, not needed for our own time management.
	case "usermove":
		if len(args) >= 1 {
			e.handleUserMove(args[0])
		}
	case "?":
		e.searcher.Stop()
	case "ping":
		if len(args) >= 1 {
			fmt.Fprintf(e.out, "pong %s\n", args[0])
		} else {
			fmt.Fprintln(e.out, "pong")
		}
	case "setboard":
		fen := strings.Join(args, " ")
		g, err := NewGameFromFEN(fen)
		if err != nil {
			fmt.Fprintf(e.out, "Error (bad FEN): %s\n", err)
			return false
		}
		e.game = g
	case "hint":
		// no opening book/hint source; silently ignore.
	case "undo":
		e.game.Undo()
	case "remove":
		e.game.Remove()
	case "hard":
		// pondering is a Non-goal; accepted and ignored.
	case "easy":
	case "post":
		e.post = true
	case "nopost":
		e.post = false
	case "analyze":
		// continuous analysis is a Non-goal; accepted and ignored.
	case "exit":
		// leave analyze mode; nothing to do since we never entered it.
	case "memory":
		if len(args) >= 1 {
			mb, err := strconv.Atoi(args[0])
			if err == nil && mb >= 1 {
				e.tt = NewTranspositionTable(mb)
				e.searcher.TT = e.tt
			}
		}
	case "quit":
		return true
	default:
		fmt.Fprintf(e.out, "Error (unknown command): %s\n", cmd)
	}
	return false
}

func (e *XBoardEngine) handleLevel(args []string) {
	// level MPS BASE INC
	if len(args) < 3 {
		return
	}
	mps, _ := strconv.Atoi(args[0])
	e.movesToGo = mps

	baseStr := args[1]
	var baseSec int
	if strings.Contains(baseStr, ":") {
		parts := strings.SplitN(baseStr, ":", 2)
		mins, _ := strconv.Atoi(parts[0])
		secs, _ := strconv.Atoi(parts[1])
		baseSec = mins*60 + secs
	} else {
		mins, _ := strconv.Atoi(baseStr)
		baseSec = mins * 60
	}
	e.baseTime = time.Duration(baseSec) * time.Second

	incSec, _ := strconv.Atoi(args[2])
	e.increment = time.Duration(incSec) * time.Second
}

func (e *XBoardEngine) handleUserMove(mv string) {
	if err := e.game.Move(mv); err != nil {
		fmt.Fprintf(e.out, "Illegal move: %s\n", mv)
		return
	}
	if e.reportIfOver() {
		return
	}
	if !e.forceMode {
		e.think()
	}
}

func (e *XBoardEngine) think() {
	limits := SearchLimits{MovesToGo: e.movesToGo}
	if e.fixedDepth > 0 {
		limits.Depth = e.fixedDepth
	}
	turn := e.game.Position().Turn()
	if turn == White {
		limits.WTime, limits.WInc = e.baseTime, e.increment
	} else {
		limits.BTime, limits.BInc = e.baseTime, e.increment
	}

	if e.post {
		e.searcher.Info = func(info SearchInfo) {
			pv := make([]string, len(info.PV))
			for i, m := range info.PV {
				pv[i] = m.String()
			}
			score := info.Score
			if info.Mate != 0 {
				score = mateScore - abs(info.Mate)
			}
			fmt.Fprintf(e.out, "%d %d %d %d %s\n",
				info.Depth, score, info.Time.Milliseconds()/10, info.Nodes, strings.Join(pv, " "))
		}
	} else {
		e.searcher.Info = nil
	}

	best := e.searcher.SearchPosition(e.game.Position(), limits)
	if best == NoMove {
		e.reportIfOver()
		return
	}
	e.game.MakeMove(best)
	fmt.Fprintf(e.out, "move %s\n", best.String())
	e.reportIfOver()
}

// reportIfOver emits the XBoard result line when the game has just ended,
// and reports whether it did.
func (e *XBoardEngine) reportIfOver() bool {
	outcome, method := e.game.Status()
	if outcome == NoOutcome {
		return false
	}
	fmt.Fprintf(e.out, "%s %s\n", e.game.String(), ResultComment(method))
	return true
}
