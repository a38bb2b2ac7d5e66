package chess

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// UCI protocol loop: a bufio.Scanner over stdin dispatches each line on
// its first token to the matching command handler below.
type UCIEngine struct {
	game     *Game
	searcher *Searcher
	tt       *TranspositionTable
	out      io.Writer
}

// NewUCIEngine wires a fresh session, transposition table, and searcher
// together, ready to run the protocol loop. cfg seeds the searcher's
// tuning knobs (aspiration delta, null-move reduction, LMR divisor, RFP
// margin); its HashSizeMB sizes the initial transposition table.
func NewUCIEngine(out io.Writer, cfg TuningConfig) *UCIEngine {
	tt := NewTranspositionTable(cfg.HashSizeMB)
	searcher := NewSearcher(tt)
	searcher.Config = cfg
	return &UCIEngine{
		game:     NewGame(),
		searcher: searcher,
		tt:       tt,
		out:      out,
	}
}

// Run drives the UCI loop over in until EOF, `quit`, or `quit` arrives.
func (e *UCIEngine) Run(in io.Reader) {
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

// dispatch handles one line, returning true if the engine should exit.
func (e *UCIEngine) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		fmt.Fprintln(e.out, "id name magus")
		fmt.Fprintln(e.out, "id author the engine's developers")
		fmt.Fprintln(e.out, "option name Hash type spin default 64 min 1 max 4096")
		fmt.Fprintln(e.out, "uciok")
	case "isready":
		fmt.Fprintln(e.out, "readyok")
	case "ucinewgame":
		e.tt.Clear()
		e.searcher.Order.Clear()
		e.game = NewGame()
	case "position":
		e.handlePosition(args)
	case "go":
		e.handleGo(args)
	case "stop":
		e.searcher.Stop()
	case "setoption":
		e.handleSetOption(args)
	case "d":
		fmt.Fprintln(e.out, e.game.Position().Board().Draw())
		fmt.Fprintln(e.out, "Fen:", e.game.Position().String())
	case "perft":
		if len(args) >= 1 {
			depth, err := strconv.Atoi(args[0])
			if err == nil {
				e.handlePerft(depth)
			}
		}
	case "eval":
		fmt.Fprintln(e.out, e.game.Position().Evaluate())
	case "svg":
		if len(args) >= 1 {
			e.handleSVG(args[0])
		}
	case "quit":
		return true
	default:
		fmt.Fprintf(e.out, "info string unknown command %q\n", cmd)
	}
	return false
}

func (e *UCIEngine) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	var fen string
	var rest []string
	switch args[0] {
	case "startpos":
		fen = startFEN
		rest = args[1:]
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		fen = strings.Join(args[1:end], " ")
		rest = args[end:]
	default:
		fmt.Fprintf(e.out, "info string invalid position command\n")
		return
	}

	g, err := NewGameFromFEN(fen)
	if err != nil {
		fmt.Fprintf(e.out, "info string %s\n", err)
		return
	}
	e.game = g

	if len(rest) > 0 && rest[0] == "moves" {
		for _, mv := range rest[1:] {
			if err := e.game.Move(mv); err != nil {
				fmt.Fprintf(e.out, "info string %s\n", err)
				return
			}
		}
	}
}

func (e *UCIEngine) handleGo(args []string) {
	var limits SearchLimits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i])
			}
		case "movetime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
			}
		case "wtime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				limits.WTime = time.Duration(ms) * time.Millisecond
			}
		case "btime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				limits.BTime = time.Duration(ms) * time.Millisecond
			}
		case "winc":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				limits.WInc = time.Duration(ms) * time.Millisecond
			}
		case "binc":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				limits.BInc = time.Duration(ms) * time.Millisecond
			}
		case "movestogo":
			i++
			if i < len(args) {
				limits.MovesToGo, _ = strconv.Atoi(args[i])
			}
		case "nodes":
			i++
			if i < len(args) {
				n, _ := strconv.Atoi(args[i])
				limits.Nodes = uint64(n)
			}
		case "infinite":
			limits.Infinite = true
		}
	}

	e.searcher.Info = func(info SearchInfo) {
		fmt.Fprint(e.out, "info depth ", info.Depth)
		if info.Mate != 0 {
			fmt.Fprint(e.out, " score mate ", info.Mate)
		} else {
			fmt.Fprint(e.out, " score cp ", info.Score)
		}
		fmt.Fprint(e.out, " nodes ", info.Nodes, " nps ", info.NPS, " time ", info.Time.Milliseconds())
		if len(info.PV) > 0 {
			fmt.Fprint(e.out, " pv")
			for _, m := range info.PV {
				fmt.Fprint(e.out, " ", m.String())
			}
		}
		fmt.Fprintln(e.out)
	}

	best := e.searcher.SearchPosition(e.game.Position(), limits)
	fmt.Fprintln(e.out, "bestmove", best.String())
}

func (e *UCIEngine) handleSetOption(args []string) {
	// setoption name Hash value <MB>
	var name, value string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
			}
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
			}
		}
	}
	if strings.EqualFold(name, "Hash") {
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			mb = 1
			fmt.Fprintln(e.out, "info string invalid Hash value, using 1 MB")
		}
		e.tt = NewTranspositionTable(mb)
		e.searcher.TT = e.tt
	}
}

// handleSVG writes an SVG diagram of the current position to path, for
// GUIs or scripts that want a visual board dump alongside `d`'s text grid.
func (e *UCIEngine) handleSVG(path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(e.out, "info string %s\n", err)
		return
	}
	defer f.Close()
	WriteDiagram(f, e.game.Position())
}

func (e *UCIEngine) handlePerft(depth int) {
	start := time.Now()
	entries := PerftDivide(e.game.Position(), depth)
	var total uint64
	for _, entry := range entries {
		fmt.Fprintf(e.out, "%s: %d\n", entry.Move.String(), entry.Nodes)
		total += entry.Nodes
	}
	fmt.Fprintln(e.out)
	fmt.Fprintln(e.out, "Nodes searched:", total)
	fmt.Fprintln(e.out, "Time:", time.Since(start))
}
