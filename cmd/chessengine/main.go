// Command chessengine is the entrypoint: it auto-detects whether the
// connecting GUI speaks UCI or XBoard/CECP from the first non-blank input
// line, then hands the rest of stdin to that protocol's loop.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	chess "github.com/mkvance/magus"
)

func main() {
	cfg, err := chess.LoadTuningConfig("engine.toml")
	if err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "chessengine: %s, using defaults\n", err)
		cfg = chess.DefaultTuningConfig()
	}

	reader := bufio.NewReader(os.Stdin)
	first, rest, err := firstLine(reader)
	if err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "chessengine:", err)
		os.Exit(1)
	}

	switch strings.TrimSpace(first) {
	case "xboard":
		engine := chess.NewXBoardEngine(os.Stdout, cfg)
		engine.Run(rest)
	default:
		// Default to UCI, replaying the first line if it was itself a
		// UCI command (most GUIs send "uci" first).
		pr, pw := io.Pipe()
		go func() {
			defer pw.Close()
			if strings.TrimSpace(first) != "" {
				fmt.Fprintln(pw, first)
			}
			io.Copy(pw, rest)
		}()
		engine := chess.NewUCIEngine(os.Stdout, cfg)
		engine.Run(pr)
	}
}

// firstLine reads the first non-blank line from r and returns it along
// with a Reader over everything that follows, so protocol auto-detection
// doesn't consume input the chosen protocol's own loop still needs.
func firstLine(r *bufio.Reader) (string, io.Reader, error) {
	for {
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) != "" || err != nil {
			return line, r, err
		}
	}
}
