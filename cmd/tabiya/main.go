// Command tabiya is a diagnostic front end for the move generator: perft
// counting, divide output, board rendering, stepping through games and
// probing opening books.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tabiya-engine/tabiya/internal/board"
	"github.com/tabiya-engine/tabiya/internal/book"
	"github.com/tabiya-engine/tabiya/internal/game"
	"github.com/tabiya-engine/tabiya/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartingFEN, "position to operate on, FEN or EPD")
	perftDepth = flag.Int("perft", 0, "count leaf nodes to the given depth")
	divide     = flag.Int("divide", 0, "split the perft count by root move")
	useCache   = flag.Bool("cache", false, "persist perft results on disk")
	renderPos  = flag.Bool("render", false, "draw the position")
	step       = flag.String("step", "", "space-separated moves to play from the position")
	bookPath   = flag.String("book", "", "probe a Polyglot book for the position")
	debug      = flag.Bool("debug", false, "enable internal consistency checks")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

// printer formats node counts with thousands separators.
var printer = message.NewPrinter(language.English)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	board.DebugChecks = *debug

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	pos, err := board.ParsePosition(*fen)
	if err != nil {
		return err
	}

	switch {
	case *perftDepth > 0:
		return runPerft(pos, *perftDepth)
	case *divide > 0:
		return runDivide(pos, *divide)
	case *step != "":
		return runStep(*fen, *step)
	case *bookPath != "":
		return runBookProbe(pos, *bookPath)
	case *renderPos:
		fmt.Print(render(pos))
		fmt.Println(pos.FEN())
		return nil
	}

	flag.Usage()
	return nil
}

func runPerft(pos *board.Position, depth int) error {
	var nodes uint64
	start := time.Now()

	if *useCache {
		dir, err := storage.DefaultDir()
		if err != nil {
			return err
		}
		store, err := storage.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()
		if nodes, err = store.Perft(pos, depth); err != nil {
			return err
		}
	} else {
		nodes = pos.Perft(depth)
	}

	elapsed := time.Since(start)
	printer.Printf("perft(%d) = %d in %.3fs (%d nodes/s)\n",
		depth, nodes, elapsed.Seconds(), int64(float64(nodes)/elapsed.Seconds()))
	return nil
}

func runDivide(pos *board.Position, depth int) error {
	var total uint64
	for _, e := range pos.Divide(depth) {
		printer.Printf("%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	printer.Printf("total: %d\n", total)
	return nil
}

func runStep(startFEN, moves string) error {
	session, err := game.NewSessionFromFEN(startFEN)
	if err != nil {
		return err
	}

	for _, moveStr := range strings.Fields(moves) {
		pos := session.Position()
		m, err := pos.ParseMove(moveStr)
		if err != nil {
			return err
		}
		san := pos.ToSAN(m)
		if err := session.PlayMove(m); err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", san, moveStr)
	}

	fmt.Print(render(session.Position()))
	fmt.Println(session.Position().FEN())
	if outcome, reason := session.Outcome(); outcome != game.Ongoing {
		fmt.Printf("%s (%s)\n", outcome, reason)
	}
	return nil
}

func runBookProbe(pos *board.Position, path string) error {
	b, err := book.Load(path)
	if err != nil {
		return err
	}
	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		fmt.Println("position not in book")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s\tweight %d\n", e.Move, e.Weight)
	}
	return nil
}
