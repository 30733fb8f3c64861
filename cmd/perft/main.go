package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"goshawk/movegen"
)

func main() {
	fen := flag.String("fen", movegen.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	compare := flag.Bool("compare", false, "Diff per-move counts against a reference generator")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := movegen.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *compare {
		os.Exit(comparePerft(board, *fen, *depth))
	}

	if *divide {
		div := movegen.PerftDivide(board, *depth)
		// Sort moves for stable output
		type kv struct {
			m movegen.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m.String(), x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += movegen.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	secs := elapsed.Seconds()
	nps := float64(totalNodes) / secs

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// comparePerft diffs our per-root-move counts against dragontoothmg and
// returns a process exit code. Narrows a perft disagreement to the first
// root move whose subtree differs.
func comparePerft(b *movegen.Board, fen string, depth int) int {
	ours := make(map[string]uint64)
	for m, n := range movegen.PerftDivide(b, depth) {
		ours[m.String()] = n
	}

	// The FEN was already validated by our own ParseFEN above.
	ob := dragontoothmg.ParseFen(fen)
	theirs := make(map[string]uint64)
	for _, m := range ob.GenerateLegalMoves() {
		unapply := ob.Apply(m)
		theirs[m.String()] = refPerft(&ob, depth-1)
		unapply()
	}

	keys := make([]string, 0, len(ours)+len(theirs))
	for k := range ours {
		keys = append(keys, k)
	}
	for k := range theirs {
		if _, ok := ours[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	mismatches := 0
	var ourTotal, refTotal uint64
	for _, k := range keys {
		on, oOK := ours[k]
		tn, tOK := theirs[k]
		ourTotal += on
		refTotal += tn
		switch {
		case !oOK:
			fmt.Printf("%s: missing (reference has %d)\n", k, tn)
			mismatches++
		case !tOK:
			fmt.Printf("%s: extra (%d nodes, reference has no such move)\n", k, on)
			mismatches++
		case on != tn:
			fmt.Printf("%s: %d vs reference %d\n", k, on, tn)
			mismatches++
		}
	}
	fmt.Printf("Total: %d vs reference %d (%d moves differ)\n", ourTotal, refTotal, mismatches)
	if mismatches > 0 {
		return 1
	}
	return 0
}

func refPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += refPerft(b, depth-1)
		unapply()
	}
	return nodes
}
