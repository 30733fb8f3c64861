package movegen

// Perft counts leaf nodes of the legal move tree to the given depth. It walks
// fully legal moves, so MakeMove never rejects one.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]ScoredMove, depth+1)}
	return perftRec(b, depth, &pc)
}

// perftCtx holds one reusable generation buffer per remaining depth, so the
// whole walk allocates a bounded amount regardless of node count.
type perftCtx struct {
	bufs [][]ScoredMove
}

func (pc *perftCtx) bufFor(depth int) []ScoredMove {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]ScoredMove, 0, MaxMoves)
	}
	return pc.bufs[depth][:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.Generate(Legal, pc.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for i := range moves {
		_, st := b.MakeMove(moves[i].Move)
		nodes += perftRec(b, depth-1, pc)
		b.UnmakeMove(st)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by move.
// Useful for diffing against another engine when a perft total disagrees.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var buf [MaxMoves]ScoredMove
	moves := b.Generate(Legal, buf[:0])
	for i := range moves {
		m := moves[i].Move
		_, st := b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove(st)
	}
	return result
}
