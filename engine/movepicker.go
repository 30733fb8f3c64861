package engine

import (
	"goshawk/movegen"
)

// Qsearch depth thresholds. At depthQSChecks quiet checks are still
// generated; at or below depthQSRecaptures only recaptures on one square are
// considered.
const (
	depthQSChecks     = 0
	depthQSRecaptures = -5
)

// seeGateScale tunes how losing a capture may be, relative to its own score,
// before it is deferred behind the quiets. Expressed in 1024ths.
const seeGateScale = 55

type pickStage uint8

const (
	stageMainTT pickStage = iota
	stageCaptureInit
	stageGoodCapture
	stageRefutation
	stageQuietInit
	stageQuiet
	stageBadCapture

	stageEvasionTT
	stageEvasionInit
	stageEvasion

	stageProbCutTT
	stageProbCutInit
	stageProbCut

	stageQSearchTT
	stageQCaptureInit
	stageQCapture
	stageQCheckInit
	stageQCheck
)

// MovePicker hands out the moves of one node, most promising first, without
// ever building a fully sorted list. Generation is staged: the hash move is
// tried before anything is generated, captures before quiets, and losing
// captures last, so a cutoff early in the node skips most of the work.
//
// A picker is single-use and bound to the position it was created for; it
// must not outlive a MakeMove on that board.
type MovePicker struct {
	board   *movegen.Board
	history *History

	ttMove      movegen.Move
	refutations [3]movegen.Move
	conts       [3]*PieceToHistory

	depth       int
	ply         int
	threshold   int
	recaptureSq movegen.Square

	stage  pickStage
	cur    int // next unpicked index in the staged capture/evasion region
	endBad int // bad captures live in buf[badIdx:endBad]
	end    int // end of the staged capture/evasion region
	badIdx int
	quiets []movegen.ScoredMove
	qcur   int

	buf [movegen.MaxMoves]movegen.ScoredMove
}

// NewMovePicker builds a picker for a main search node. counter is the
// refutation recorded for the opponent's previous move, and conts are the
// continuation entries of the recent predecessor moves, innermost first
// (nil entries are ignored). In check the picker switches to evasions.
func NewMovePicker(b *movegen.Board, ttMove movegen.Move, depth, ply int, hist *History, counter movegen.Move, conts [3]*PieceToHistory) *MovePicker {
	mp := &MovePicker{
		board:   b,
		history: hist,
		depth:   depth,
		ply:     ply,
		conts:   conts,
	}

	k := hist.Killers.Get(ply)
	mp.refutations = [3]movegen.Move{k[0], k[1], counter}
	if counter == k[0] || counter == k[1] {
		mp.refutations[2] = movegen.MoveNone
	}

	if b.Checkers() != 0 {
		mp.stage = stageEvasionTT
	} else {
		mp.stage = stageMainTT
	}
	mp.setTTMove(ttMove != movegen.MoveNone && b.PseudoLegal(ttMove), ttMove)
	return mp
}

// NewQMovePicker builds a picker for a quiescence node. depth must be at most
// depthQSChecks; recaptureSq is the destination of the previous move and
// gates which captures are considered once depth drops to
// depthQSRecaptures or below.
func NewQMovePicker(b *movegen.Board, ttMove movegen.Move, depth int, recaptureSq movegen.Square, hist *History) *MovePicker {
	mp := &MovePicker{
		board:       b,
		history:     hist,
		depth:       depth,
		ply:         MaxPly, // out of LowPlyHistory range
		recaptureSq: recaptureSq,
	}

	if b.Checkers() != 0 {
		mp.stage = stageEvasionTT
		mp.setTTMove(ttMove != movegen.MoveNone && b.PseudoLegal(ttMove), ttMove)
		return mp
	}

	mp.stage = stageQSearchTT
	ok := ttMove != movegen.MoveNone &&
		b.PseudoLegal(ttMove) &&
		(depth > depthQSRecaptures || ttMove.To() == recaptureSq)
	mp.setTTMove(ok, ttMove)
	return mp
}

// NewProbCutPicker builds a picker that yields only captures whose static
// exchange evaluation meets threshold.
func NewProbCutPicker(b *movegen.Board, ttMove movegen.Move, threshold int, hist *History) *MovePicker {
	mp := &MovePicker{
		board:     b,
		history:   hist,
		ply:       MaxPly,
		threshold: threshold,
		stage:     stageProbCutTT,
	}
	ok := ttMove != movegen.MoveNone &&
		b.PseudoLegal(ttMove) &&
		ttMove.IsCapture() &&
		b.SeeGe(ttMove, threshold)
	mp.setTTMove(ok, ttMove)
	return mp
}

func (mp *MovePicker) setTTMove(ok bool, ttMove movegen.Move) {
	if ok {
		mp.ttMove = ttMove
	} else {
		mp.ttMove = movegen.MoveNone
		mp.stage++ // straight to generation
	}
}

// Next returns the next move to search, or MoveNone when the node is
// exhausted. The hash move is returned exactly once and never again from a
// later stage. With skipQuiets the quiet stage yields nothing, but
// refutations and losing captures are still produced.
func (mp *MovePicker) Next(skipQuiets bool) movegen.Move {
	for {
		switch mp.stage {

		case stageMainTT, stageEvasionTT, stageQSearchTT, stageProbCutTT:
			mp.stage++
			return mp.ttMove

		case stageCaptureInit, stageProbCutInit, stageQCaptureInit:
			caps := mp.board.Generate(movegen.Captures, mp.buf[:0])
			mp.cur, mp.endBad, mp.end = 0, 0, len(caps)
			mp.scoreCaptures(caps)
			mp.stage++

		case stageGoodCapture:
			for mp.cur < mp.end {
				sm := mp.pickBest()
				if sm.Move == mp.ttMove {
					continue
				}
				if !mp.board.SeeGe(sm.Move, -int(sm.Value)*seeGateScale/1024) {
					// Losing capture: park it at the front, over a slot we
					// already handed out, and retry from the quiets.
					mp.buf[mp.endBad] = sm
					mp.endBad++
					continue
				}
				return sm.Move
			}
			mp.stage = stageRefutation

		case stageRefutation:
			for mp.badIdx < len(mp.refutations) {
				m := mp.refutations[mp.badIdx]
				mp.badIdx++
				if m == movegen.MoveNone || m == mp.ttMove || m.IsCapture() {
					continue
				}
				if !mp.board.PseudoLegal(m) {
					continue
				}
				return m
			}
			mp.badIdx = 0
			mp.stage = stageQuietInit

		case stageQuietInit:
			if !skipQuiets {
				qs := mp.board.Generate(movegen.Quiets, mp.buf[mp.end:mp.end])
				mp.scoreQuiets(qs)
				partialInsertionSort(qs, int32(-3000*mp.depth))
				mp.quiets = qs
			}
			mp.qcur = 0
			mp.stage = stageQuiet

		case stageQuiet:
			if !skipQuiets {
				for mp.qcur < len(mp.quiets) {
					m := mp.quiets[mp.qcur].Move
					mp.qcur++
					if m == mp.ttMove || mp.isRefutation(m) {
						continue
					}
					return m
				}
			}
			mp.stage = stageBadCapture

		case stageBadCapture:
			if mp.badIdx < mp.endBad {
				m := mp.buf[mp.badIdx].Move
				mp.badIdx++
				return m
			}
			return movegen.MoveNone

		case stageEvasionInit:
			evs := mp.board.Generate(movegen.Evasions, mp.buf[:0])
			mp.cur, mp.end = 0, len(evs)
			mp.scoreEvasions(evs)
			mp.stage = stageEvasion

		case stageEvasion:
			for mp.cur < mp.end {
				sm := mp.pickBest()
				if sm.Move == mp.ttMove {
					continue
				}
				return sm.Move
			}
			return movegen.MoveNone

		case stageProbCut:
			for mp.cur < mp.end {
				sm := mp.pickBest()
				if sm.Move == mp.ttMove || !mp.board.SeeGe(sm.Move, mp.threshold) {
					continue
				}
				return sm.Move
			}
			return movegen.MoveNone

		case stageQCapture:
			for mp.cur < mp.end {
				sm := mp.pickBest()
				if sm.Move == mp.ttMove {
					continue
				}
				if mp.depth <= depthQSRecaptures && sm.Move.To() != mp.recaptureSq {
					continue
				}
				return sm.Move
			}
			if mp.depth != depthQSChecks {
				return movegen.MoveNone
			}
			mp.stage = stageQCheckInit

		case stageQCheckInit:
			mp.quiets = mp.board.Generate(movegen.QuietChecks, mp.buf[mp.end:mp.end])
			mp.qcur = 0
			mp.stage = stageQCheck

		case stageQCheck:
			for mp.qcur < len(mp.quiets) {
				m := mp.quiets[mp.qcur].Move
				mp.qcur++
				if m == mp.ttMove {
					continue
				}
				return m
			}
			return movegen.MoveNone

		default:
			return movegen.MoveNone
		}
	}
}

func (mp *MovePicker) isRefutation(m movegen.Move) bool {
	return m == mp.refutations[0] || m == mp.refutations[1] || m == mp.refutations[2]
}

// pickBest swaps the highest-scored remaining move of the staged region into
// position cur and consumes it. Selection sort, one element per call: cheaper
// than a full sort at nodes that cut off after a move or two.
func (mp *MovePicker) pickBest() movegen.ScoredMove {
	best := mp.cur
	for i := mp.cur + 1; i < mp.end; i++ {
		if mp.buf[i].Value > mp.buf[best].Value {
			best = i
		}
	}
	mp.buf[mp.cur], mp.buf[best] = mp.buf[best], mp.buf[mp.cur]
	sm := mp.buf[mp.cur]
	mp.cur++
	return sm
}

func (mp *MovePicker) scoreCaptures(list []movegen.ScoredMove) {
	for i := range list {
		m := list[i].Move
		v := 6*int32(movegen.SeeValue[m.CapturedPiece().Type()]) + mp.history.Capture.Get(m)
		if promo := m.PromotionPiece(); promo != movegen.NoPiece {
			v += int32(movegen.SeeValue[promo.Type()] - movegen.SeeValue[movegen.PieceTypePawn])
		}
		list[i].Value = v
	}
}

func (mp *MovePicker) scoreQuiets(list []movegen.ScoredMove) {
	stm := mp.board.SideToMove()
	for i := range list {
		m := list[i].Move
		v := mp.history.Butterfly.Get(stm, m)
		if mp.conts[0] != nil {
			v += 2 * mp.conts[0].Get(m)
		}
		if mp.conts[1] != nil {
			v += mp.conts[1].Get(m)
		}
		if mp.conts[2] != nil {
			v += mp.conts[2].Get(m)
		}
		if mp.ply < lowPlyLimit {
			v += 4 * mp.history.LowPly.Get(mp.ply, m)
		}
		list[i].Value = v
	}
}

// scoreEvasions ranks captures of the checker above everything else, best
// victim with the cheapest piece first, and quiet evasions by history.
func (mp *MovePicker) scoreEvasions(list []movegen.ScoredMove) {
	stm := mp.board.SideToMove()
	for i := range list {
		m := list[i].Move
		if m.IsCapture() {
			list[i].Value = int32(movegen.SeeValue[m.CapturedPiece().Type()]) -
				int32(m.MovedPiece().Type()) + (1 << 28)
			continue
		}
		v := mp.history.Butterfly.Get(stm, m)
		if mp.conts[0] != nil {
			v += mp.conts[0].Get(m)
		}
		list[i].Value = v
	}
}

// partialInsertionSort sorts the moves scoring at least limit to the front in
// descending order and leaves the rest unsorted behind them.
func partialInsertionSort(list []movegen.ScoredMove, limit int32) {
	sortedEnd := 0
	for p := 1; p < len(list); p++ {
		if list[p].Value >= limit {
			tmp := list[p]
			sortedEnd++
			list[p] = list[sortedEnd]
			q := sortedEnd
			for ; q > 0 && list[q-1].Value < tmp.Value; q-- {
				list[q] = list[q-1]
			}
			list[q] = tmp
		}
	}
}
