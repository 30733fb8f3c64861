package engine

import (
	"goshawk/movegen"
)

// MaxPly is the deepest search ply the per-ply tables support.
const MaxPly = 128

// historyMax bounds every history entry. The gravity update decays entries
// toward zero proportionally to their magnitude, so values settle inside
// [-historyMax, historyMax] without explicit clamping on read.
const historyMax = 16384

func gravity(entry *int32, bonus int32) {
	b := clamp(bonus, -historyMax, historyMax)
	*entry += b - *entry*abs32(b)/historyMax
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// ButterflyHistory ranks quiet moves by from/to square, per side to move,
// independent of the moving piece.
type ButterflyHistory struct {
	table [2][64 * 64]int32
}

func butterflyIndex(m movegen.Move) int {
	return int(m.From())*64 + int(m.To())
}

func (h *ButterflyHistory) Get(stm movegen.Color, m movegen.Move) int32 {
	return h.table[stm][butterflyIndex(m)]
}

func (h *ButterflyHistory) Update(stm movegen.Color, m movegen.Move, bonus int32) {
	gravity(&h.table[stm][butterflyIndex(m)], bonus)
}

func (h *ButterflyHistory) Clear() {
	h.table = [2][64 * 64]int32{}
}

// CaptureHistory ranks captures by moving piece, destination square and the
// type of the captured piece.
type CaptureHistory struct {
	table [16][64][7]int32
}

func (h *CaptureHistory) Get(m movegen.Move) int32 {
	return h.table[m.MovedPiece()][m.To()][m.CapturedPiece().Type()]
}

func (h *CaptureHistory) Update(m movegen.Move, bonus int32) {
	gravity(&h.table[m.MovedPiece()][m.To()][m.CapturedPiece().Type()], bonus)
}

func (h *CaptureHistory) Clear() {
	h.table = [16][64][7]int32{}
}

// PieceToHistory ranks moves by moving piece and destination square. It is
// the unit the continuation history hands out per predecessor move.
type PieceToHistory struct {
	table [16][64]int32
}

func (h *PieceToHistory) Get(m movegen.Move) int32 {
	return h.table[m.MovedPiece()][m.To()]
}

func (h *PieceToHistory) Update(m movegen.Move, bonus int32) {
	gravity(&h.table[m.MovedPiece()][m.To()], bonus)
}

// ContinuationHistory keys a full PieceToHistory off the piece and
// destination of an earlier move in the line, so quiets are ranked in the
// context of what was just played. Entry with a zero move (piece 0, square 0)
// serves as the sentinel for plies near the root.
type ContinuationHistory struct {
	table [16][64]PieceToHistory
}

func (h *ContinuationHistory) Entry(piece movegen.Piece, to movegen.Square) *PieceToHistory {
	return &h.table[piece][to]
}

func (h *ContinuationHistory) Clear() {
	h.table = [16][64]PieceToHistory{}
}

// LowPlyHistory ranks quiets near the root by ply and from/to square. It is
// cleared every search, so it reflects only the current iteration.
type LowPlyHistory struct {
	table [lowPlyLimit][64 * 64]int32
}

// lowPlyLimit is the ply ceiling below which LowPlyHistory applies.
const lowPlyLimit = 4

func (h *LowPlyHistory) Get(ply int, m movegen.Move) int32 {
	if ply >= lowPlyLimit {
		return 0
	}
	return h.table[ply][butterflyIndex(m)]
}

func (h *LowPlyHistory) Update(ply int, m movegen.Move, bonus int32) {
	if ply >= lowPlyLimit {
		return
	}
	gravity(&h.table[ply][butterflyIndex(m)], bonus)
}

func (h *LowPlyHistory) Clear() {
	h.table = [lowPlyLimit][64 * 64]int32{}
}

// KillerTable stores up to two quiet moves per ply that recently caused a
// beta cutoff at that ply.
type KillerTable struct {
	moves [MaxPly + 1][2]movegen.Move
}

// Insert records a killer, demoting the previous first slot. Reinserting the
// current first slot is a no-op so the two slots stay distinct.
func (k *KillerTable) Insert(m movegen.Move, ply int) {
	if m != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = m
	}
}

func (k *KillerTable) Get(ply int) [2]movegen.Move {
	return k.moves[ply]
}

func (k *KillerTable) Clear() {
	k.moves = [MaxPly + 1][2]movegen.Move{}
}

// CounterMoveTable stores the quiet refutation of the opponent's previous
// move, keyed by that move's piece and destination.
type CounterMoveTable struct {
	moves [16][64]movegen.Move
}

func (c *CounterMoveTable) Insert(prevPiece movegen.Piece, prevTo movegen.Square, m movegen.Move) {
	c.moves[prevPiece][prevTo] = m
}

func (c *CounterMoveTable) Get(prevPiece movegen.Piece, prevTo movegen.Square) movegen.Move {
	return c.moves[prevPiece][prevTo]
}

func (c *CounterMoveTable) Clear() {
	c.moves = [16][64]movegen.Move{}
}

// History bundles every ordering table a search thread owns.
type History struct {
	Butterfly    ButterflyHistory
	Capture      CaptureHistory
	Continuation ContinuationHistory
	LowPly       LowPlyHistory
	Killers      KillerTable
	Counters     CounterMoveTable
}

// Clear resets all tables, as at the start of a new game.
func (h *History) Clear() {
	h.Butterfly.Clear()
	h.Capture.Clear()
	h.Continuation.Clear()
	h.LowPly.Clear()
	h.Killers.Clear()
	h.Counters.Clear()
}

// statBonus scales a cutoff bonus with depth, saturating for deep nodes.
func statBonus(depth int) int32 {
	b := int32(depth)*172 - 34
	if b > 1624 {
		b = 1624
	}
	if b < 0 {
		b = 0
	}
	return b
}

// UpdateQuietStats credits a quiet move that caused a cutoff and debits the
// quiets searched before it. conts holds the continuation entries for the
// recent predecessor moves, innermost first.
func (h *History) UpdateQuietStats(stm movegen.Color, ply, depth int, best movegen.Move, tried []movegen.Move, conts []*PieceToHistory) {
	bonus := statBonus(depth)

	h.Butterfly.Update(stm, best, bonus)
	h.LowPly.Update(ply, best, bonus)
	for _, ct := range conts {
		ct.Update(best, bonus)
	}

	for _, m := range tried {
		if m == best {
			continue
		}
		h.Butterfly.Update(stm, m, -bonus)
		h.LowPly.Update(ply, m, -bonus)
		for _, ct := range conts {
			ct.Update(m, -bonus)
		}
	}
}

// UpdateCaptureStats credits a winning capture and debits the captures tried
// before it.
func (h *History) UpdateCaptureStats(depth int, best movegen.Move, tried []movegen.Move) {
	bonus := statBonus(depth)
	if best.IsCapture() {
		h.Capture.Update(best, bonus)
	}
	for _, m := range tried {
		if m == best {
			continue
		}
		h.Capture.Update(m, -bonus)
	}
}
