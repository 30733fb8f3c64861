package engine

import (
	"testing"

	"goshawk/movegen"
)

func quietMove(from, to movegen.Square) movegen.Move {
	return movegen.NewMove(from, to, movegen.WhiteKnight, movegen.NoPiece, movegen.NoPiece, movegen.FlagNone)
}

func TestGravityStaysBounded(t *testing.T) {
	var h ButterflyHistory
	m := quietMove(1, 18)
	for i := 0; i < 1000; i++ {
		h.Update(movegen.White, m, historyMax)
	}
	if v := h.Get(movegen.White, m); v > historyMax {
		t.Errorf("history exceeded bound: %d", v)
	}
	for i := 0; i < 1000; i++ {
		h.Update(movegen.White, m, -historyMax)
	}
	if v := h.Get(movegen.White, m); v < -historyMax {
		t.Errorf("history exceeded negative bound: %d", v)
	}
}

func TestGravityDecaysTowardBonus(t *testing.T) {
	var h ButterflyHistory
	m := quietMove(1, 18)
	h.Update(movegen.White, m, 1000)
	first := h.Get(movegen.White, m)
	if first != 1000 {
		t.Fatalf("first update from zero: got %d want 1000", first)
	}
	h.Update(movegen.White, m, 1000)
	second := h.Get(movegen.White, m)
	if second <= first || second >= 2000 {
		t.Errorf("second update should grow sublinearly: %d -> %d", first, second)
	}
}

func TestButterflyIsPerSide(t *testing.T) {
	var h ButterflyHistory
	m := quietMove(1, 18)
	h.Update(movegen.White, m, 500)
	if h.Get(movegen.Black, m) != 0 {
		t.Error("update leaked across sides")
	}
	h.Clear()
	if h.Get(movegen.White, m) != 0 {
		t.Error("clear did not reset")
	}
}

func TestKillerSlots(t *testing.T) {
	var k KillerTable
	m1 := quietMove(1, 18)
	m2 := quietMove(6, 21)

	k.Insert(m1, 3)
	k.Insert(m1, 3) // re-inserting the head is a no-op
	got := k.Get(3)
	if got[0] != m1 || got[1] != movegen.MoveNone {
		t.Fatalf("after inserting one killer twice: %v", got)
	}

	k.Insert(m2, 3)
	got = k.Get(3)
	if got[0] != m2 || got[1] != m1 {
		t.Fatalf("second killer should demote the first: %v", got)
	}
	if k.Get(4) != [2]movegen.Move{} {
		t.Error("killers leaked across plies")
	}
}

func TestCounterMoveTable(t *testing.T) {
	var c CounterMoveTable
	reply := quietMove(57, 42)
	c.Insert(movegen.BlackKnight, 42, reply)
	if c.Get(movegen.BlackKnight, 42) != reply {
		t.Error("countermove not stored")
	}
	if c.Get(movegen.BlackKnight, 43) != movegen.MoveNone {
		t.Error("countermove returned for wrong key")
	}
}

func TestLowPlyCeiling(t *testing.T) {
	var h LowPlyHistory
	m := quietMove(1, 18)
	h.Update(lowPlyLimit, m, 800) // out of range, must be ignored
	if h.Get(lowPlyLimit, m) != 0 {
		t.Error("out-of-range ply should read zero")
	}
	h.Update(0, m, 800)
	if h.Get(0, m) != 800 {
		t.Errorf("in-range update lost: %d", h.Get(0, m))
	}
}

func TestUpdateQuietStatsSigns(t *testing.T) {
	var h History
	best := quietMove(1, 18)
	alsoTried := quietMove(6, 21)
	cont := h.Continuation.Entry(movegen.BlackPawn, 28)

	h.UpdateQuietStats(movegen.White, 2, 6, best, []movegen.Move{alsoTried, best}, []*PieceToHistory{cont})

	if h.Butterfly.Get(movegen.White, best) <= 0 {
		t.Error("cutoff move should gain history")
	}
	if h.Butterfly.Get(movegen.White, alsoTried) >= 0 {
		t.Error("tried-and-failed move should lose history")
	}
	if cont.Get(best) <= 0 || cont.Get(alsoTried) >= 0 {
		t.Error("continuation entries should move with the butterfly ones")
	}
	if h.LowPly.Get(2, best) <= 0 {
		t.Error("low-ply table should credit the cutoff move")
	}
}

func TestUpdateCaptureStatsSigns(t *testing.T) {
	var h History
	best := movegen.NewMove(28, 36, movegen.WhiteKnight, movegen.BlackPawn, movegen.NoPiece, movegen.FlagNone)
	tried := movegen.NewMove(3, 36, movegen.WhiteQueen, movegen.BlackPawn, movegen.NoPiece, movegen.FlagNone)

	h.UpdateCaptureStats(6, best, []movegen.Move{tried, best})
	if h.Capture.Get(best) <= 0 {
		t.Error("winning capture should gain history")
	}
	if h.Capture.Get(tried) >= 0 {
		t.Error("failed capture should lose history")
	}
}

func TestStatBonusSaturates(t *testing.T) {
	if statBonus(1) <= 0 {
		t.Error("shallow bonus should be positive")
	}
	if statBonus(40) != statBonus(50) {
		t.Error("bonus should saturate at depth")
	}
	if statBonus(0) != 0 {
		t.Errorf("depth 0 bonus: got %d", statBonus(0))
	}
}
