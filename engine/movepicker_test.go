package engine_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"goshawk/engine"
	"goshawk/movegen"
)

func mustParse(t *testing.T, fen string) *movegen.Board {
	t.Helper()
	b, err := movegen.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func mustMove(t *testing.T, b *movegen.Board, s string) movegen.Move {
	t.Helper()
	m, err := b.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%s): %v", s, err)
	}
	return m
}

func drain(mp *engine.MovePicker, skipQuiets bool) []movegen.Move {
	var out []movegen.Move
	for {
		m := mp.Next(skipQuiets)
		if m == movegen.MoveNone {
			return out
		}
		out = append(out, m)
	}
}

func stringsOf(moves []movegen.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func generateSet(b *movegen.Board, gt movegen.GenType) []string {
	var buf [movegen.MaxMoves]movegen.ScoredMove
	moves := b.Generate(gt, buf[:0])
	out := make([]string, 0, len(moves))
	for _, sm := range moves {
		out = append(out, sm.Move.String())
	}
	sort.Strings(out)
	return out
}

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// A knight on f3 can win nothing on e5 (guarded by the d6 pawn) while the a4
// pawn wins the b5 knight outright.
const goodBadCaptureFEN = "k7/8/3p4/1n2p3/P7/5N2/8/6K1 w - - 0 1"

func TestPickerYieldsTTMoveFirstAndOnce(t *testing.T) {
	b := mustParse(t, kiwipeteFEN)
	hist := &engine.History{}
	tt := mustMove(t, b, "e2a6")

	mp := engine.NewMovePicker(b, tt, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := drain(mp, false)
	if len(got) == 0 || got[0] != tt {
		t.Fatalf("hash move not first: %v", stringsOf(got[:min(3, len(got))]))
	}
	for _, m := range got[1:] {
		if m == tt {
			t.Fatal("hash move returned twice")
		}
	}
}

func TestPickerExhaustsExactlyNonEvasions(t *testing.T) {
	b := mustParse(t, kiwipeteFEN)
	hist := &engine.History{}
	tt := mustMove(t, b, "e2a6")

	mp := engine.NewMovePicker(b, tt, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := stringsOf(drain(mp, false))

	seen := make(map[string]bool, len(got))
	for _, m := range got {
		if seen[m] {
			t.Fatalf("duplicate move %s", m)
		}
		seen[m] = true
	}
	sort.Strings(got)
	if diff := cmp.Diff(generateSet(b, movegen.NonEvasions), got); diff != "" {
		t.Errorf("picker output differs from NonEvasions (-want +got):\n%s", diff)
	}
	if mp.Next(false) != movegen.MoveNone {
		t.Error("exhausted picker must keep returning no move")
	}
}

func TestPickerRejectsBogusTTMove(t *testing.T) {
	b := mustParse(t, kiwipeteFEN)
	hist := &engine.History{}
	// A pawn push from an empty square: encodable, never pseudo-legal.
	bogus := movegen.NewMove(16, 24, movegen.WhitePawn, movegen.NoPiece, movegen.NoPiece, movegen.FlagNone)

	mp := engine.NewMovePicker(b, bogus, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := drain(mp, false)
	if len(got) == 0 {
		t.Fatal("picker yielded nothing")
	}
	for _, m := range got {
		if m == bogus {
			t.Fatal("pseudo-illegal hash move was returned")
		}
	}
}

func TestPickerOrdersGoodCapturesFirstBadLast(t *testing.T) {
	b := mustParse(t, goodBadCaptureFEN)
	hist := &engine.History{}

	mp := engine.NewMovePicker(b, movegen.MoveNone, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := drain(mp, false)
	if len(got) < 3 {
		t.Fatalf("expected captures and quiets, got %v", stringsOf(got))
	}
	if got[0].String() != "a4b5" {
		t.Errorf("winning capture should lead: %v", stringsOf(got))
	}
	if got[len(got)-1].String() != "f3e5" {
		t.Errorf("losing capture should come last: %v", stringsOf(got))
	}
}

func TestPickerKillersPrecedeOtherQuiets(t *testing.T) {
	b := mustParse(t, kiwipeteFEN)
	hist := &engine.History{}
	const ply = 5
	killer := mustMove(t, b, "a2a4")
	counter := mustMove(t, b, "g2g3")
	hist.Killers.Insert(killer, ply)

	mp := engine.NewMovePicker(b, movegen.MoveNone, 8, ply, hist, counter, [3]*engine.PieceToHistory{})
	got := drain(mp, false)

	pos := make(map[string]int, len(got))
	for i, m := range got {
		pos[m.String()] = i
	}
	for _, ref := range []string{"a2a4", "g2g3"} {
		refPos, ok := pos[ref]
		if !ok {
			t.Fatalf("refutation %s missing from %v", ref, stringsOf(got))
		}
		for m, i := range pos {
			if m == "a2a4" || m == "g2g3" {
				continue
			}
			pm, err := b.ParseMove(m)
			if err != nil || pm.IsCapture() {
				continue
			}
			if i < refPos {
				t.Errorf("quiet %s (at %d) came before refutation %s (at %d)", m, i, ref, refPos)
			}
		}
	}
}

func TestPickerSkipQuietsStillYieldsTacticalMoves(t *testing.T) {
	b := mustParse(t, goodBadCaptureFEN)
	hist := &engine.History{}

	mp := engine.NewMovePicker(b, movegen.MoveNone, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := drain(mp, true)
	want := []string{"a4b5", "f3e5"}
	gotStr := stringsOf(got)
	sort.Strings(gotStr)
	if diff := cmp.Diff(want, gotStr); diff != "" {
		t.Errorf("skipQuiets output (-want +got):\n%s", diff)
	}
}

func TestPickerEvasionsCaptureCheckerFirst(t *testing.T) {
	// The f3 knight checks; Nd2xf3 is the highest-ranked evasion.
	b := mustParse(t, "k7/8/8/8/8/5n2/3N4/4K3 w - - 0 1")
	hist := &engine.History{}

	mp := engine.NewMovePicker(b, movegen.MoveNone, 8, 2, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	got := drain(mp, false)
	if len(got) == 0 {
		t.Fatal("no evasions yielded")
	}
	if got[0].String() != "d2f3" {
		t.Errorf("capturing the checker should lead: %v", stringsOf(got))
	}
	gotStr := stringsOf(got)
	sort.Strings(gotStr)
	if diff := cmp.Diff(generateSet(b, movegen.Evasions), gotStr); diff != "" {
		t.Errorf("evasion set mismatch (-want +got):\n%s", diff)
	}
}

func TestProbCutPickerHonorsThreshold(t *testing.T) {
	b := mustParse(t, goodBadCaptureFEN)
	hist := &engine.History{}

	mp := engine.NewProbCutPicker(b, movegen.MoveNone, 200, hist)
	got := stringsOf(drain(mp, false))
	if diff := cmp.Diff([]string{"a4b5"}, got); diff != "" {
		t.Errorf("probcut at +200 (-want +got):\n%s", diff)
	}

	mp = engine.NewProbCutPicker(b, movegen.MoveNone, 400, hist)
	if got := drain(mp, false); len(got) != 0 {
		t.Errorf("probcut at +400 should yield nothing, got %v", stringsOf(got))
	}
}

func TestQPickerRecaptureOnlyAtLowDepth(t *testing.T) {
	b := mustParse(t, goodBadCaptureFEN)
	hist := &engine.History{}

	mp := engine.NewQMovePicker(b, movegen.MoveNone, -6, 36, hist) // e5
	got := stringsOf(drain(mp, false))
	if diff := cmp.Diff([]string{"f3e5"}, got); diff != "" {
		t.Errorf("deep qsearch recaptures (-want +got):\n%s", diff)
	}

	mp = engine.NewQMovePicker(b, movegen.MoveNone, 0, 36, hist)
	got = stringsOf(drain(mp, false))
	sort.Strings(got)
	want := []string{"a4b5", "f3e5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("qsearch at check depth (-want +got):\n%s", diff)
	}
}

func TestQPickerGeneratesQuietChecksAtDepthZero(t *testing.T) {
	// Re1-e5+ is the only quiet check; no captures exist.
	b := mustParse(t, "8/8/8/3k4/8/8/3P4/3KR3 w - - 0 1")
	hist := &engine.History{}

	mp := engine.NewQMovePicker(b, movegen.MoveNone, 0, movegen.NoSquare, hist)
	got := stringsOf(drain(mp, false))
	if diff := cmp.Diff([]string{"e1e5"}, got); diff != "" {
		t.Errorf("quiet checks at depth 0 (-want +got):\n%s", diff)
	}

	mp = engine.NewQMovePicker(b, movegen.MoveNone, -1, movegen.NoSquare, hist)
	if got := drain(mp, false); len(got) != 0 {
		t.Errorf("below depth 0 no quiet checks: %v", stringsOf(got))
	}
}

func TestPickerPrefersHighHistoryQuiets(t *testing.T) {
	b := mustParse(t, kiwipeteFEN)
	hist := &engine.History{}
	favored := mustMove(t, b, "d2h6")
	for i := 0; i < 20; i++ {
		hist.Butterfly.Update(movegen.White, favored, 1500)
	}

	mp := engine.NewMovePicker(b, movegen.MoveNone, 8, 10, hist, movegen.MoveNone, [3]*engine.PieceToHistory{})
	for {
		m := mp.Next(false)
		if m == movegen.MoveNone {
			t.Fatal("favored quiet never returned")
		}
		if m.IsCapture() {
			continue
		}
		if m != favored {
			t.Errorf("first quiet was %s, want %s", m, favored)
		}
		break
	}
}
