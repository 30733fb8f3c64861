package movegen_test

import (
	"testing"

	"goshawk/movegen"
)

func seeMove(t *testing.T, b *movegen.Board, s string) movegen.Move {
	t.Helper()
	m, err := b.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%s): %v", s, err)
	}
	return m
}

func TestSeeSimpleWinningCapture(t *testing.T) {
	// Rxe5: the pawn is defended by nothing, clean +100.
	b := mustParse(t, "1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1")
	m := seeMove(t, b, "e1e5")
	if !b.SeeGe(m, 100) {
		t.Error("Rxe5 should be worth a clean pawn")
	}
	if b.SeeGe(m, 101) {
		t.Error("Rxe5 should not exceed a pawn")
	}
}

func TestSeeLosingCapture(t *testing.T) {
	// Nxe5 wins a pawn but loses the knight to ...dxe5 (well, ...Bxe5 here).
	b := mustParse(t, "1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	m := seeMove(t, b, "d3e5")
	if !b.SeeGe(m, -200) {
		t.Error("Nxe5 should be exactly pawn minus knight")
	}
	if b.SeeGe(m, -199) {
		t.Error("Nxe5 should lose material")
	}
}

func TestSeeXrayRecapture(t *testing.T) {
	// Rxd5 is met by exd5 but the rook on d8 is backed by the queen behind
	// it; the exchange on d5 comes out even for the pawn.
	b := mustParse(t, "3r3k/3r4/2n1n3/8/3p4/2PR4/1B1Q4/3R3K w - - 0 1")
	// cxd4: pawn takes pawn, protected by knights, rooks stacked behind.
	m := seeMove(t, b, "c3d4")
	if !b.SeeGe(m, 0) {
		t.Error("cxd4 should not lose material: pawn takes pawn")
	}
}

func TestSeeQuietMoveThreshold(t *testing.T) {
	// A quiet move to a defended square fails any positive threshold but
	// meets zero when the square is safe.
	b := mustParse(t, movegen.FENStartPos)
	m := seeMove(t, b, "e2e4")
	if !b.SeeGe(m, 0) {
		t.Error("e2e4 stands on a safe square")
	}
	if b.SeeGe(m, 1) {
		t.Error("a quiet move never gains material")
	}
}

func TestSeeQuietMoveHangsPiece(t *testing.T) {
	// Qd1-h5 hangs the queen to the g6 pawn.
	b := mustParse(t, "rnbqkbnr/pppppp1p/6p1/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	m := seeMove(t, b, "d1h5")
	if b.SeeGe(m, 0) {
		t.Error("Qh5 hangs the queen to gxh5")
	}
}

func TestSeeSpecialMovesShortCircuit(t *testing.T) {
	b := mustParse(t, "k7/8/8/3pP3/8/8/8/4K2R w K d6 0 2")
	ep := seeMove(t, b, "e5d6")
	if ep.Flags() != movegen.FlagEnPassant {
		t.Fatalf("expected en passant, got %s flags=%d", ep, ep.Flags())
	}
	if !b.SeeGe(ep, 0) || b.SeeGe(ep, 1) {
		t.Error("en passant evaluates as exactly zero")
	}
	castle := seeMove(t, b, "e1g1")
	if castle.Flags() != movegen.FlagCastle {
		t.Fatalf("expected castle, got %s flags=%d", castle, castle.Flags())
	}
	if !b.SeeGe(castle, 0) || b.SeeGe(castle, 1) {
		t.Error("castling evaluates as exactly zero")
	}
}

func TestSeeExactThresholdExchange(t *testing.T) {
	// Rxd5 Bxd5 Nxd5 nets exactly pawn minus rook plus bishop = -100. The
	// exchange lands exactly on the threshold after the opponent's recapture,
	// which must not be mistaken for a failed one.
	b := mustParse(t, "k7/8/4b3/3p4/5N2/8/8/3R3K w - - 0 1")
	m := seeMove(t, b, "d1d5")
	if !b.SeeGe(m, -100) {
		t.Error("Rxd5 meets a threshold of exactly its -100 outcome")
	}
	if b.SeeGe(m, -99) {
		t.Error("Rxd5 nets no better than -100")
	}
}

func TestSeeKingRecaptureRules(t *testing.T) {
	// The d2 pawn is defended only by the king. With a rook backing the
	// queen, Kxd2 would be illegal, so Qxd2 simply wins the pawn.
	b := mustParse(t, "3r4/8/8/q7/8/8/3P4/3K3k b - - 0 1")
	m := seeMove(t, b, "a5d2")
	if !b.SeeGe(m, 100) {
		t.Error("with the recapture illegal, Qxd2 wins the full pawn")
	}
	if b.SeeGe(m, 101) {
		t.Error("Qxd2 wins exactly a pawn")
	}

	// Without the backing rook the king recaptures and the queen is lost.
	b = mustParse(t, "8/8/8/q7/8/8/3P4/3K3k b - - 0 1")
	m = seeMove(t, b, "a5d2")
	if !b.SeeGe(m, -800) {
		t.Error("Qxd2 Kxd2 nets pawn minus queen")
	}
	if b.SeeGe(m, -799) {
		t.Error("Qxd2 must lose the queen")
	}
}
