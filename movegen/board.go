package movegen

// Piece is a colored piece code. Black pieces are encoded as (type | 8) so
// that p&7 yields the colorless type and p&8 the side.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// CastlingRights is a bitmask of the four castling permissions.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)

// Square represents a board position (0-63, a1=0, h8=63).
type Square int

const NoSquare Square = -1

// MaxMoves bounds the number of pseudo-legal moves in any reachable position.
// Generation buffers sized to it never reallocate.
const MaxMoves = 256

// Board is a full position snapshot: piece placement, side to move, castling
// rights, en-passant target, clocks, and the zobrist key.
type Board struct {
	byType  [7]uint64 // indexed by PieceType; [0] unused
	byColor [2]uint64

	pieces [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int
	zobristKey      uint64
}

// ==========================
// Accessors
// ==========================

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// CastlingRightsMask returns the current castling permissions.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// HalfmoveClock returns the half-moves since the last capture or pawn advance.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the current zobrist key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.byColor[White] | b.byColor[Black] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.byColor[c] }

// Pieces returns the bitboard of the given piece type for the given color.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.byColor[c] & b.byType[pt] }

// KingSquare returns the king square of the given color.
func (b *Board) KingSquare(c Color) Square {
	return Square(lsb(b.byColor[c] & b.byType[PieceTypeKing]))
}

// ==========================
// Placement helpers
// ==========================

func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	b.pieces[int(sq)] = p
	b.byColor[p.Color()] |= bb(sq)
	b.byType[p.Type()] |= bb(sq)
	b.zobristKey ^= zobristPiece[p][int(sq)]
}

func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	b.pieces[int(sq)] = NoPiece
	b.byColor[p.Color()] &^= bb(sq)
	b.byType[p.Type()] &^= bb(sq)
	b.zobristKey ^= zobristPiece[p][int(sq)]
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// SetSideToMove updates the side to play.
func (b *Board) SetSideToMove(c Color) {
	if b.sideToMove != c {
		b.sideToMove = c
		b.zobristKey ^= zobristSide
	}
}

// ==========================
// Attack queries
// ==========================

// AttackersTo returns the bitboard of pieces of both colors attacking sq under
// the given occupancy.
func (b *Board) AttackersTo(sq Square, occ uint64) uint64 {
	s := int(sq)
	return (pawnAttacks[Black][s] & b.Pieces(White, PieceTypePawn)) |
		(pawnAttacks[White][s] & b.Pieces(Black, PieceTypePawn)) |
		(knightMoves[s] & b.byType[PieceTypeKnight]) |
		(kingMoves[s] & b.byType[PieceTypeKing]) |
		(rookAttacksOcc(s, occ) & (b.byType[PieceTypeRook] | b.byType[PieceTypeQueen])) |
		(bishopAttacksOcc(s, occ) & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen]))
}

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.AttackersTo(sq, b.AllOccupancy())&b.byColor[by] != 0
}

// Checkers returns the bitboard of enemy pieces giving check to the side to move.
func (b *Board) Checkers() uint64 {
	us := b.sideToMove
	return b.AttackersTo(b.KingSquare(us), b.AllOccupancy()) & b.byColor[1-us]
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(c Color) bool {
	if b.byColor[c]&b.byType[PieceTypeKing] == 0 {
		return false
	}
	return b.IsSquareAttacked(b.KingSquare(c), 1-c)
}

// BlockersForKing returns the pieces (of either color) that are the sole
// blocker on a line between an enemy slider and the king of color c. The
// caller's own pieces within the result are its pinned pieces; enemy pieces
// within it are discovered-check candidates.
func (b *Board) BlockersForKing(c Color) uint64 {
	ksq := int(b.KingSquare(c))
	them := 1 - c
	occ := b.AllOccupancy()

	snipers := (pseudoRookAttacks[ksq] & (b.Pieces(them, PieceTypeRook) | b.Pieces(them, PieceTypeQueen))) |
		(pseudoBishopAttacks[ksq] & (b.Pieces(them, PieceTypeBishop) | b.Pieces(them, PieceTypeQueen)))

	var blockers uint64
	for snipers != 0 {
		sniper := popLSB(&snipers)
		between := betweenBB[sniper][ksq] & occ &^ (uint64(1) << uint(ksq))
		if between != 0 && !moreThanOne(between) {
			blockers |= between
		}
	}
	return blockers
}

// CheckSquares returns the squares from which a piece of the given type (owned
// by the side to move) would give direct check to the enemy king.
func (b *Board) CheckSquares(pt PieceType) uint64 {
	them := 1 - b.sideToMove
	ksq := int(b.KingSquare(them))
	occ := b.AllOccupancy()
	switch pt {
	case PieceTypePawn:
		return pawnAttacks[them][ksq]
	case PieceTypeKnight:
		return knightMoves[ksq]
	case PieceTypeBishop:
		return bishopAttacksOcc(ksq, occ)
	case PieceTypeRook:
		return rookAttacksOcc(ksq, occ)
	case PieceTypeQueen:
		return queenAttacksOcc(ksq, occ)
	}
	return 0
}

// ==========================
// Legality predicates
// ==========================

// Legal reports whether a pseudo-legal move leaves the mover's own king safe.
// Only king moves, moves of pinned pieces, and en-passant captures can fail
// here; everything else the generator emits is legal by construction.
func (b *Board) Legal(m Move) bool {
	us := b.sideToMove
	them := 1 - us
	from, to := m.From(), m.To()
	ksq := b.KingSquare(us)
	occ := b.AllOccupancy()

	if m.Flags() == FlagEnPassant {
		// Simulate the capture: both pawns leave their squares, ours lands on
		// the en-passant square. The captured pawn sits behind 'to'.
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ = occ ^ bb(from) ^ bb(capSq) | bb(to)
		return rookAttacksOcc(int(ksq), occ)&(b.Pieces(them, PieceTypeRook)|b.Pieces(them, PieceTypeQueen)) == 0 &&
			bishopAttacksOcc(int(ksq), occ)&(b.Pieces(them, PieceTypeBishop)|b.Pieces(them, PieceTypeQueen)) == 0
	}

	// Castling is emitted only when the king's path is unattacked.
	if m.Flags() == FlagCastle {
		return true
	}

	if from == ksq {
		return b.AttackersTo(to, occ^bb(from))&b.byColor[them] == 0
	}

	// A pinned piece may only move along the pin line through the king.
	return b.BlockersForKing(us)&bb(from) == 0 || aligned(int(from), int(to), int(ksq))
}

// PseudoLegal reports whether the move could have been produced by the
// generator for the current position. Used to vet moves that arrive from
// outside (transposition table, killers, countermoves) before trying them.
func (b *Board) PseudoLegal(m Move) bool {
	if m == MoveNone {
		return false
	}
	us := b.sideToMove
	from, to := m.From(), m.To()
	moved := m.MovedPiece()

	if moved == NoPiece || b.pieces[int(from)] != moved || moved.Color() != us {
		return false
	}

	// Castling, en passant and promotions carry enough hidden structure that
	// membership in the generated list is the cleanest check. These arrive
	// rarely enough that the generation cost does not matter.
	if m.Flags() != FlagNone || m.PromotionPiece() != NoPiece {
		var buf [MaxMoves]ScoredMove
		gt := NonEvasions
		if b.Checkers() != 0 {
			gt = Evasions
		}
		for _, sm := range b.Generate(gt, buf[:0]) {
			if sm.Move == m {
				return true
			}
		}
		return false
	}

	// Destination and captured-piece consistency.
	if b.pieces[int(to)] != m.CapturedPiece() {
		return false
	}
	if b.byColor[us]&bb(to) != 0 {
		return false
	}

	occ := b.AllOccupancy()
	if moved.Type() == PieceTypePawn {
		// Promotions were handled above, so the pawn must not reach the last rank.
		if bb(to)&(Rank1BB|Rank8BB) != 0 {
			return false
		}
		up := 8
		doubleRank := Rank2BB
		if us == Black {
			up = -8
			doubleRank = Rank7BB
		}
		switch {
		case pawnAttacks[us][int(from)]&bb(to) != 0 && m.CapturedPiece() != NoPiece:
			// capture, consistency already verified
		case int(to) == int(from)+up && b.pieces[int(to)] == NoPiece:
			// single push
		case int(to) == int(from)+2*up && bb(from)&doubleRank != 0 &&
			b.pieces[int(from)+up] == NoPiece && b.pieces[int(to)] == NoPiece:
			// double push
		default:
			return false
		}
	} else if attacksFrom(moved.Type(), int(from), occ)&bb(to) == 0 {
		return false
	}

	// While in check the move must actually address the check.
	if checkers := b.Checkers(); checkers != 0 {
		if moved.Type() != PieceTypeKing {
			if moreThanOne(checkers) {
				return false
			}
			ksq := int(b.KingSquare(us))
			if betweenBB[ksq][lsb(checkers)]&bb(to) == 0 {
				return false
			}
		} else if b.AttackersTo(to, occ^bb(from))&b.byColor[1-us] != 0 {
			return false
		}
	}
	return true
}

// ==========================
// Game-state helpers
// ==========================

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var buf [MaxMoves]ScoredMove
	return len(b.Generate(Legal, buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.Checkers() != 0 && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return b.Checkers() == 0 && !b.HasLegalMoves()
}

// IsDrawBy50 reports a 50-move rule draw (the clock counts half-moves).
func (b *Board) IsDrawBy50() bool { return b.halfmoveClock >= 100 }

// IsDrawByRepetition reports a draw by threefold repetition given the zobrist
// history of prior positions. The current position counts as one occurrence.
func (b *Board) IsDrawByRepetition(history []uint64) bool {
	end := len(history)
	if end > 0 && history[end-1] == b.zobristKey {
		end--
	}
	matches := 0
	for i := 0; i < end; i++ {
		if history[i] == b.zobristKey {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}
