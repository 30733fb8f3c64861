package movegen

import "strings"

// Move encodes a chess move in a 32-bit value: origin, destination, moved
// piece, captured piece, promotion piece, and a special-move flag.
type Move uint32

// MoveNone is the absent move. It is distinct from every real move because a
// real move always carries a non-zero moved piece.
const MoveNone Move = 0

// Bitfield layout within Move (from LSB to MSB).
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags. Promotion is indicated by a non-zero promotion piece.
const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(piece&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promotion&0xF)<<movePromoteShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(uint32(m) >> moveFromShift & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// MovedPiece returns the piece that is moved.
func (m Move) MovedPiece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece. En-passant captures
// carry the captured pawn here even though it does not sit on the destination.
func (m Move) CapturedPiece() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// PromotionPiece returns the promotion piece, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece(uint32(m) >> movePromoteShift & 0xF) }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

// IsCapture reports whether the move takes a piece (including en passant).
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	from, to := m.From(), m.To()
	s := string([]byte{
		'a' + byte(from%8), '1' + byte(from/8),
		'a' + byte(to%8), '1' + byte(to/8),
	})
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += strings.ToLower(string(charFromPiece(promo)))
	}
	return s
}

// ScoredMove pairs a move with a transient ordering key. The key is only
// meaningful within the generation batch that assigned it.
type ScoredMove struct {
	Move  Move
	Value int32
}

// GivesCheck reports whether the move (assumed pseudo-legal for the side to
// move) leaves the opponent's king in check, without mutating board state.
func (b *Board) GivesCheck(m Move) bool {
	us := b.sideToMove
	them := 1 - us
	if b.byColor[them]&b.byType[PieceTypeKing] == 0 {
		return false
	}
	ksq := int(b.KingSquare(them))
	from, to := m.From(), m.To()

	// Direct check by the arriving piece.
	finalType := m.MovedPiece().Type()
	if promo := m.PromotionPiece(); promo != NoPiece {
		finalType = promo.Type()
	}
	if b.CheckSquares(finalType)&bb(to) != 0 {
		// Promotion attacks must be recomputed with the pawn gone, but the
		// vacated origin square can only widen the attack set, never shrink it.
		return true
	}

	// Discovered check: the mover was shielding the enemy king and steps off
	// the shared line.
	if b.BlockersForKing(them)&bb(from) != 0 && !aligned(int(from), int(to), ksq) {
		return true
	}

	occ := b.AllOccupancy()
	switch {
	case m.PromotionPiece() != NoPiece:
		return attacksFrom(finalType, int(to), occ^bb(from))&bb(Square(ksq)) != 0

	case m.Flags() == FlagEnPassant:
		// Two squares empty out at once; rescan the sliders.
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ = occ ^ bb(from) ^ bb(capSq) | bb(to)
		return rookAttacksOcc(ksq, occ)&(b.Pieces(us, PieceTypeRook)|b.Pieces(us, PieceTypeQueen)) != 0 ||
			bishopAttacksOcc(ksq, occ)&(b.Pieces(us, PieceTypeBishop)|b.Pieces(us, PieceTypeQueen)) != 0

	case m.Flags() == FlagCastle:
		// Only the rook can deliver check after castling.
		rookTo := castleRookTo(us, to)
		occ = occ ^ bb(from) | bb(to)
		return rookAttacksOcc(ksq, occ)&bb(rookTo) != 0
	}
	return false
}

// castleRookTo returns the rook destination for a castling king move.
func castleRookTo(c Color, kingTo Square) Square {
	switch {
	case c == White && kingTo == 6: // g1
		return 5
	case c == White && kingTo == 2: // c1
		return 3
	case c == Black && kingTo == 62: // g8
		return 61
	default: // c8
		return 59
	}
}

// castleRookFrom returns the rook origin for a castling king move.
func castleRookFrom(c Color, kingTo Square) Square {
	switch {
	case c == White && kingTo == 6:
		return 7
	case c == White && kingTo == 2:
		return 0
	case c == Black && kingTo == 62:
		return 63
	default:
		return 56
	}
}

// ParseMove converts a coordinate-notation string ("e2e4", "e7e8q", "0000")
// into a Move resolved against the current position, so that piece, capture
// and flag fields are filled in. Returns MoveNone for the null string.
func (b *Board) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "0000" {
		return MoveNone, nil
	}
	if len(s) < 4 || len(s) > 5 {
		return MoveNone, errInvalidMove
	}
	from, err := algebraicToSquare(s[0:2])
	if err != nil {
		return MoveNone, err
	}
	to, err := algebraicToSquare(s[2:4])
	if err != nil {
		return MoveNone, err
	}
	var promoType PieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promoType = PieceTypeQueen
		case 'r':
			promoType = PieceTypeRook
		case 'b':
			promoType = PieceTypeBishop
		case 'n':
			promoType = PieceTypeKnight
		default:
			return MoveNone, errInvalidMove
		}
	}

	// Resolve against the generated moves so special flags come out right.
	var buf [MaxMoves]ScoredMove
	for _, sm := range b.Generate(Legal, buf[:0]) {
		m := sm.Move
		if m.From() == from && m.To() == to && m.PromotionPiece().Type() == promoType {
			return m, nil
		}
	}
	return MoveNone, errInvalidMove
}

func algebraicToSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, errInvalidMove
	}
	return Square(int(s[0]-'a') + int(s[1]-'1')*8), nil
}
