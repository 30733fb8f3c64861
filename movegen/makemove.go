package movegen

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square // for castling undo
	rookTo        Square // for castling undo
}

// NullState stores the minimal information needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevZobrist   uint64
}

// castleRightsMask[sq] keeps the rights that survive a piece moving from or
// to sq. Rook home squares drop one right, king home squares drop both.
var castleRightsMask [64]CastlingRights

func init() {
	all := CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
	for sq := range castleRightsMask {
		castleRightsMask[sq] = all
	}
	castleRightsMask[0] &^= CastlingWhiteQ
	castleRightsMask[4] &^= CastlingWhiteK | CastlingWhiteQ
	castleRightsMask[7] &^= CastlingWhiteK
	castleRightsMask[56] &^= CastlingBlackQ
	castleRightsMask[60] &^= CastlingBlackK | CastlingBlackQ
	castleRightsMask[63] &^= CastlingBlackK
}

// MakeMove applies a pseudo-legal move. It returns ok=false if the move would
// leave the mover's king in check, with the original position restored.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st = MoveState{
		move:          m,
		captured:      NoPiece,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
		rookFrom:      NoSquare,
		rookTo:        NoSquare,
	}

	us := b.sideToMove
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	flag := m.Flags()

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[int(b.enPassantSquare)%8]
		b.enPassantSquare = NoSquare
	}

	if flag == FlagEnPassant {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		st.captured = b.removePiece(capSq)
	} else if m.CapturedPiece() != NoPiece {
		st.captured = b.removePiece(to)
	}

	b.removePiece(from)
	if promo := m.PromotionPiece(); promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, moved)
	}

	if flag == FlagCastle {
		st.rookFrom = castleRookFrom(us, to)
		st.rookTo = castleRookTo(us, to)
		b.addPiece(st.rookTo, b.removePiece(st.rookFrom))
	}

	if moved.Type() == PieceTypePawn {
		if d := int(to) - int(from); d == 16 || d == -16 {
			b.enPassantSquare = Square((int(from) + int(to)) / 2)
			b.zobristKey ^= zobristEnPassant[int(b.enPassantSquare)%8]
		}
		b.halfmoveClock = 0
	} else if st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	if rights := b.castlingRights & castleRightsMask[int(from)] & castleRightsMask[int(to)]; rights != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(rights)]
		b.castlingRights = rights
	}

	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = 1 - us
	b.zobristKey ^= zobristSide

	if b.InCheck(us) {
		b.UnmakeMove(st)
		return false, st
	}
	return true, st
}

// UnmakeMove restores the position prior to MakeMove(st.move).
func (b *Board) UnmakeMove(st MoveState) {
	m := st.move
	b.sideToMove = 1 - b.sideToMove
	us := b.sideToMove
	from, to := m.From(), m.To()

	if st.rookFrom != NoSquare {
		b.addPiece(st.rookFrom, b.removePiece(st.rookTo))
	}

	b.removePiece(to)
	b.addPiece(from, m.MovedPiece())

	if st.captured != NoPiece {
		capSq := to
		if m.Flags() == FlagEnPassant {
			capSq = to - 8
			if us == Black {
				capSq = to + 8
			}
		}
		b.addPiece(capSq, st.captured)
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
}

// MakeNullMove passes the turn without moving a piece. The caller must not be
// in check.
func (b *Board) MakeNullMove() NullState {
	st := NullState{prevEnPassant: b.enPassantSquare, prevZobrist: b.zobristKey}
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[int(b.enPassantSquare)%8]
		b.enPassantSquare = NoSquare
	}
	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide
	return st
}

// UnmakeNullMove undoes MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.sideToMove = 1 - b.sideToMove
	b.enPassantSquare = st.prevEnPassant
	b.zobristKey = st.prevZobrist
}
