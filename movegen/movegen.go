package movegen

// GenType selects the move subset produced by Generate.
type GenType uint8

const (
	// Captures: every capture, plus queen promotions (capturing or not).
	Captures GenType = iota
	// Quiets: every non-capture except the queen promotion, castling and
	// non-capturing underpromotions included.
	Quiets
	// QuietChecks: quiet moves that give direct or discovered check.
	QuietChecks
	// Evasions: check evasions. Requires the side to move to be in check.
	Evasions
	// NonEvasions: union of Captures and Quiets, produced in one combined pass.
	NonEvasions
	// Legal: Evasions or NonEvasions per check state, with illegal moves removed.
	Legal
)

// Generate appends all moves of the requested category for the side to move
// into dst and returns it. dst is truncated and reused; it never reallocates
// when its capacity is at least MaxMoves. Apart from the Legal category the
// output is pseudo-legal.
//
// Calling Evasions while not in check, or any other category while in check,
// is a caller contract violation and produces garbage rather than an error:
// these paths run on the innermost search loop and carry no validation.
func (b *Board) Generate(gt GenType, dst []ScoredMove) []ScoredMove {
	moves := dst[:0]
	us := b.sideToMove

	switch gt {
	case Captures:
		return b.generateAll(moves, us, gt, b.byColor[1-us])
	case Quiets:
		return b.generateAll(moves, us, gt, ^b.AllOccupancy())
	case NonEvasions:
		return b.generateAll(moves, us, gt, ^b.byColor[us])
	case QuietChecks:
		return b.generateQuietChecks(moves, us)
	case Evasions:
		return b.generateEvasions(moves, us)
	case Legal:
		return b.generateLegal(moves, us)
	}
	return moves
}

// generateAll emits pawn, piece, king and castling moves restricted to target.
func (b *Board) generateAll(moves []ScoredMove, us Color, gt GenType, target uint64) []ScoredMove {
	checks := gt == QuietChecks
	var dcBlockers uint64
	if checks {
		// Discovered-check candidates are emitted by generateQuietChecks and
		// must not be duplicated here.
		dcBlockers = b.BlockersForKing(1-us) & b.byColor[us]
	}

	moves = b.generatePawnMoves(moves, us, gt, target)
	moves = b.generatePieceMoves(moves, us, PieceTypeKnight, gt, target, dcBlockers)
	moves = b.generatePieceMoves(moves, us, PieceTypeBishop, gt, target, dcBlockers)
	moves = b.generatePieceMoves(moves, us, PieceTypeRook, gt, target, dcBlockers)
	moves = b.generatePieceMoves(moves, us, PieceTypeQueen, gt, target, dcBlockers)

	if gt != QuietChecks && gt != Evasions {
		ksq := b.KingSquare(us)
		king := b.pieces[int(ksq)]
		for t := kingMoves[int(ksq)] & target; t != 0; {
			to := Square(popLSB(&t))
			moves = append(moves, ScoredMove{Move: NewMove(ksq, to, king, b.pieces[int(to)], NoPiece, FlagNone)})
		}
		if gt != Captures {
			moves = b.generateCastling(moves, us, ksq)
		}
	}
	return moves
}

// generatePieceMoves emits knight/bishop/rook/queen moves to target squares.
// With gt == QuietChecks, pieces that cannot reach a check-giving square are
// rejected wholesale by their empty-board pseudo attacks before any table probe.
func (b *Board) generatePieceMoves(moves []ScoredMove, us Color, pt PieceType, gt GenType, target uint64, dcBlockers uint64) []ScoredMove {
	occ := b.AllOccupancy()
	checks := gt == QuietChecks
	var checkSqs uint64
	if checks {
		checkSqs = b.CheckSquares(pt)
	}

	for fromBB := b.Pieces(us, pt); fromBB != 0; {
		from := popLSB(&fromBB)
		if checks {
			if pt != PieceTypeKnight && pseudoAttacksFor(pt, from)&target&checkSqs == 0 {
				continue
			}
			if dcBlockers&(uint64(1)<<uint(from)) != 0 {
				continue
			}
		}
		attacks := attacksFrom(pt, from, occ) & target
		if checks {
			attacks &= checkSqs
		}
		piece := b.pieces[from]
		for attacks != 0 {
			to := Square(popLSB(&attacks))
			moves = append(moves, ScoredMove{Move: NewMove(Square(from), to, piece, b.pieces[int(to)], NoPiece, FlagNone)})
		}
	}
	return moves
}

func pseudoAttacksFor(pt PieceType, sq int) uint64 {
	switch pt {
	case PieceTypeBishop:
		return pseudoBishopAttacks[sq]
	case PieceTypeRook:
		return pseudoRookAttacks[sq]
	case PieceTypeQueen:
		return pseudoQueenAttacks[sq]
	}
	return knightMoves[sq]
}

// makePromotions appends the promotion moves appropriate for the category.
// Captures owns every capturing promotion plus the non-capturing queen
// promotion; Quiets owns only the non-capturing underpromotions, so the two
// categories stay disjoint. Emission order is queen, rook, bishop, knight;
// the generator itself imposes no ranking beyond that.
func makePromotions(moves []ScoredMove, gt GenType, from, to Square, pawn, captured Piece, enemyKsq int) []ScoredMove {
	us := pawn.Color()
	isCapture := captured != NoPiece

	queen := gt == Evasions || gt == NonEvasions || gt == Captures
	unders := gt == Evasions || gt == NonEvasions ||
		(gt == Captures && isCapture) || (gt == Quiets && !isCapture)

	if queen {
		moves = append(moves, ScoredMove{Move: NewMove(from, to, pawn, captured, PieceFromType(us, PieceTypeQueen), FlagNone)})
	}
	if unders {
		moves = append(moves,
			ScoredMove{Move: NewMove(from, to, pawn, captured, PieceFromType(us, PieceTypeRook), FlagNone)},
			ScoredMove{Move: NewMove(from, to, pawn, captured, PieceFromType(us, PieceTypeBishop), FlagNone)},
			ScoredMove{Move: NewMove(from, to, pawn, captured, PieceFromType(us, PieceTypeKnight), FlagNone)},
		)
	}
	// A knight promotion is the only underpromotion that can give a direct
	// check not already covered by the queen promotion among the captures.
	if gt == QuietChecks && knightMoves[int(to)]&(uint64(1)<<uint(enemyKsq)) != 0 {
		moves = append(moves, ScoredMove{Move: NewMove(from, to, pawn, captured, PieceFromType(us, PieceTypeKnight), FlagNone)})
	}
	return moves
}

// generatePawnMoves derives pushes, captures, promotions and en passant from
// whole-bitboard shifts of the pawn occupancy rather than per-pawn loops.
func (b *Board) generatePawnMoves(moves []ScoredMove, us Color, gt GenType, target uint64) []ScoredMove {
	them := 1 - us
	occ := b.AllOccupancy()
	pawn := PieceFromType(us, PieceTypePawn)
	enemyKsq := int(b.KingSquare(them))

	var (
		rank7, rank3              uint64
		up, upRight, upLeft       int
		shUp, shUpRight, shUpLeft func(uint64) uint64
	)
	if us == White {
		rank7, rank3 = Rank7BB, Rank3BB
		up, upRight, upLeft = 8, 9, 7
		shUp, shUpRight, shUpLeft = shiftNorth, shiftNE, shiftNW
	} else {
		rank7, rank3 = Rank2BB, Rank6BB
		up, upRight, upLeft = -8, -9, -7
		shUp, shUpRight, shUpLeft = shiftSouth, shiftSW, shiftSE
	}

	pawnsOn7 := b.Pieces(us, PieceTypePawn) & rank7
	pawnsNotOn7 := b.Pieces(us, PieceTypePawn) &^ rank7

	var enemies uint64
	switch gt {
	case Evasions:
		enemies = b.byColor[them] & target
	case Captures:
		enemies = target
	default:
		enemies = b.byColor[them]
	}

	var emptySquares uint64

	// Single and double pushes, no promotions.
	if gt != Captures {
		if gt == Quiets || gt == QuietChecks {
			emptySquares = target
		} else {
			emptySquares = ^occ
		}

		b1 := shUp(pawnsNotOn7) & emptySquares
		b2 := shUp(b1&rank3) & emptySquares

		if gt == Evasions { // only blocking squares
			b1 &= target
			b2 &= target
		}

		if gt == QuietChecks {
			b1 &= pawnAttacks[them][enemyKsq]
			b2 &= pawnAttacks[them][enemyKsq]

			// Discovered-check pushes. Possible only off the enemy king's
			// file since captures are not generated here; a discovery by
			// promotion was already emitted among the captures.
			dcCandidates := b.BlockersForKing(them) & pawnsNotOn7
			if dcCandidates != 0 {
				dc1 := shUp(dcCandidates) & emptySquares &^ fileBBOf(enemyKsq)
				dc2 := shUp(dc1&rank3) & emptySquares
				b1 |= dc1
				b2 |= dc2
			}
		}

		for b1 != 0 {
			to := popLSB(&b1)
			moves = append(moves, ScoredMove{Move: NewMove(Square(to-up), Square(to), pawn, NoPiece, NoPiece, FlagNone)})
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = append(moves, ScoredMove{Move: NewMove(Square(to-2*up), Square(to), pawn, NoPiece, NoPiece, FlagNone)})
		}
	}

	// Promotions and underpromotions.
	if pawnsOn7 != 0 {
		if gt == Captures {
			emptySquares = ^occ
		}
		if gt == Evasions {
			emptySquares &= target
		}

		b1 := shUpRight(pawnsOn7) & enemies
		b2 := shUpLeft(pawnsOn7) & enemies
		b3 := shUp(pawnsOn7) & emptySquares

		for b1 != 0 {
			to := popLSB(&b1)
			moves = makePromotions(moves, gt, Square(to-upRight), Square(to), pawn, b.pieces[to], enemyKsq)
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = makePromotions(moves, gt, Square(to-upLeft), Square(to), pawn, b.pieces[to], enemyKsq)
		}
		for b3 != 0 {
			to := popLSB(&b3)
			moves = makePromotions(moves, gt, Square(to-up), Square(to), pawn, NoPiece, enemyKsq)
		}
	}

	// Standard and en-passant captures.
	if gt == Captures || gt == Evasions || gt == NonEvasions {
		b1 := shUpRight(pawnsNotOn7) & enemies
		b2 := shUpLeft(pawnsNotOn7) & enemies

		for b1 != 0 {
			to := popLSB(&b1)
			moves = append(moves, ScoredMove{Move: NewMove(Square(to-upRight), Square(to), pawn, b.pieces[to], NoPiece, FlagNone)})
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = append(moves, ScoredMove{Move: NewMove(Square(to-upLeft), Square(to), pawn, b.pieces[to], NoPiece, FlagNone)})
		}

		if ep := b.enPassantSquare; ep != NoSquare {
			// An en-passant capture can evade check only when the checker is
			// the double-pushed pawn itself; otherwise the check is a
			// discovery and en passant cannot address it.
			if gt == Evasions && target&bb(ep-Square(up)) == 0 {
				return moves
			}
			capturedPawn := PieceFromType(them, PieceTypePawn)
			for attackers := pawnsNotOn7 & pawnAttacks[them][int(ep)]; attackers != 0; {
				from := popLSB(&attackers)
				moves = append(moves, ScoredMove{Move: NewMove(Square(from), ep, pawn, capturedPawn, NoPiece, FlagEnPassant)})
			}
		}
	}
	return moves
}

// generateCastling emits castle moves whose path is empty and whose king
// transit squares (destination included) are unattacked, so they need no
// later legality probe.
func (b *Board) generateCastling(moves []ScoredMove, us Color, ksq Square) []ScoredMove {
	if us == White {
		if b.castlingRights&CastlingWhiteK != 0 &&
			b.pieces[5] == NoPiece && b.pieces[6] == NoPiece && b.pieces[7] == WhiteRook &&
			!b.IsSquareAttacked(5, Black) && !b.IsSquareAttacked(6, Black) {
			moves = append(moves, ScoredMove{Move: NewMove(ksq, 6, WhiteKing, NoPiece, NoPiece, FlagCastle)})
		}
		if b.castlingRights&CastlingWhiteQ != 0 &&
			b.pieces[1] == NoPiece && b.pieces[2] == NoPiece && b.pieces[3] == NoPiece && b.pieces[0] == WhiteRook &&
			!b.IsSquareAttacked(3, Black) && !b.IsSquareAttacked(2, Black) {
			moves = append(moves, ScoredMove{Move: NewMove(ksq, 2, WhiteKing, NoPiece, NoPiece, FlagCastle)})
		}
	} else {
		if b.castlingRights&CastlingBlackK != 0 &&
			b.pieces[61] == NoPiece && b.pieces[62] == NoPiece && b.pieces[63] == BlackRook &&
			!b.IsSquareAttacked(61, White) && !b.IsSquareAttacked(62, White) {
			moves = append(moves, ScoredMove{Move: NewMove(ksq, 62, BlackKing, NoPiece, NoPiece, FlagCastle)})
		}
		if b.castlingRights&CastlingBlackQ != 0 &&
			b.pieces[57] == NoPiece && b.pieces[58] == NoPiece && b.pieces[59] == NoPiece && b.pieces[56] == BlackRook &&
			!b.IsSquareAttacked(59, White) && !b.IsSquareAttacked(58, White) {
			moves = append(moves, ScoredMove{Move: NewMove(ksq, 58, BlackKing, NoPiece, NoPiece, FlagCastle)})
		}
	}
	return moves
}

// generateQuietChecks emits quiet moves that give check: discovered checks
// from blockers of the enemy king first, then direct checks via the
// check-squares masks.
func (b *Board) generateQuietChecks(moves []ScoredMove, us Color) []ScoredMove {
	them := 1 - us
	occ := b.AllOccupancy()
	enemyKsq := int(b.KingSquare(them))

	for dc := b.BlockersForKing(them) & b.byColor[us]; dc != 0; {
		from := popLSB(&dc)
		piece := b.pieces[from]
		pt := piece.Type()
		if pt == PieceTypePawn {
			continue // generated together with the direct pawn checks
		}
		attacks := attacksFrom(pt, from, occ) &^ occ
		if pt == PieceTypeKing {
			// Moving along a queen line from the enemy king cannot uncover it.
			attacks &^= pseudoQueenAttacks[enemyKsq]
		}
		for attacks != 0 {
			to := Square(popLSB(&attacks))
			moves = append(moves, ScoredMove{Move: NewMove(Square(from), to, piece, NoPiece, NoPiece, FlagNone)})
		}
	}

	return b.generateAll(moves, us, QuietChecks, ^occ)
}

// generateEvasions emits king retreats off the checking rays plus, for a
// single checker, captures of the checker and interpositions on the check line.
func (b *Board) generateEvasions(moves []ScoredMove, us Color) []ScoredMove {
	ksq := b.KingSquare(us)
	checkers := b.Checkers()

	// Squares swept by slider checkers through the king: stepping onto them
	// would keep the king on the checking ray, so they are excluded up front
	// instead of being caught by a later legality probe.
	var sliderRays uint64
	for sliders := checkers &^ (b.byType[PieceTypeKnight] | b.byType[PieceTypePawn]); sliders != 0; {
		checksq := popLSB(&sliders)
		sliderRays |= lineBB[checksq][int(ksq)] ^ (uint64(1) << uint(checksq))
	}

	king := b.pieces[int(ksq)]
	for t := kingMoves[int(ksq)] &^ b.byColor[us] &^ sliderRays; t != 0; {
		to := Square(popLSB(&t))
		moves = append(moves, ScoredMove{Move: NewMove(ksq, to, king, b.pieces[int(to)], NoPiece, FlagNone)})
	}

	if moreThanOne(checkers) {
		return moves // double check: only the king can move
	}

	// betweenBB runs king to checker exclusive of the king and inclusive of
	// the checker, so the mask is exactly capture-or-interpose.
	checksq := lsb(checkers)
	target := betweenBB[int(ksq)][checksq]
	return b.generateAll(moves, us, Evasions, target)
}

// generateLegal produces fully legal moves. Only moves by pinned pieces, king
// moves and en-passant captures need the legality probe; the rest are legal by
// construction. Survivors are compacted in place with a two-pointer pass;
// callers must not rely on any particular order of the result.
func (b *Board) generateLegal(moves []ScoredMove, us Color) []ScoredMove {
	if b.Checkers() != 0 {
		moves = b.generateEvasions(moves, us)
	} else {
		moves = b.generateAll(moves, us, NonEvasions, ^b.byColor[us])
	}

	pinned := b.BlockersForKing(us) & b.byColor[us]
	ksq := b.KingSquare(us)
	kept := 0
	for i := range moves {
		m := moves[i].Move
		if (pinned&bb(m.From()) != 0 || m.From() == ksq || m.Flags() == FlagEnPassant) && !b.Legal(m) {
			continue
		}
		moves[kept] = moves[i]
		kept++
	}
	return moves[:kept]
}
