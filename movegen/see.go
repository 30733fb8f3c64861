package movegen

// SeeValue holds the piece values used by static exchange evaluation, indexed
// by PieceType.
var SeeValue = [7]int{0, 100, 300, 300, 500, 900, 5000}

// SeeGe reports whether the static exchange evaluation of m meets threshold.
// It plays out the capture sequence on the destination square, both sides
// always recapturing with their least valuable attacker, and reveals x-ray
// attackers as blockers disappear. Castling and en passant are not
// exchange-evaluated and report 0 >= threshold, and neither are promotions.
func (b *Board) SeeGe(m Move, threshold int) bool {
	if m.Flags() != FlagNone || m.PromotionPiece() != NoPiece {
		return threshold <= 0
	}

	from, to := m.From(), m.To()

	swap := SeeValue[m.CapturedPiece().Type()] - threshold
	if swap < 0 {
		return false
	}

	swap = SeeValue[b.pieces[int(from)].Type()] - swap
	if swap <= 0 {
		return true
	}

	occ := b.AllOccupancy() ^ bb(from) ^ bb(to)
	stm := b.sideToMove
	attackers := b.AttackersTo(to, occ)
	// res flips each time a recapture stays worthwhile; it doubles as the
	// break margin so that an exchange landing exactly on the threshold is
	// decided by whose turn it is to recapture.
	res := 1

	for {
		stm = 1 - stm
		attackers &= occ

		stmAttackers := attackers & b.byColor[stm]
		if stmAttackers == 0 {
			break
		}
		// A pinned attacker can only join the exchange when the pinning
		// piece itself has already been swapped off the board.
		if pinners := b.pinnersOn(1-stm, occ); pinners&occ != 0 {
			stmAttackers &^= b.blockersFor(stm, occ)
			if stmAttackers == 0 {
				break
			}
		}

		res ^= 1

		// Locate the least valuable attacker and speculatively recapture.
		// Captures by diagonal movers can reveal diagonal x-rays, captures
		// by straight movers straight ones.
		if least := stmAttackers & b.Pieces(stm, PieceTypePawn); least != 0 {
			if swap = SeeValue[PieceTypePawn] - swap; swap < res {
				break
			}
			occ ^= uint64(1) << uint(lsb(least))
			attackers |= bishopAttacksOcc(int(to), occ) & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen])
		} else if least := stmAttackers & b.Pieces(stm, PieceTypeKnight); least != 0 {
			if swap = SeeValue[PieceTypeKnight] - swap; swap < res {
				break
			}
			occ ^= uint64(1) << uint(lsb(least))
		} else if least := stmAttackers & b.Pieces(stm, PieceTypeBishop); least != 0 {
			if swap = SeeValue[PieceTypeBishop] - swap; swap < res {
				break
			}
			occ ^= uint64(1) << uint(lsb(least))
			attackers |= bishopAttacksOcc(int(to), occ) & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen])
		} else if least := stmAttackers & b.Pieces(stm, PieceTypeRook); least != 0 {
			if swap = SeeValue[PieceTypeRook] - swap; swap < res {
				break
			}
			occ ^= uint64(1) << uint(lsb(least))
			attackers |= rookAttacksOcc(int(to), occ) & (b.byType[PieceTypeRook] | b.byType[PieceTypeQueen])
		} else if least := stmAttackers & b.Pieces(stm, PieceTypeQueen); least != 0 {
			if swap = SeeValue[PieceTypeQueen] - swap; swap < res {
				break
			}
			occ ^= uint64(1) << uint(lsb(least))
			attackers |= (bishopAttacksOcc(int(to), occ) & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen])) |
				(rookAttacksOcc(int(to), occ) & (b.byType[PieceTypeRook] | b.byType[PieceTypeQueen]))
		} else {
			// King takes. If the opponent still has attackers the king
			// capture would be illegal, so the side that just "moved" loses
			// the exchange instead.
			if attackers&occ&^b.byColor[stm] != 0 {
				return res == 0
			}
			return res != 0
		}
	}
	return res != 0
}

// blockersFor recomputes king blockers for side c against occupancy occ,
// which may differ from the board's real occupancy mid-exchange.
func (b *Board) blockersFor(c Color, occ uint64) uint64 {
	ksq := int(b.KingSquare(c))
	var blockers uint64

	snipers := ((pseudoRookAttacks[ksq] & (b.byType[PieceTypeRook] | b.byType[PieceTypeQueen])) |
		(pseudoBishopAttacks[ksq] & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen]))) &
		b.byColor[1-c] & occ

	for snipers != 0 {
		sniper := popLSB(&snipers)
		between := betweenBB[sniper][ksq] & occ &^ (uint64(1) << uint(ksq))
		if between != 0 && !moreThanOne(between) {
			blockers |= between
		}
	}
	return blockers
}

// pinnersOn returns side c's sliders that pin an enemy piece to the enemy
// king under occupancy occ.
func (b *Board) pinnersOn(c Color, occ uint64) uint64 {
	ksq := int(b.KingSquare(1 - c))
	var pinners uint64

	snipers := ((pseudoRookAttacks[ksq] & (b.byType[PieceTypeRook] | b.byType[PieceTypeQueen])) |
		(pseudoBishopAttacks[ksq] & (b.byType[PieceTypeBishop] | b.byType[PieceTypeQueen]))) &
		b.byColor[c] & occ

	for snipers != 0 {
		sniper := popLSB(&snipers)
		between := betweenBB[sniper][ksq] & occ &^ (uint64(1) << uint(ksq))
		if between != 0 && !moreThanOne(between) {
			pinners |= uint64(1) << uint(sniper)
		}
	}
	return pinners
}
