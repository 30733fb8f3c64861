package movegen

import "math/bits"

// File and rank masks. FileABB is the a-file; the rest are derived by shifting.
const (
	FileABB uint64 = 0x0101010101010101
	FileBBB uint64 = FileABB << 1
	FileGBB uint64 = FileABB << 6
	FileHBB uint64 = FileABB << 7

	Rank1BB uint64 = 0x00000000000000FF
	Rank2BB uint64 = Rank1BB << 8
	Rank3BB uint64 = Rank1BB << 16
	Rank6BB uint64 = Rank1BB << 40
	Rank7BB uint64 = Rank1BB << 48
	Rank8BB uint64 = Rank1BB << 56
)

// ==========================
// Directional shifts
// ==========================

// Horizontal and diagonal shifts mask off the wrap file before shifting, so a
// piece on the h-file never "attacks" the a-file of the next rank and vice versa.

func shiftNorth(b uint64) uint64 { return b << 8 }
func shiftSouth(b uint64) uint64 { return b >> 8 }
func shiftEast(b uint64) uint64  { return (b &^ FileHBB) << 1 }
func shiftWest(b uint64) uint64  { return (b &^ FileABB) >> 1 }
func shiftNE(b uint64) uint64    { return (b &^ FileHBB) << 9 }
func shiftNW(b uint64) uint64    { return (b &^ FileABB) << 7 }
func shiftSE(b uint64) uint64    { return (b &^ FileHBB) >> 7 }
func shiftSW(b uint64) uint64    { return (b &^ FileABB) >> 9 }

// ==========================
// Bit helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
// Calling it with an empty mask is a caller precondition violation.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// lsb returns the index of the least significant set bit. The mask must be non-empty.
func lsb(mask uint64) int { return bits.TrailingZeros64(mask) }

// msb returns the index of the most significant set bit. The mask must be non-empty.
func msb(mask uint64) int { return 63 - bits.LeadingZeros64(mask) }

// PopCount returns the number of set squares in the bitboard.
func PopCount(mask uint64) int { return bits.OnesCount64(mask) }

// moreThanOne reports whether the bitboard has at least two set bits.
func moreThanOne(mask uint64) bool { return mask&(mask-1) != 0 }

// ==========================
// Precomputed attack tables
// ==========================

// Static attack masks for the non-sliding pieces.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Pseudo attacks on an empty board, used for fast "could this slider ever reach
// that square" rejection and for king quiet-check masking.
var pseudoRookAttacks [64]uint64
var pseudoBishopAttacks [64]uint64
var pseudoQueenAttacks [64]uint64

// lineBB[a][b] is the full line (edge to edge) through a and b including both
// endpoints, or 0 if a and b are not aligned. betweenBB[a][b] is the open
// segment strictly between them.
var lineBB [64][64]uint64
var betweenBB [64][64]uint64

// Masks and lookup tables for occupancy-indexed slider attacks (software pext,
// a perfect-hash equivalent of magic indexing).
var rookMask [64]uint64
var bishopMask [64]uint64
var rookAttTable [64][]uint64
var bishopAttTable [64][]uint64

func init() {
	initLeaperTables()
	initSliderTables()
	initLineTables()
}

// slideAttacks walks the four given (fileStep, rankStep) directions from sq,
// stopping at the first occupied square in each. Used only at init time to
// seed the pext tables; runtime lookups go through the tables.
func slideAttacks(sq int, occ uint64, dirs [4][2]int) uint64 {
	var attacks uint64
	file, rank := sq%8, sq/8
	for _, d := range dirs {
		for f, r := file+d[0], rank+d[1]; f >= 0 && f < 8 && r >= 0 && r < 8; f, r = f+d[0], r+d[1] {
			t := uint64(1) << uint(r*8+f)
			attacks |= t
			if occ&t != 0 {
				break
			}
		}
	}
	return attacks
}

var rookDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirs = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		for _, off := range knightOffsets {
			if f, r := file+off[1], rank+off[0]; f >= 0 && f < 8 && r >= 0 && r < 8 {
				knightMoves[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		for _, off := range kingOffsets {
			if f, r := file+off[1], rank+off[0]; f >= 0 && f < 8 && r >= 0 && r < 8 {
				kingMoves[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		sqBB := uint64(1) << uint(sq)
		pawnAttacks[White][sq] = shiftNE(sqBB) | shiftNW(sqBB)
		pawnAttacks[Black][sq] = shiftSE(sqBB) | shiftSW(sqBB)
	}
}

func initSliderTables() {
	for sq := 0; sq < 64; sq++ {
		pseudoRookAttacks[sq] = slideAttacks(sq, 0, rookDirs)
		pseudoBishopAttacks[sq] = slideAttacks(sq, 0, bishopDirs)
		pseudoQueenAttacks[sq] = pseudoRookAttacks[sq] | pseudoBishopAttacks[sq]

		// The relevant-occupancy mask excludes board-edge squares: a blocker on
		// the edge never changes the attack set.
		edges := ((Rank1BB | Rank8BB) &^ rankBBOf(sq)) | ((FileABB | FileHBB) &^ fileBBOf(sq))
		rookMask[sq] = pseudoRookAttacks[sq] &^ edges
		bishopMask[sq] = pseudoBishopAttacks[sq] &^ edges

		rookAttTable[sq] = make([]uint64, 1<<uint(bits.OnesCount64(rookMask[sq])))
		bishopAttTable[sq] = make([]uint64, 1<<uint(bits.OnesCount64(bishopMask[sq])))

		for idx := range rookAttTable[sq] {
			occ := pdep(uint64(idx), rookMask[sq])
			rookAttTable[sq][idx] = slideAttacks(sq, occ, rookDirs)
		}
		for idx := range bishopAttTable[sq] {
			occ := pdep(uint64(idx), bishopMask[sq])
			bishopAttTable[sq][idx] = slideAttacks(sq, occ, bishopDirs)
		}
	}
}

// betweenBB[a][b] always contains b and, when the squares share a line, the
// squares strictly between them; it never contains a. That makes
// betweenBB[ksq][checksq] directly usable as a capture-or-interpose mask.
func initLineTables() {
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			if a == b {
				continue
			}
			aBB, bBB := uint64(1)<<uint(a), uint64(1)<<uint(b)
			betweenBB[a][b] = bBB
			switch {
			case pseudoRookAttacks[a]&bBB != 0:
				lineBB[a][b] = (slideAttacks(a, 0, rookDirs) & slideAttacks(b, 0, rookDirs)) | aBB | bBB
				betweenBB[a][b] |= slideAttacks(a, bBB, rookDirs) & slideAttacks(b, aBB, rookDirs)
			case pseudoBishopAttacks[a]&bBB != 0:
				lineBB[a][b] = (slideAttacks(a, 0, bishopDirs) & slideAttacks(b, 0, bishopDirs)) | aBB | bBB
				betweenBB[a][b] |= slideAttacks(a, bBB, bishopDirs) & slideAttacks(b, aBB, bishopDirs)
			}
		}
	}
}

func fileBBOf(sq int) uint64 { return FileABB << uint(sq%8) }
func rankBBOf(sq int) uint64 { return Rank1BB << uint(8*(sq/8)) }

// aligned reports whether the three squares lie on one rank, file or diagonal.
func aligned(a, b, c int) bool { return lineBB[a][b]&(uint64(1)<<uint(c)) != 0 }

// ==========================
// Software pext / pdep
// ==========================

// pext extracts the bits of x at positions where mask has 1s, packed into the low bits.
func pext(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		if x&(m&-m) != 0 {
			res |= 1 << idx
		}
		idx++
	}
	return res
}

// pdep deposits the low bits of x into the positions of mask.
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		if (x>>idx)&1 != 0 {
			res |= m & -m
		}
		idx++
	}
	return res
}

// ==========================
// Occupancy-aware attacks
// ==========================

// rookAttacksOcc returns the rook attack bitboard from sq under the given occupancy.
func rookAttacksOcc(sq int, occ uint64) uint64 {
	return rookAttTable[sq][pext(occ, rookMask[sq])]
}

// bishopAttacksOcc returns the bishop attack bitboard from sq under the given occupancy.
func bishopAttacksOcc(sq int, occ uint64) uint64 {
	return bishopAttTable[sq][pext(occ, bishopMask[sq])]
}

func queenAttacksOcc(sq int, occ uint64) uint64 {
	return rookAttacksOcc(sq, occ) | bishopAttacksOcc(sq, occ)
}

// attacksFrom dispatches on the colorless piece type. Pawns are excluded since
// their attack set depends on color; use pawnAttacks directly.
func attacksFrom(pt PieceType, sq int, occ uint64) uint64 {
	switch pt {
	case PieceTypeKnight:
		return knightMoves[sq]
	case PieceTypeBishop:
		return bishopAttacksOcc(sq, occ)
	case PieceTypeRook:
		return rookAttacksOcc(sq, occ)
	case PieceTypeQueen:
		return queenAttacksOcc(sq, occ)
	case PieceTypeKing:
		return kingMoves[sq]
	}
	return 0
}
