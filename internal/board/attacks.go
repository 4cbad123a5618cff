package board

// Precomputed attack sets. Everything here is filled in deterministically by
// initAttackTables and treated as immutable afterwards, so concurrent readers
// need no synchronization.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard

	// betweenBB[a][b] holds the squares strictly between a and b when they
	// share a rank, file or diagonal; empty otherwise.
	betweenBB [64][64]Bitboard
	// lineBB[a][b] holds the full line through a and b, endpoints included.
	lineBB [64][64]Bitboard
)

func init() {
	initAttackTables()
	initSliderTables()
	initZobristKeys()
	initPolyglotKeys()
}

// initAttackTables fills the leaper and between/line tables. Rebuilding is
// idempotent: the tables depend only on square geometry.
func initAttackTables() {
	for sq := A1; sq <= H8; sq++ {
		b := BB(sq)

		knightAttacks[sq] = b.North().NorthEast() | b.North().NorthWest() |
			b.South().SouthEast() | b.South().SouthWest() |
			b.East().NorthEast() | b.East().SouthEast() |
			b.West().NorthWest() | b.West().SouthWest()

		kingAttacks[sq] = b.North() | b.South() | b.East() | b.West() |
			b.NorthEast() | b.NorthWest() | b.SouthEast() | b.SouthWest()

		pawnAttacks[White][sq] = b.NorthEast() | b.NorthWest()
		pawnAttacks[Black][sq] = b.SouthEast() | b.SouthWest()
	}

	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}
			df := sign(b.File() - a.File())
			dr := sign(b.Rank() - a.Rank())
			diag := df != 0 && dr != 0
			if diag && abs(b.File()-a.File()) != abs(b.Rank()-a.Rank()) {
				continue
			}

			var between Bitboard
			f, r := a.File()+df, a.Rank()+dr
			for f != b.File() || r != b.Rank() {
				between |= BB(SquareAt(f, r))
				f, r = f+df, r+dr
			}
			betweenBB[a][b] = between

			var line Bitboard
			f, r = a.File(), a.Rank()
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= BB(SquareAt(f, r))
				f, r = f-df, r-dr
			}
			f, r = a.File()+df, a.Rank()+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= BB(SquareAt(f, r))
				f, r = f+df, r+dr
			}
			lineBB[a][b] = line
		}
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard { return pawnAttacks[c][sq] }

// Between returns the squares strictly between two aligned squares,
// empty when the squares do not share a rank, file or diagonal.
func Between(a, b Square) Bitboard { return betweenBB[a][b] }

// Line returns the full line through two aligned squares, endpoints
// included; empty when the squares are not aligned.
func Line(a, b Square) Bitboard { return lineBB[a][b] }

// SlidingAttacks returns the squares reachable by a sliding piece on sq,
// sliding until and including the first occupied square in each direction.
// Occupancy of either side blocks; excluding friendly destinations is the
// caller's responsibility. Only Rook, Bishop and Queen are valid.
func SlidingAttacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Rook:
		return RookAttacks(sq, occupied)
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Queen:
		return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
	}
	return 0
}

// QueenAttacks returns the union of rook and bishop attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}

// AttackersTo returns the pieces of side c that attack sq under the given
// occupancy. Passing an occupancy different from the position's own allows
// x-ray queries (e.g. king moves with the king removed).
func (p *Position) AttackersTo(sq Square, c Color, occupied Bitboard) Bitboard {
	return pawnAttacks[c.Opposite()][sq]&p.Pieces[c][Pawn] |
		knightAttacks[sq]&p.Pieces[c][Knight] |
		kingAttacks[sq]&p.Pieces[c][King] |
		BishopAttacks(sq, occupied)&(p.Pieces[c][Bishop]|p.Pieces[c][Queen]) |
		RookAttacks(sq, occupied)&(p.Pieces[c][Rook]|p.Pieces[c][Queen])
}

// IsSquareAttacked reports whether sq is attacked by any piece of side c.
func (p *Position) IsSquareAttacked(sq Square, c Color) bool {
	return p.AttackersTo(sq, c, p.All) != 0
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	return p.SideInCheck(p.SideToMove)
}

// SideInCheck reports whether side c's king is attacked by its opponent.
func (p *Position) SideInCheck(c Color) bool {
	king := p.Pieces[c][King].First()
	if !king.IsValid() {
		return false
	}
	return p.IsSquareAttacked(king, c.Opposite())
}
