package board

// Polyglot hashing. Opening books hash positions with their own key set and
// piece ordering, separate from the internal Zobrist keys, so book lookups
// use this hash rather than Position.Hash.

var (
	polyglotPieces     [12][64]uint64 // black pawn first, then by piece, white after black
	polyglotCastling   [4]uint64
	polyglotEnPassant  [8]uint64
	polyglotSideToMove uint64
)

func initPolyglotKeys() {
	rng := xorshift64Star{state: 0x37B4A4B3F0D1C0D0}
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = rng.next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = rng.next()
	}
	for i := range polyglotEnPassant {
		polyglotEnPassant[i] = rng.next()
	}
	polyglotSideToMove = rng.next()
}

// PolyglotHash computes the book-lookup key for the position.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		// Piece kinds are ordered black pawn, white pawn, black knight, ...
		// so kind = 2*type for black and 2*type+1 for white.
		base := 1 - int(c)
		for pt := Pawn; pt <= King; pt++ {
			kind := 2*int(pt) + base
			for bb := p.Pieces[c][pt]; bb != 0; {
				hash ^= polyglotPieces[kind][bb.PopFirst()]
			}
		}
	}

	for i, right := range []CastlingRights{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		if p.Castling&right != 0 {
			hash ^= polyglotCastling[i]
		}
	}

	// The en passant file is hashed only when a capture onto the target is
	// actually possible.
	if ep := p.EnPassant; ep != NoSquare {
		us := p.SideToMove
		if pawnAttacks[us.Opposite()][ep]&p.Pieces[us][Pawn] != 0 {
			hash ^= polyglotEnPassant[ep.File()]
		}
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}
	return hash
}
