package board

// Zobrist hashing. Every position feature gets a fixed pseudo-random key and
// the position hash is the XOR of the keys of the features present, so
// make/unmake can update the hash incrementally by XORing the changed
// features in and out.

var (
	zobristPiece      [2][6][64]uint64
	zobristCastling   [4]uint64 // one key per individual right, WK WQ BK BQ
	zobristEnPassant  [8]uint64 // indexed by file of the en passant target
	zobristSideToMove uint64
)

// xorshift64Star is a small deterministic PRNG. The keys must be identical
// across runs so that hashes are comparable with persisted data.
type xorshift64Star struct {
	state uint64
}

func (r *xorshift64Star) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func initZobristKeys() {
	rng := xorshift64Star{state: 0x98F107A2BEEF1234}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rng.next()
	}
	zobristSideToMove = rng.next()
}

func castlingHash(rights CastlingRights) uint64 {
	var h uint64
	for i := 0; i < 4; i++ {
		if rights&(1<<i) != 0 {
			h ^= zobristCastling[i]
		}
	}
	return h
}

func enPassantHash(sq Square) uint64 {
	if sq == NoSquare {
		return 0
	}
	return zobristEnPassant[sq.File()]
}

// RecomputeHash derives the hash from scratch. MakeMove maintains the hash
// incrementally; this is the reference the incremental updates must agree
// with.
func (p *Position) RecomputeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				h ^= zobristPiece[c][pt][bb.PopFirst()]
			}
		}
	}
	h ^= castlingHash(p.Castling)
	h ^= enPassantHash(p.EnPassant)
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
