package board

// Sliding-piece attacks via magic bitboards. For every square the relevant
// occupancy bits are hashed by a fixed multiplier into a per-square table of
// precomputed attack sets. The tables are filled at init from the plain
// ray-casting definition, so lookups are bit-exact with rayAttacks.

type slider struct {
	mask    Bitboard   // relevant occupancy bits (edges excluded)
	magic   uint64     // perfect-hash multiplier
	shift   uint8      // 64 - popcount(mask)
	attacks []Bitboard // indexed by (occ&mask)*magic>>shift
}

var (
	rookSliders   [64]slider
	bishopSliders [64]slider
)

// Known-good magic multipliers. Finding them is a one-off search; these are
// the standard published constants.
var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookDirections = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// initSliderTables builds the per-square attack tables. Idempotent.
func initSliderTables() {
	for sq := A1; sq <= H8; sq++ {
		buildSlider(&rookSliders[sq], sq, rookMagicNumbers[sq], rookDirections, rookMask(sq))
		buildSlider(&bishopSliders[sq], sq, bishopMagicNumbers[sq], bishopDirections, bishopMask(sq))
	}
}

func buildSlider(s *slider, sq Square, magic uint64, dirs [4][2]int, mask Bitboard) {
	bits := mask.Count()
	s.mask = mask
	s.magic = magic
	s.shift = uint8(64 - bits)
	s.attacks = make([]Bitboard, 1<<bits)
	// Enumerate every relevant occupancy subset and store its exact
	// ray-cast attack set at the hashed index.
	for i := 0; i < 1<<bits; i++ {
		occ := subsetAt(i, mask)
		idx := (uint64(occ) * magic) >> s.shift
		s.attacks[idx] = rayAttacks(sq, occ, dirs)
	}
}

// rookMask is the rook's relevant occupancy: its rank and file, edges and
// own square excluded (edge squares never change the attack set).
func rookMask(sq Square) Bitboard {
	var mask Bitboard
	for f := 1; f < 7; f++ {
		if f != sq.File() {
			mask |= BB(SquareAt(f, sq.Rank()))
		}
	}
	for r := 1; r < 7; r++ {
		if r != sq.Rank() {
			mask |= BB(SquareAt(sq.File(), r))
		}
	}
	return mask
}

func bishopMask(sq Square) Bitboard {
	return rayAttacks(sq, 0, bishopDirections) &^ (Rank1 | Rank8 | FileA | FileH)
}

// subsetAt maps an index in [0, 2^popcount(mask)) to the corresponding
// occupancy subset of mask.
func subsetAt(index int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; mask != 0; i++ {
		sq := mask.PopFirst()
		if index&(1<<i) != 0 {
			occ |= BB(sq)
		}
	}
	return occ
}

// rayAttacks is the direct ray-casting definition of sliding attacks: walk
// each direction and stop after the first occupied square. It is the
// semantic ground truth the magic tables are checked against.
func rayAttacks(sq Square, occupied Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			s := SquareAt(f, r)
			attacks |= BB(s)
			if occupied.Has(s) {
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return attacks
}

// RookAttacks returns the rook attack set from sq under the given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	s := &rookSliders[sq]
	return s.attacks[(uint64(occupied&s.mask)*s.magic)>>s.shift]
}

// BishopAttacks returns the bishop attack set from sq under the given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	s := &bishopSliders[sq]
	return s.attacks[(uint64(occupied&s.mask)*s.magic)>>s.shift]
}
