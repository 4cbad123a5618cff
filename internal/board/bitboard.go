package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit square set: bit i corresponds to Square(i).
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// BB returns a bitboard with only sq set.
func BB(sq Square) Bitboard { return 1 << sq }

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&(1<<sq) != 0 }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// First returns the lowest set square, NoSquare when empty.
func (b Bitboard) First() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopFirst removes and returns the lowest set square.
func (b *Bitboard) PopFirst() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// Single-step shifts. The file masks keep pieces from wrapping around
// the board edges.

func (b Bitboard) North() Bitboard     { return b << 8 }
func (b Bitboard) South() Bitboard     { return b >> 8 }
func (b Bitboard) East() Bitboard      { return (b << 1) &^ FileA }
func (b Bitboard) West() Bitboard      { return (b >> 1) &^ FileH }
func (b Bitboard) NorthEast() Bitboard { return (b << 9) &^ FileA }
func (b Bitboard) NorthWest() Bitboard { return (b << 7) &^ FileH }
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) &^ FileA }
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) &^ FileH }

// String renders the set as an 8x8 grid, rank 8 first. Debug helper.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(SquareAt(file, rank)) {
				sb.WriteString("x ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
