// Package board implements a bitboard-based chess position representation
// and legal move generator.
package board

import "fmt"

// Square indexes a board square using little-endian rank-file mapping:
// A1=0, H1=7, A8=56, H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// SquareAt builds a square from 0-indexed file and rank.
func SquareAt(file, rank int) Square {
	return Square(rank<<3 | file)
}

// File returns the 0-indexed file (0=a .. 7=h).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the 0-indexed rank (0=1 .. 7=8).
func (sq Square) Rank() int { return int(sq) >> 3 }

// IsValid reports whether the square lies on the board.
func (sq Square) IsValid() bool { return sq < NoSquare }

// String returns coordinate notation ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare reads coordinate notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("malformed square %q", s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}
