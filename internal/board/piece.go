package board

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a closed enumeration of the six chess piece kinds.
// Knight..Queen are consecutive so that promotions pack into two bits.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece packs a PieceType and Color into one value: 1 + type + 6*color.
// NoPiece is deliberately the zero value so that zeroed boards and undo
// records hold no piece rather than a white pawn.
type Piece uint8

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// MakePiece combines a piece type and color.
func MakePiece(pt PieceType, c Color) Piece {
	return 1 + Piece(pt) + Piece(c)*6
}

// Type returns the piece kind, or NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	if p == NoPiece || p > BlackKing {
		return NoPieceType
	}
	return PieceType((p - 1) % 6)
}

// Color returns the owning side. Only meaningful for real pieces.
func (p Piece) Color() Color { return Color((p - 1) / 6) }

const pieceSymbols = "PNBRQKpnbrqk"

// String returns the FEN letter of the piece: uppercase white, lowercase black.
func (p Piece) String() string {
	if p == NoPiece || p > BlackKing {
		return "."
	}
	return string(pieceSymbols[p-1])
}

// PieceFromSymbol maps a FEN letter to a piece, NoPiece if unknown.
func PieceFromSymbol(c byte) Piece {
	for i := 0; i < len(pieceSymbols); i++ {
		if pieceSymbols[i] == c {
			return Piece(i + 1)
		}
	}
	return NoPiece
}
