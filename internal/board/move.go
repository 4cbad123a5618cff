package board

import "fmt"

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (0=knight .. 3=queen, valid only when promoting)
//	bits 14-15 move kind
type Move uint16

type MoveKind uint16

const (
	KindNormal MoveKind = iota
	KindPromotion
	KindEnPassant
	KindCastle
)

const NoMove Move = 0

func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

func NewPromotionMove(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(KindPromotion)<<14
}

func NewEnPassantMove(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(KindEnPassant)<<14
}

func NewCastleMove(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(KindCastle)<<14
}

func (m Move) From() Square   { return Square(m & 0x3F) }
func (m Move) To() Square     { return Square(m >> 6 & 0x3F) }
func (m Move) Kind() MoveKind { return MoveKind(m >> 14) }

// Promotion returns the promotion piece type, or NoPieceType for
// non-promotion moves.
func (m Move) Promotion() PieceType {
	if m.Kind() != KindPromotion {
		return NoPieceType
	}
	return Knight + PieceType(m>>12&0x3)
}

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.Kind() == KindPromotion {
		s += string(pieceSymbols[6+m.Promotion()])
	}
	return s
}

// MoveList is a fixed-capacity move buffer. 256 comfortably exceeds the
// maximum number of moves in any reachable position (218 is the known record).
type MoveList struct {
	moves [256]Move
	count int
}

func (l *MoveList) Add(m Move) { l.moves[l.count] = m; l.count++ }
func (l *MoveList) Len() int { return l.count }
func (l *MoveList) Get(i int) Move { return l.moves[i] }
func (l *MoveList) Clear() { l.count = 0 }
func (l *MoveList) Slice() []Move { return l.moves[:l.count] }
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.count; i++ {
		if l.moves[i] == m {
			return true
		}
	}
	return false
}

// Undo holds the irreversible parts of a position that MakeMove destroys.
// Everything else is reconstructed from the move itself when unmaking.
type Undo struct {
	Move          Move
	Captured      Piece
	Castling      CastlingRights
	EnPassant     Square
	HalfMoveClock int
	Hash          uint64
}

func (u Undo) String() string {
	return fmt.Sprintf("undo{%s captured=%s}", u.Move, u.Captured)
}
