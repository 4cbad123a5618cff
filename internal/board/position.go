package board

import (
	"fmt"
	"log"
	"strings"
)

// CastlingRights is a bitmask of the four individual rights.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	AllCastling CastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
	NoCastling  CastlingRights = 0
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingside != 0 {
		sb.WriteByte('K')
	}
	if cr&WhiteQueenside != 0 {
		sb.WriteByte('Q')
	}
	if cr&BlackKingside != 0 {
		sb.WriteByte('k')
	}
	if cr&BlackQueenside != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// DebugChecks enables internal consistency checks on make/unmake. Violations
// are logged, never fatal; production callers leave this off.
var DebugChecks = false

// Position is a full chess position: piece placement plus the side to move,
// castling rights, en passant target, move clocks and the Zobrist hash. The
// hash is maintained incrementally by MakeMove and UnmakeMove.
type Position struct {
	Pieces   [2][6]Bitboard
	Occupied [2]Bitboard
	All      Bitboard
	squares  [64]Piece

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := ParseFEN(StartingFEN)
	if err != nil {
		panic("board: starting position failed to parse: " + err.Error())
	}
	return p
}

func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// Clone returns an independent copy. Workers that mutate positions
// concurrently each take their own copy; nothing is shared.
func (p *Position) Clone() *Position {
	q := *p
	return &q
}

// KingSquare returns c's king square.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].First()
}

// OccupancyOf returns the squares occupied by side c.
func (p *Position) OccupancyOf(c Color) Bitboard { return p.Occupied[c] }

// Occupancy returns the squares occupied by either side.
func (p *Position) Occupancy() Bitboard { return p.All }

func (p *Position) setPiece(pc Piece, sq Square) {
	bb := BB(sq)
	p.Pieces[pc.Color()][pc.Type()] |= bb
	p.Occupied[pc.Color()] |= bb
	p.All |= bb
	p.squares[sq] = pc
	p.Hash ^= zobristPiece[pc.Color()][pc.Type()][sq]
}

func (p *Position) removePiece(pc Piece, sq Square) {
	bb := BB(sq)
	p.Pieces[pc.Color()][pc.Type()] &^= bb
	p.Occupied[pc.Color()] &^= bb
	p.All &^= bb
	p.squares[sq] = NoPiece
	p.Hash ^= zobristPiece[pc.Color()][pc.Type()][sq]
}

func (p *Position) movePiece(pc Piece, from, to Square) {
	p.removePiece(pc, from)
	p.setPiece(pc, to)
}

// castlingRightsMask[sq] clears the rights lost when a piece moves from or to
// sq. Rights survive every move that touches neither the king's nor the
// relevant rook's home square.
var castlingRightsMask [64]CastlingRights

func init() {
	for sq := A1; sq <= H8; sq++ {
		castlingRightsMask[sq] = AllCastling
	}
	castlingRightsMask[E1] &^= WhiteKingside | WhiteQueenside
	castlingRightsMask[H1] &^= WhiteKingside
	castlingRightsMask[A1] &^= WhiteQueenside
	castlingRightsMask[E8] &^= BlackKingside | BlackQueenside
	castlingRightsMask[H8] &^= BlackKingside
	castlingRightsMask[A8] &^= BlackQueenside
}

// MakeMove applies m, which must be pseudo-legal, and returns the undo record
// needed to reverse it. The caller owns the record; UnmakeMove consumes it.
func (p *Position) MakeMove(m Move) Undo {
	us := p.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	moving := p.squares[from]

	u := Undo{
		Move:          m,
		Captured:      NoPiece,
		Castling:      p.Castling,
		EnPassant:     p.EnPassant,
		HalfMoveClock: p.HalfMoveClock,
		Hash:          p.Hash,
	}

	if DebugChecks {
		if moving == NoPiece || moving.Color() != us {
			log.Printf("board: make %s from empty or hostile square in %s", m, p.FEN())
		}
	}

	p.Hash ^= enPassantHash(p.EnPassant)
	p.EnPassant = NoSquare
	p.HalfMoveClock++

	switch m.Kind() {
	case KindEnPassant:
		// The captured pawn sits beside the destination, not on it.
		capSq := SquareAt(to.File(), from.Rank())
		u.Captured = p.squares[capSq]
		p.removePiece(u.Captured, capSq)
		p.movePiece(moving, from, to)
		p.HalfMoveClock = 0

	case KindCastle:
		rookFrom, rookTo := castleRookSquares(to)
		p.movePiece(moving, from, to)
		p.movePiece(MakePiece(Rook, us), rookFrom, rookTo)

	default:
		if captured := p.squares[to]; captured != NoPiece {
			u.Captured = captured
			p.removePiece(captured, to)
			p.HalfMoveClock = 0
		}
		if m.Kind() == KindPromotion {
			p.removePiece(moving, from)
			p.setPiece(MakePiece(m.Promotion(), us), to)
			p.HalfMoveClock = 0
		} else {
			p.movePiece(moving, from, to)
			if moving.Type() == Pawn {
				p.HalfMoveClock = 0
				if to-from == 16 || from-to == 16 {
					p.EnPassant = SquareAt(from.File(), (from.Rank()+to.Rank())/2)
					p.Hash ^= enPassantHash(p.EnPassant)
				}
			}
		}
	}

	if rights := p.Castling & castlingRightsMask[from] & castlingRightsMask[to]; rights != p.Castling {
		p.Hash ^= castlingHash(p.Castling) ^ castlingHash(rights)
		p.Castling = rights
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	if DebugChecks && p.Hash != p.RecomputeHash() {
		log.Printf("board: incremental hash diverged after %s in %s", m, p.FEN())
	}
	return u
}

// UnmakeMove reverses m using the record MakeMove returned for it. The
// position, including its hash, is restored exactly.
func (p *Position) UnmakeMove(m Move, u Undo) {
	us := p.SideToMove.Opposite() // the side that made the move
	from, to := m.From(), m.To()

	switch m.Kind() {
	case KindEnPassant:
		p.movePiece(p.squares[to], to, from)
		p.setPiece(u.Captured, SquareAt(to.File(), from.Rank()))

	case KindCastle:
		rookFrom, rookTo := castleRookSquares(to)
		p.movePiece(MakePiece(Rook, us), rookTo, rookFrom)
		p.movePiece(p.squares[to], to, from)

	case KindPromotion:
		p.removePiece(p.squares[to], to)
		p.setPiece(MakePiece(Pawn, us), from)
		if u.Captured != NoPiece {
			p.setPiece(u.Captured, to)
		}

	default:
		p.movePiece(p.squares[to], to, from)
		if u.Captured != NoPiece {
			p.setPiece(u.Captured, to)
		}
	}

	if us == Black {
		p.FullMoveNumber--
	}
	p.SideToMove = us
	p.Castling = u.Castling
	p.EnPassant = u.EnPassant
	p.HalfMoveClock = u.HalfMoveClock
	p.Hash = u.Hash
}

// castleRookSquares maps the king's castling destination to the rook's move.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic(fmt.Sprintf("board: bad castle destination %s", kingTo))
}

// Validate checks that the position is playable. It rejects placements that
// cannot occur in a game reachable from the starting position by cheap
// necessary conditions; it does not prove reachability.
func (p *Position) Validate() error {
	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].Count(); n != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidPosition, c, n)
		}
		if n := p.Pieces[c][Pawn].Count(); n > 8 {
			return fmt.Errorf("%w: %s has %d pawns", ErrInvalidPosition, c, n)
		}
		if p.Pieces[c][Pawn]&(Rank1|Rank8) != 0 {
			return fmt.Errorf("%w: %s pawn on a back rank", ErrInvalidPosition, c)
		}
	}
	if p.FullMoveNumber < 1 {
		return fmt.Errorf("%w: fullmove number %d", ErrInvalidPosition, p.FullMoveNumber)
	}
	if err := p.validateCastling(); err != nil {
		return err
	}
	if err := p.validateEnPassant(); err != nil {
		return err
	}
	// The side that just moved must not still be in check.
	if p.SideInCheck(p.SideToMove.Opposite()) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return nil
}

func (p *Position) validateCastling() error {
	check := func(right CastlingRights, king, rook Square, kp, rp Piece) error {
		if p.Castling&right != 0 && (p.squares[king] != kp || p.squares[rook] != rp) {
			return fmt.Errorf("%w: castling right %s without king and rook in place",
				ErrInvalidPosition, right)
		}
		return nil
	}
	for _, c := range []struct {
		right      CastlingRights
		king, rook Square
		kp, rp     Piece
	}{
		{WhiteKingside, E1, H1, WhiteKing, WhiteRook},
		{WhiteQueenside, E1, A1, WhiteKing, WhiteRook},
		{BlackKingside, E8, H8, BlackKing, BlackRook},
		{BlackQueenside, E8, A8, BlackKing, BlackRook},
	} {
		if err := check(c.right, c.king, c.rook, c.kp, c.rp); err != nil {
			return err
		}
	}
	return nil
}

func (p *Position) validateEnPassant() error {
	ep := p.EnPassant
	if ep == NoSquare {
		return nil
	}
	wantRank, pawnRank := 5, 4 // target on rank 6, pawn on rank 5 (0-based)
	pawn := BlackPawn
	if p.SideToMove == Black {
		wantRank, pawnRank = 2, 3
		pawn = WhitePawn
	}
	if ep.Rank() != wantRank {
		return fmt.Errorf("%w: en passant target %s on wrong rank", ErrInvalidPosition, ep)
	}
	if p.squares[SquareAt(ep.File(), pawnRank)] != pawn {
		return fmt.Errorf("%w: en passant target %s without a pushed pawn", ErrInvalidPosition, ep)
	}
	if p.squares[ep] != NoPiece {
		return fmt.Errorf("%w: en passant target %s is occupied", ErrInvalidPosition, ep)
	}
	return nil
}

// String renders the board from White's point of view, rank 8 first.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file <= 7; file++ {
			sb.WriteString(p.squares[SquareAt(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
