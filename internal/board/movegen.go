package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove reports a move that is not legal in the position it was
// applied to. The position is left unchanged.
var ErrIllegalMove = errors.New("illegal move")

// PseudoLegalMoves appends every move that obeys piece movement rules to
// list, ignoring whether the mover's king is left in check. Move order is
// deterministic for a given position.
func (p *Position) PseudoLegalMoves(list *MoveList) {
	us := p.SideToMove
	targets := ^p.Occupied[us] // own pieces are never capturable

	p.pawnMoves(list)
	p.pieceMoves(list, Knight, targets)
	p.pieceMoves(list, Bishop, targets)
	p.pieceMoves(list, Rook, targets)
	p.pieceMoves(list, Queen, targets)
	p.kingMoves(list, targets)
}

// LegalMoves appends every legal move to list. Legality is decided by
// applying each pseudo-legal candidate and rejecting it if the mover's king
// can be captured in the resulting position; this single rule covers pins,
// en passant discoveries and king walks uniformly.
func (p *Position) LegalMoves(list *MoveList) {
	var pseudo MoveList
	p.PseudoLegalMoves(&pseudo)
	us := p.SideToMove
	for _, m := range pseudo.Slice() {
		u := p.MakeMove(m)
		if !p.SideInCheck(us) {
			list.Add(m)
		}
		p.UnmakeMove(m, u)
	}
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.PseudoLegalMoves(&pseudo)
	us := p.SideToMove
	for _, m := range pseudo.Slice() {
		u := p.MakeMove(m)
		ok := !p.SideInCheck(us)
		p.UnmakeMove(m, u)
		if ok {
			return true
		}
	}
	return false
}

// pawnMoves generates all pawn moves set-wise: one shifted bitboard per
// direction, then one move per destination bit.
func (p *Position) pawnMoves(list *MoveList) {
	us := p.SideToMove
	pawns := p.Pieces[us][Pawn]
	empty := ^p.All
	enemy := p.Occupied[us.Opposite()]

	var push1, push2, capW, capE Bitboard
	var promoRank Bitboard
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		capW = pawns.NorthWest() & enemy
		capE = pawns.NorthEast() & enemy
		promoRank = Rank8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		capW = pawns.SouthWest() & enemy
		capE = pawns.SouthEast() & enemy
		promoRank = Rank1
	}

	addPawn := func(from, to Square) {
		if BB(to)&promoRank != 0 {
			for pt := Queen; pt >= Knight; pt-- {
				list.Add(NewPromotionMove(from, to, pt))
			}
			return
		}
		list.Add(NewMove(from, to))
	}

	if us == White {
		for bb := push1; bb != 0; {
			to := bb.PopFirst()
			addPawn(to-8, to)
		}
		for bb := push2; bb != 0; {
			to := bb.PopFirst()
			list.Add(NewMove(to-16, to))
		}
		for bb := capW; bb != 0; {
			to := bb.PopFirst()
			addPawn(to-7, to)
		}
		for bb := capE; bb != 0; {
			to := bb.PopFirst()
			addPawn(to-9, to)
		}
	} else {
		for bb := push1; bb != 0; {
			to := bb.PopFirst()
			addPawn(to+8, to)
		}
		for bb := push2; bb != 0; {
			to := bb.PopFirst()
			list.Add(NewMove(to+16, to))
		}
		for bb := capW; bb != 0; {
			to := bb.PopFirst()
			addPawn(to+9, to)
		}
		for bb := capE; bb != 0; {
			to := bb.PopFirst()
			addPawn(to+7, to)
		}
	}

	if p.EnPassant != NoSquare {
		// Pawns that attack the en passant target can capture onto it.
		for bb := pawnAttacks[us.Opposite()][p.EnPassant] & pawns; bb != 0; {
			list.Add(NewEnPassantMove(bb.PopFirst(), p.EnPassant))
		}
	}
}

func (p *Position) pieceMoves(list *MoveList, pt PieceType, targets Bitboard) {
	us := p.SideToMove
	for bb := p.Pieces[us][pt]; bb != 0; {
		from := bb.PopFirst()
		var attacks Bitboard
		if pt == Knight {
			attacks = knightAttacks[from]
		} else {
			attacks = SlidingAttacks(pt, from, p.All)
		}
		for moves := attacks & targets; moves != 0; {
			list.Add(NewMove(from, moves.PopFirst()))
		}
	}
}

func (p *Position) kingMoves(list *MoveList, targets Bitboard) {
	us := p.SideToMove
	from := p.KingSquare(us)
	if !from.IsValid() {
		return
	}
	for moves := kingAttacks[from] & targets; moves != 0; {
		list.Add(NewMove(from, moves.PopFirst()))
	}
	p.castleMoves(list)
}

// castleMoves generates castling moves whose path squares are empty and whose
// king path is not attacked. That makes castling fully legal at generation
// time; the try-and-undo filter merely re-confirms it.
func (p *Position) castleMoves(list *MoveList) {
	us := p.SideToMove
	them := us.Opposite()

	type castle struct {
		right      CastlingRights
		kFrom, kTo Square
		empty      Bitboard  // squares between king and rook
		safe       [2]Square // squares the king crosses, besides kFrom and kTo
	}
	var sides [2]castle
	if us == White {
		sides = [2]castle{
			{WhiteKingside, E1, G1, BB(F1) | BB(G1), [2]Square{F1, G1}},
			{WhiteQueenside, E1, C1, BB(B1) | BB(C1) | BB(D1), [2]Square{D1, C1}},
		}
	} else {
		sides = [2]castle{
			{BlackKingside, E8, G8, BB(F8) | BB(G8), [2]Square{F8, G8}},
			{BlackQueenside, E8, C8, BB(B8) | BB(C8) | BB(D8), [2]Square{D8, C8}},
		}
	}

	for _, c := range sides {
		if p.Castling&c.right == 0 || p.All&c.empty != 0 {
			continue
		}
		if p.IsSquareAttacked(c.kFrom, them) ||
			p.IsSquareAttacked(c.safe[0], them) ||
			p.IsSquareAttacked(c.safe[1], them) {
			continue
		}
		list.Add(NewCastleMove(c.kFrom, c.kTo))
	}
}

// ParseMove decodes coordinate notation ("e2e4", "e7e8q") into the matching
// legal move in p. It fails on malformed input and on well-formed moves that
// are not legal here.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("malformed move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("malformed move %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("malformed move %q", s)
	}
	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("malformed move %q", s)
		}
	}

	var legal MoveList
	p.LegalMoves(&legal)
	for _, m := range legal.Slice() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}

// Apply parses and plays a coordinate-notation move, returning its undo
// record. On any error the position is unchanged.
func (p *Position) Apply(s string) (Undo, error) {
	m, err := p.ParseMove(s)
	if err != nil {
		return Undo{}, err
	}
	return p.MakeMove(m), nil
}
