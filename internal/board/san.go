package board

import (
	"fmt"
	"strings"
)

// ToSAN renders a legal move in standard algebraic notation, including the
// "+" or "#" suffix. The move must be legal in p.
func (p *Position) ToSAN(m Move) string {
	var sb strings.Builder

	switch {
	case m.Kind() == KindCastle && m.To().File() == 6:
		sb.WriteString("O-O")
	case m.Kind() == KindCastle && m.To().File() == 2:
		sb.WriteString("O-O-O")
	default:
		moving := p.PieceAt(m.From())
		capture := p.PieceAt(m.To()) != NoPiece || m.Kind() == KindEnPassant

		if moving.Type() == Pawn {
			if capture {
				sb.WriteByte(byte('a' + m.From().File()))
			}
		} else {
			sb.WriteByte(pieceSymbols[moving.Type()])
			sb.WriteString(p.sanDisambiguation(m, moving))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.Kind() == KindPromotion {
			sb.WriteByte('=')
			sb.WriteByte(pieceSymbols[m.Promotion()])
		}
	}

	u := p.MakeMove(m)
	if p.InCheck() {
		if p.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	p.UnmakeMove(m, u)
	return sb.String()
}

// sanDisambiguation returns the minimal origin hint that makes m unique among
// legal moves of the same piece type to the same square: nothing, the file,
// the rank, or the full square.
func (p *Position) sanDisambiguation(m Move, moving Piece) string {
	var legal MoveList
	p.LegalMoves(&legal)

	sameFile, sameRank, others := false, false, false
	for _, other := range legal.Slice() {
		if other == m || other.To() != m.To() || p.PieceAt(other.From()) != moving {
			continue
		}
		others = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}

	switch {
	case !others:
		return ""
	case !sameFile:
		return string(byte('a' + m.From().File()))
	case !sameRank:
		return string(byte('1' + m.From().Rank()))
	default:
		return m.From().String()
	}
}

// ParseSAN decodes standard algebraic notation into the matching legal move.
// Check and annotation suffixes are ignored when matching.
func (p *Position) ParseSAN(s string) (Move, error) {
	want := strings.TrimRight(s, "+#!?")
	if want == "" {
		return NoMove, fmt.Errorf("malformed move %q", s)
	}

	var legal MoveList
	p.LegalMoves(&legal)
	for _, m := range legal.Slice() {
		if strings.TrimRight(p.ToSAN(m), "+#") == want {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}
