package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	// ErrInvalidFEN reports input that does not parse as FEN or EPD.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrInvalidPosition reports a well-formed FEN describing an
	// unplayable position.
	ErrInvalidPosition = errors.New("invalid position")
)

// ParsePosition parses a FEN or EPD string into a validated position. It
// tolerates a leading "fen " or "epd " tag and surrounding whitespace, and
// EPD input without move clocks, which default to 0 and 1.
func ParsePosition(s string) (*Position, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "fen ")
	s = strings.TrimPrefix(s, "epd ")
	p, err := ParseFEN(s)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFEN parses a FEN record without validating playability. The two clock
// fields are optional.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 4 or 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	p := &Position{EnPassant: NoSquare, HalfMoveClock: 0, FullMoveNumber: 1}
	if err := p.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := parseCastlingRights(fields[2])
	if err != nil {
		return nil, err
	}
	p.Castling = rights

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant target %q", ErrInvalidFEN, fields[3])
		}
		p.EnPassant = sq
	}

	if len(fields) == 6 {
		hm, err := strconv.Atoi(fields[4])
		if err != nil || hm < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		fm, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
		p.HalfMoveClock, p.FullMoveNumber = hm, fm
	}

	p.Hash = p.RecomputeHash()
	return p, nil
}

func (p *Position) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := PieceFromSymbol(c)
			if pc == NoPiece {
				return fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			p.setPiece(pc, SquareAt(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

func parseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var rights CastlingRights
	for i := 0; i < len(s); i++ {
		var r CastlingRights
		switch s[i] {
		case 'K':
			r = WhiteKingside
		case 'Q':
			r = WhiteQueenside
		case 'k':
			r = BlackKingside
		case 'q':
			r = BlackQueenside
		default:
			return 0, fmt.Errorf("%w: castling rights %q", ErrInvalidFEN, s)
		}
		if rights&r != 0 {
			return 0, fmt.Errorf("%w: duplicate castling right in %q", ErrInvalidFEN, s)
		}
		rights |= r
	}
	return rights, nil
}

// FEN serializes the position as a canonical six-field FEN record.
// ParseFEN(p.FEN()) reproduces p exactly.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file <= 7; file++ {
			pc := p.squares[SquareAt(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), side, p.Castling, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
}
