// Package game tracks a chess game played on a board.Position: the move
// history, repetition bookkeeping and the game outcome.
package game

import (
	"fmt"

	"github.com/tabiya-engine/tabiya/internal/board"
)

// Outcome is the adjudicated state of a game.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Reason explains a decided Outcome.
type Reason int

const (
	NotFinished Reason = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "not finished"
	}
}

type historyEntry struct {
	move board.Move
	undo board.Undo
}

// Session is a game in progress. It owns its position; callers mutate it
// through Play and Undo so the repetition table stays consistent.
type Session struct {
	pos         *board.Position
	repetitions *RepetitionTable
	history     []historyEntry
}

// NewSession starts a game from the standard starting position.
func NewSession() *Session {
	s := &Session{pos: board.NewPosition(), repetitions: NewRepetitionTable()}
	s.repetitions.Record(s.pos.Hash)
	return s
}

// NewSessionFromFEN starts a game from an arbitrary position.
func NewSessionFromFEN(fen string) (*Session, error) {
	pos, err := board.ParsePosition(fen)
	if err != nil {
		return nil, err
	}
	s := &Session{pos: pos, repetitions: NewRepetitionTable()}
	s.repetitions.Record(pos.Hash)
	return s, nil
}

// Position returns the current position. Callers must not mutate it.
func (s *Session) Position() *board.Position {
	return s.pos
}

// MoveCount returns the number of half-moves played so far.
func (s *Session) MoveCount() int {
	return len(s.history)
}

// Play applies a coordinate-notation move. The game must still be ongoing.
func (s *Session) Play(moveStr string) error {
	m, err := s.pos.ParseMove(moveStr)
	if err != nil {
		return err
	}
	return s.PlayMove(m)
}

// PlaySAN applies a move in standard algebraic notation.
func (s *Session) PlaySAN(moveStr string) error {
	m, err := s.pos.ParseSAN(moveStr)
	if err != nil {
		return err
	}
	return s.PlayMove(m)
}

// PlayMove applies a legal move obtained from the current position.
func (s *Session) PlayMove(m board.Move) error {
	if outcome, reason := s.Outcome(); outcome != Ongoing {
		return fmt.Errorf("game is over: %s by %s", outcome, reason)
	}
	u := s.pos.MakeMove(m)
	s.history = append(s.history, historyEntry{move: m, undo: u})
	s.repetitions.Record(s.pos.Hash)
	return nil
}

// Undo takes back the most recent move.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return fmt.Errorf("no moves to undo")
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.repetitions.Remove(s.pos.Hash)
	s.pos.UnmakeMove(last.move, last.undo)
	return nil
}

// Outcome adjudicates the current position: mate and stalemate from the
// legal move count, then the draw rules.
func (s *Session) Outcome() (Outcome, Reason) {
	if !s.pos.HasLegalMoves() {
		if s.pos.InCheck() {
			if s.pos.SideToMove == board.White {
				return BlackWins, Checkmate
			}
			return WhiteWins, Checkmate
		}
		return Draw, Stalemate
	}
	if s.pos.HalfMoveClock >= 100 {
		return Draw, FiftyMoveRule
	}
	if s.repetitions.Count(s.pos.Hash) >= 3 {
		return Draw, ThreefoldRepetition
	}
	if insufficientMaterial(s.pos) {
		return Draw, InsufficientMaterial
	}
	return Ongoing, NotFinished
}

// insufficientMaterial reports the dead positions no sequence of legal moves
// can mate from: bare kings, a single minor piece, or same-colored bishops.
func insufficientMaterial(p *board.Position) bool {
	if p.Pieces[board.White][board.Pawn]|p.Pieces[board.Black][board.Pawn] != 0 {
		return false
	}
	if p.Pieces[board.White][board.Rook]|p.Pieces[board.Black][board.Rook] != 0 {
		return false
	}
	if p.Pieces[board.White][board.Queen]|p.Pieces[board.Black][board.Queen] != 0 {
		return false
	}

	knights := p.Pieces[board.White][board.Knight] | p.Pieces[board.Black][board.Knight]
	bishops := p.Pieces[board.White][board.Bishop] | p.Pieces[board.Black][board.Bishop]
	minors := knights.Count() + bishops.Count()
	if minors <= 1 {
		return true
	}
	if knights != 0 {
		return false
	}

	// Any number of bishops on one square color cannot mate.
	const lightSquares = board.Bitboard(0x55AA55AA55AA55AA)
	return bishops&lightSquares == 0 || bishops&^lightSquares == 0
}
