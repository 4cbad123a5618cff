package game

import (
	"testing"

	"github.com/tabiya-engine/tabiya/internal/board"
	"github.com/tabiya-engine/tabiya/internal/testutil"
)

func assertOutcome(t *testing.T, s *Session, wantOutcome Outcome, wantReason Reason) {
	t.Helper()
	outcome, reason := s.Outcome()
	testutil.AssertEqual(t, outcome, wantOutcome)
	testutil.AssertEqual(t, reason, wantReason)
}

func TestFoolsMate(t *testing.T) {
	s := NewSession()
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		testutil.AssertNoError(t, s.Play(m), m)
	}
	assertOutcome(t, s, BlackWins, Checkmate)
	testutil.AssertError(t, s.Play("a2a3"), "no moves after mate")
}

func TestScholarsMateSAN(t *testing.T) {
	s := NewSession()
	for _, m := range []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"} {
		testutil.AssertNoError(t, s.PlaySAN(m), m)
	}
	assertOutcome(t, s, WhiteWins, Checkmate)
}

func TestStalemate(t *testing.T) {
	s, err := NewSessionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	testutil.AssertNoError(t, err)
	assertOutcome(t, s, Draw, Stalemate)
}

func TestThreefoldRepetition(t *testing.T) {
	s := NewSession()
	// Knight shuffles repeat the starting position twice more.
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, m := range shuffle {
			testutil.AssertNoError(t, s.Play(m), m)
		}
	}
	assertOutcome(t, s, Draw, ThreefoldRepetition)
}

func TestUndoUnwindsRepetitions(t *testing.T) {
	s := NewSession()
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, m := range moves {
		testutil.AssertNoError(t, s.Play(m), m)
	}
	assertOutcome(t, s, Draw, ThreefoldRepetition)

	testutil.AssertNoError(t, s.Undo())
	assertOutcome(t, s, Ongoing, NotFinished)

	for range moves[1:] {
		testutil.AssertNoError(t, s.Undo())
	}
	testutil.AssertEqual(t, s.Position().FEN(), board.StartingFEN)
	testutil.AssertError(t, s.Undo(), "history is empty")
}

func TestFiftyMoveRule(t *testing.T) {
	s, err := NewSessionFromFEN("4k3/8/8/8/8/8/8/4K2R w - - 99 80")
	testutil.AssertNoError(t, err)
	assertOutcome(t, s, Ongoing, NotFinished)

	testutil.AssertNoError(t, s.Play("h1h2"))
	assertOutcome(t, s, Draw, FiftyMoveRule)
}

func TestInsufficientMaterial(t *testing.T) {
	dead := []string{
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/4KB2 w - - 0 1",
		"4k3/8/8/8/8/8/8/4KN2 w - - 0 1",
		// Bishops on c1 and f4 are both dark-squared.
		"4k3/8/8/8/5b2/8/8/2B1K3 w - - 0 1",
	}
	for _, fen := range dead {
		s, err := NewSessionFromFEN(fen)
		testutil.AssertNoError(t, err, fen)
		assertOutcome(t, s, Draw, InsufficientMaterial)
	}

	alive := []string{
		"4k3/8/8/8/8/8/8/3QK3 w - - 0 1",
		"4k3/8/8/8/8/8/8/3NKN2 w - - 0 1",
		// Opposite-colored bishops can still construct a mate.
		"4k3/8/8/8/4b3/8/8/2B1K3 w - - 0 1",
		"4k3/7p/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range alive {
		s, err := NewSessionFromFEN(fen)
		testutil.AssertNoError(t, err, fen)
		assertOutcome(t, s, Ongoing, NotFinished)
	}
}

func TestSessionFromInvalidFEN(t *testing.T) {
	_, err := NewSessionFromFEN("not a position")
	testutil.AssertErrorIs(t, err, board.ErrInvalidFEN)
}
