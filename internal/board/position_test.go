package board

import (
	"testing"

	"github.com/tabiya-engine/tabiya/internal/testutil"
)

// snapshot captures everything UnmakeMove must restore.
type snapshot struct {
	FEN  string
	Hash uint64
}

func snap(p *Position) snapshot {
	return snapshot{FEN: p.FEN(), Hash: p.Hash}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	fens := []string{StartingFEN, kiwipeteFEN, position3FEN, promotionsFEN}
	for _, fen := range fens {
		p, err := ParsePosition(fen)
		testutil.AssertNoError(t, err)
		before := snap(p)

		var legal MoveList
		p.LegalMoves(&legal)
		for _, m := range legal.Slice() {
			u := p.MakeMove(m)
			testutil.AssertEqual(t, p.Hash, p.RecomputeHash(), "incremental hash after %s in %s", m, fen)
			p.UnmakeMove(m, u)
			testutil.AssertEqual(t, snap(p), before, "after unmaking %s", m)
		}
	}
}

func TestMakeUnmakeRestoresAlongLine(t *testing.T) {
	p := NewPosition()
	line := []string{"e2e4", "c7c5", "g1f3", "d7d6", "f1c4", "g8f6", "e1g1"}

	snaps := make([]snapshot, 0, len(line))
	undos := make([]Undo, 0, len(line))
	moves := make([]Move, 0, len(line))
	for _, s := range line {
		snaps = append(snaps, snap(p))
		u, err := p.Apply(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		undos = append(undos, u)
		moves = append(moves, u.Move)
	}

	for i := len(line) - 1; i >= 0; i-- {
		p.UnmakeMove(moves[i], undos[i])
		testutil.AssertEqual(t, snap(p), snaps[i], "after unmaking %s", line[i])
	}
	testutil.AssertEqual(t, p.FEN(), StartingFEN)
}

func TestZeroValuesHoldNoPiece(t *testing.T) {
	var u Undo
	testutil.AssertEqual(t, u.Captured, NoPiece)
	testutil.AssertEqual(t, u.Captured.Type(), NoPieceType)

	var p Position
	testutil.AssertEqual(t, p.PieceAt(E4), NoPiece)
}

func TestCastlingMovesRookAndRevokesRights(t *testing.T) {
	p, err := ParsePosition(kiwipeteFEN)
	testutil.AssertNoError(t, err)

	u, err := p.Apply("e1g1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.PieceAt(G1), WhiteKing)
	testutil.AssertEqual(t, p.PieceAt(F1), WhiteRook)
	testutil.AssertEqual(t, p.PieceAt(H1), NoPiece)
	testutil.AssertEqual(t, p.Castling, BlackKingside|BlackQueenside)
	p.UnmakeMove(u.Move, u)
	testutil.AssertEqual(t, p.Castling, AllCastling)
}

func TestRookMovesRevokeOneRight(t *testing.T) {
	p, err := ParsePosition(kiwipeteFEN)
	testutil.AssertNoError(t, err)

	_, err = p.Apply("a1b1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.Castling, WhiteKingside|BlackKingside|BlackQueenside)
}

func TestCapturingRookRevokesItsRight(t *testing.T) {
	// The bishop takes the h8 rook, so Black may no longer castle short
	// even though no black piece moved.
	p, err := ParsePosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	_, err = p.Apply("h1h8")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.Castling, WhiteQueenside|BlackQueenside)
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	p := NewPosition()
	for _, s := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		_, err := p.Apply(s)
		testutil.AssertNoError(t, err, s)
	}
	testutil.AssertEqual(t, p.EnPassant, D6)

	_, err := p.Apply("e5d6")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.PieceAt(D6), WhitePawn)
	testutil.AssertEqual(t, p.PieceAt(D5), NoPiece, "the pushed pawn is captured beside the target")
	testutil.AssertEqual(t, p.EnPassant, NoSquare)
}

func TestPromotionReplacesPawn(t *testing.T) {
	p, err := ParsePosition("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	testutil.AssertNoError(t, err)

	u, err := p.Apply("a7a8q")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.PieceAt(A8), WhiteQueen)
	testutil.AssertEqual(t, p.Pieces[White][Pawn], Bitboard(0))
	p.UnmakeMove(u.Move, u)
	testutil.AssertEqual(t, p.PieceAt(A7), WhitePawn)
	testutil.AssertEqual(t, p.PieceAt(A8), NoPiece)
}

func TestApplyRejectsIllegalMoveUnchanged(t *testing.T) {
	p := NewPosition()
	before := snap(p)

	for _, s := range []string{"e2e5", "e1g1", "d8h4", "e7e5"} {
		_, err := p.Apply(s)
		testutil.AssertErrorIs(t, err, ErrIllegalMove, s)
		testutil.AssertEqual(t, snap(p), before, "after rejected %s", s)
	}

	for _, s := range []string{"", "e2", "e2e9", "i2i4", "e7e8x"} {
		_, err := p.Apply(s)
		testutil.AssertError(t, err, s)
		testutil.AssertEqual(t, snap(p), before, "after malformed %s", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPosition()
	q := p.Clone()
	_, err := q.Apply("e2e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.FEN(), StartingFEN, "the original is untouched")
	testutil.AssertTrue(t, q.Hash != p.Hash)
}

func TestHalfMoveClockResets(t *testing.T) {
	p := NewPosition()
	_, err := p.Apply("g1f3")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.HalfMoveClock, 1)

	_, err = p.Apply("e7e5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.HalfMoveClock, 0, "pawn move resets the clock")

	_, err = p.Apply("f3e5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.HalfMoveClock, 0, "capture resets the clock")
	testutil.AssertEqual(t, p.FullMoveNumber, 2)
}

func TestInCheckAndAttacks(t *testing.T) {
	p, err := ParsePosition("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, p.InCheck())
	testutil.AssertTrue(t, p.IsSquareAttacked(E1, Black))
	testutil.AssertFalse(t, p.SideInCheck(Black))
}
