package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/tabiya-engine/tabiya/internal/testutil"
)

const (
	kiwipeteFEN   = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN  = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	enPassantPin  = "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1"
	promotionsFEN = "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1"
)

func TestPerftStartingPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902, 197281}
	p := NewPosition()
	for depth, nodes := range want {
		testutil.AssertEqual(t, p.Perft(depth), nodes, "depth %d", depth)
	}
	testutil.AssertEqual(t, p.FEN(), StartingFEN, "perft must leave the position unchanged")
}

func TestPerftStartingPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("deep perft")
	}
	p := NewPosition()
	testutil.AssertEqual(t, p.Perft(5), uint64(4865609))
}

func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want []uint64
	}{
		{"kiwipete", kiwipeteFEN, []uint64{1, 48, 2039, 97862}},
		{"position3", position3FEN, []uint64{1, 14, 191, 2812, 43238}},
		{"position4", position4FEN, []uint64{1, 6, 264, 9467}},
		{"enPassantPin", enPassantPin, []uint64{1, 6, 94}},
		{"promotions", promotionsFEN, []uint64{1, 24, 496, 9483}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParsePosition(tc.fen)
			testutil.AssertNoError(t, err)
			for depth, nodes := range tc.want {
				testutil.AssertEqual(t, p.Perft(depth), nodes, "depth %d", depth)
			}
			testutil.AssertEqual(t, p.FEN(), tc.fen)
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	p, err := ParsePosition(kiwipeteFEN)
	testutil.AssertNoError(t, err)

	entries := p.Divide(3)
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	testutil.AssertEqual(t, total, p.Perft(3))
	testutil.AssertEqual(t, len(entries), 48)
}

func TestHorizontalPinForbidsEnPassant(t *testing.T) {
	// After exd3 the rook on h4 would take the king on a4, so the en
	// passant capture must not survive legality filtering.
	p, err := ParsePosition(enPassantPin)
	testutil.AssertNoError(t, err)

	var legal MoveList
	p.LegalMoves(&legal)
	for _, m := range legal.Slice() {
		testutil.AssertTrue(t, m.Kind() != KindEnPassant, "found pinned en passant capture %s", m)
	}
}

// moveStrings returns the position's legal moves in coordinate notation,
// sorted for set comparison.
func moveStrings(p *Position) []string {
	var legal MoveList
	p.LegalMoves(&legal)
	out := make([]string, 0, legal.Len())
	for _, m := range legal.Slice() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func referenceMoveStrings(b *dragontoothmg.Board) []string {
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// TestLegalMovesMatchReference walks the move tree a few plies deep and
// compares the legal move set at every node with an independent generator.
func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{StartingFEN, kiwipeteFEN, position3FEN, position4FEN}
	for _, fen := range fens {
		p, err := ParsePosition(fen)
		testutil.AssertNoError(t, err)
		ref := dragontoothmg.ParseFen(fen)
		compareMoveTrees(t, p, &ref, 2)
	}
}

func compareMoveTrees(t *testing.T, p *Position, ref *dragontoothmg.Board, depth int) {
	t.Helper()
	got, want := moveStrings(p), referenceMoveStrings(ref)
	testutil.AssertEqual(t, got, want, "legal moves in %s", p.FEN())
	if depth == 0 || t.Failed() {
		return
	}

	var legal MoveList
	p.LegalMoves(&legal)
	refMoves := ref.GenerateLegalMoves()
	for _, m := range legal.Slice() {
		for _, rm := range refMoves {
			if rm.String() != m.String() {
				continue
			}
			u := p.MakeMove(m)
			unapply := ref.Apply(rm)
			compareMoveTrees(t, p, ref, depth-1)
			unapply()
			p.UnmakeMove(m, u)
			break
		}
	}
}

func BenchmarkPerftStartingPosition(b *testing.B) {
	p := NewPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Perft(4)
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	p, err := ParsePosition(kiwipeteFEN)
	if err != nil {
		b.Fatal(err)
	}
	var list MoveList
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		list.Clear()
		p.LegalMoves(&list)
	}
}
