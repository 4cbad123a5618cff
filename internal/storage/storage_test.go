package storage

import (
	"testing"

	"github.com/tabiya-engine/tabiya/internal/board"
	"github.com/tabiya-engine/tabiya/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { testutil.AssertNoError(t, s.Close()) })
	return s
}

func TestLoadMissThenSave(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.LoadPerft(42, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, found)

	testutil.AssertNoError(t, s.SavePerft(42, 3, 8902))

	nodes, found, err := s.LoadPerft(42, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found)
	testutil.AssertEqual(t, nodes, uint64(8902))
}

func TestDepthsAreSeparateEntries(t *testing.T) {
	s := openTestStore(t)
	testutil.AssertNoError(t, s.SavePerft(42, 1, 20))
	testutil.AssertNoError(t, s.SavePerft(42, 2, 400))

	nodes, found, err := s.LoadPerft(42, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found)
	testutil.AssertEqual(t, nodes, uint64(20))

	nodes, found, err = s.LoadPerft(42, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found)
	testutil.AssertEqual(t, nodes, uint64(400))
}

func TestPerftComputesAndCaches(t *testing.T) {
	s := openTestStore(t)
	p := board.NewPosition()

	nodes, err := s.Perft(p, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(8902))

	cached, found, err := s.LoadPerft(p.Hash, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, found, "result is cached after computing")
	testutil.AssertEqual(t, cached, uint64(8902))

	nodes, err = s.Perft(p, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(8902))
}
