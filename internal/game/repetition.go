package game

// RepetitionTable counts how many times each position hash has occurred in
// the current game. Hash collisions between distinct positions are possible
// in principle but are far rarer than over-the-board threefold claims.
type RepetitionTable struct {
	counts map[uint64]uint8
}

func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]uint8)}
}

// Record adds one occurrence of hash and reports whether it has now occurred
// at least three times.
func (t *RepetitionTable) Record(hash uint64) bool {
	t.counts[hash]++
	return t.counts[hash] >= 3
}

// Remove undoes one Record call for hash.
func (t *RepetitionTable) Remove(hash uint64) {
	if n := t.counts[hash]; n > 1 {
		t.counts[hash] = n - 1
	} else {
		delete(t.counts, hash)
	}
}

// Count returns the number of recorded occurrences of hash.
func (t *RepetitionTable) Count(hash uint64) int {
	return int(t.counts[hash])
}
