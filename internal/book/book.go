// Package book reads Polyglot opening books and probes them for moves.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/tabiya-engine/tabiya/internal/board"
)

// Entry is one book move with its selection weight.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an opening book keyed by Polyglot position hash.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Load reads a Polyglot .bin book from a file.
func Load(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", filename, err)
	}
	return b, nil
}

// Read parses Polyglot book entries from r. Each entry is 16 bytes,
// big-endian: position key, move, weight, then learn data we ignore.
func Read(r io.Reader) (*Book, error) {
	b := New()
	var raw [16]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				return b, nil
			}
			return nil, err
		}
		key := binary.BigEndian.Uint64(raw[0:8])
		move := decodeMove(binary.BigEndian.Uint16(raw[8:10]))
		weight := binary.BigEndian.Uint16(raw[10:12])
		if move != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: move, Weight: weight})
		}
	}
}

// Add records a book move for a position, for building books in memory.
func (b *Book) Add(pos *board.Position, m board.Move, weight uint16) {
	key := pos.PolyglotHash()
	b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
}

// decodeMove unpacks the Polyglot move encoding: three bits each for the to
// file and rank, then the from file and rank, then the promotion piece
// (0 none, 1 knight through 4 queen).
func decodeMove(data uint16) board.Move {
	to := board.SquareAt(int(data&7), int(data>>3&7))
	from := board.SquareAt(int(data>>6&7), int(data>>9&7))

	// Polyglot encodes castling as king-takes-own-rook.
	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	if promo := data >> 12 & 7; promo > 0 {
		if promo > 4 {
			return board.NoMove
		}
		return board.NewPromotionMove(from, to, board.Knight+board.PieceType(promo-1))
	}
	return board.NewMove(from, to)
}

// Probe returns a weighted-random book move for the position. The move is
// matched against the position's legal moves, so a stale or corrupt book
// entry yields ok=false rather than an unplayable move.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		return board.NoMove, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	pick := entries[0]
	if total > 0 {
		r := rand.Uint32() % total
		var cumulative uint32
		for _, e := range entries {
			cumulative += uint32(e.Weight)
			if r < cumulative {
				pick = e
				break
			}
		}
	}

	if m := matchLegal(pos, pick.Move); m != board.NoMove {
		return m, true
	}
	return board.NoMove, false
}

// ProbeAll returns every book move for the position, heaviest first.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	entries := b.entries[pos.PolyglotHash()]
	if len(entries) == 0 {
		return nil
	}
	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// Size returns the number of distinct positions in the book.
func (b *Book) Size() int {
	return len(b.entries)
}

// matchLegal finds the legal move with the same origin, destination and
// promotion as the decoded book move, restoring the flags the book format
// does not carry.
func matchLegal(pos *board.Position, m board.Move) board.Move {
	var legal board.MoveList
	pos.LegalMoves(&legal)
	for _, lm := range legal.Slice() {
		if lm.From() == m.From() && lm.To() == m.To() && lm.Promotion() == m.Promotion() {
			return lm
		}
	}
	return board.NoMove
}
