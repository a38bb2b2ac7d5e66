package chess

import "sync/atomic"

// Transposition table: a shared hash table of prior search results, keyed
// by Zobrist hash, using cluster-of-4 depth-preferred replacement with an
// age tiebreak so entries from the current search are favored over stale
// ones left by a previous position.

// Bound classifies how a stored score relates to the search window that
// produced it.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// ttEntry is one slot: a 32-bit verification key (not the full 64-bit
// hash, to keep clusters small), a packed move, a score, a depth, a bound,
// and an age used to prefer fresher entries. It occupies 12 bytes in
// memory; NewTranspositionTable budgets 16 bytes per entry when sizing.
type ttEntry struct {
	key   uint32
	move  Move
	score int16
	depth int8
	bound Bound
	age   uint8
}

const clusterSize = 4

type ttCluster [clusterSize]ttEntry

// TranspositionTable is a shared, fixed-size hash table of position scores,
// indexed by the low bits of the Zobrist hash into power-of-two clusters.
type TranspositionTable struct {
	clusters []ttCluster
	mask     uint64
	age      uint8
	hits     atomic.Uint64
	stores   atomic.Uint64
}

// NewTranspositionTable allocates a table sized to approximately sizeMB
// megabytes, rounded down to a power-of-two number of clusters.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	bytesPerCluster := clusterSize * 16
	wanted := (sizeMB * 1024 * 1024) / bytesPerCluster
	count := uint64(1)
	for count*2 <= uint64(wanted) {
		count *= 2
	}
	if count == 0 {
		count = 1
	}
	return &TranspositionTable{
		clusters: make([]ttCluster, count),
		mask:     count - 1,
	}
}

// Clear zeroes every entry, used by UCI's ucinewgame.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.age = 0
}

// NewSearch bumps the table's age counter, used at the start of each
// search so replacement prefers entries from the current search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

func (tt *TranspositionTable) clusterFor(hash uint64) *ttCluster {
	return &tt.clusters[hash&tt.mask]
}

// Probe looks up hash and reports whether a usable entry was found.
func (tt *TranspositionTable) Probe(hash uint64) (entry ttEntry, ok bool) {
	key := uint32(hash >> 32)
	c := tt.clusterFor(hash)
	for i := range c {
		if c[i].key == key && c[i].bound != BoundNone {
			tt.hits.Add(1)
			return c[i], true
		}
	}
	return ttEntry{}, false
}

// Store records a search result, replacing the shallowest/oldest entry in
// the cluster.
func (tt *TranspositionTable) Store(hash uint64, move Move, score int, depth int, bound Bound, ply int) {
	tt.stores.Add(1)
	key := uint32(hash >> 32)
	c := tt.clusterFor(hash)

	replace := 0
	replaceScore := -1 << 30
	for i := range c {
		if c[i].bound == BoundNone {
			replace = i
			break
		}
		if c[i].key == key {
			replace = i
			break
		}
		// prefer to evict old, shallow entries: score by how much older
		// and shallower a slot is than the incoming entry.
		s := int(tt.age-c[i].age)*32 - int(c[i].depth)
		if s > replaceScore {
			replaceScore = s
			replace = i
		}
	}

	e := &c[replace]
	if e.key == key && move == NoMove && e.move != NoMove {
		move = e.move // keep the known best move when storing a bound-only refresh
	}
	e.key = key
	e.move = move
	e.score = int16(toTT(score, ply))
	e.depth = int8(depth)
	e.bound = bound
	e.age = tt.age
}

// toTT adjusts a mate score found at `ply` from the root into one relative
// to the node being stored, so stored mate scores remain meaningful
// regardless of how deep in the tree they're probed from later.
func toTT(score, ply int) int {
	if score >= mateScore-maxPly {
		return score + ply
	}
	if score <= -mateScore+maxPly {
		return score - ply
	}
	return score
}

// fromTT reverses toTT when a stored score is read back out at a possibly
// different ply than it was stored from.
func fromTT(score, ply int) int {
	if score >= mateScore-maxPly {
		return score - ply
	}
	if score <= -mateScore+maxPly {
		return score + ply
	}
	return score
}
