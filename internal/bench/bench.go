// Package bench measures insert, search and delete timings of bptree.Tree
// over increasing key counts.
package bench

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"

	"bptree"
)

// Config controls a timing run.
type Config struct {
	Sizes  []int // Number of keys per run
	Order  int
	Sample int // Keys searched and deleted per run, capped at the run size
	Seed   uint64
	Logger bptree.Logger
}

// DefaultConfig returns sizes 10^3 through 10^5 at order 4.
func DefaultConfig() Config {
	return Config{
		Sizes:  []int{1_000, 10_000, 100_000},
		Order:  4,
		Sample: 1000,
		Seed:   1,
		Logger: bptree.DiscardLogger{},
	}
}

// Result holds the timings of a single run.
type Result struct {
	N      int
	Height int
	Insert time.Duration // Total time to insert N shuffled keys
	Search time.Duration // Mean time per search
	Delete time.Duration // Mean time per delete
	Digest uint64        // xxhash of the keys in scan order after insertion
}

// Run executes one timing run per configured size.
func Run(cfg Config) ([]Result, error) {
	if cfg.Sample <= 0 {
		return nil, fmt.Errorf("sample must be positive, got %d", cfg.Sample)
	}
	if cfg.Logger == nil {
		cfg.Logger = bptree.DiscardLogger{}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	results := make([]Result, 0, len(cfg.Sizes))
	for _, n := range cfg.Sizes {
		r, err := runOne(cfg, rng, n)
		if err != nil {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}
		cfg.Logger.Info("bench run complete", "n", n, "order", cfg.Order,
			"insert", r.Insert, "search", r.Search, "delete", r.Delete)
		results = append(results, r)
	}
	return results, nil
}

func runOne(cfg Config, rng *rand.Rand, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("size must be positive")
	}

	tree, err := bptree.New[int, string](cfg.Order)
	if err != nil {
		return Result{}, err
	}

	keys := rng.Perm(n)
	start := time.Now()
	for _, k := range keys {
		if err := tree.Insert(k, fmt.Sprintf("value_%d", k)); err != nil {
			return Result{}, err
		}
	}
	insert := time.Since(start)

	digest, err := scanDigest(tree, n)
	if err != nil {
		return Result{}, err
	}
	height := tree.Height()

	sample := keys[:min(n, cfg.Sample)]
	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	start = time.Now()
	for _, k := range sample {
		if _, err := tree.Get(k); err != nil {
			return Result{}, err
		}
	}
	search := time.Since(start) / time.Duration(len(sample))

	start = time.Now()
	for _, k := range sample {
		if err := tree.Delete(k); err != nil {
			return Result{}, err
		}
	}
	del := time.Since(start) / time.Duration(len(sample))

	if err := tree.Verify(); err != nil {
		return Result{}, err
	}

	return Result{
		N:      n,
		Height: height,
		Insert: insert,
		Search: search,
		Delete: del,
		Digest: digest,
	}, nil
}

// scanDigest hashes the keys in scan order and checks that they are exactly
// 0 through n-1.
func scanDigest(tree *bptree.Tree[int, string], n int) (uint64, error) {
	h := xxhash.New()
	var buf [8]byte
	want := 0
	for k := range tree.Keys() {
		if k != want {
			return 0, fmt.Errorf("scan yielded %d, want %d: %w", k, want, bptree.ErrCorruption)
		}
		binary.BigEndian.PutUint64(buf[:], uint64(k))
		h.Write(buf[:])
		want++
	}
	if want != n {
		return 0, fmt.Errorf("scan yielded %d keys, want %d: %w", want, n, bptree.ErrCorruption)
	}
	return h.Sum64(), nil
}
