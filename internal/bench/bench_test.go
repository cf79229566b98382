package bench

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Sizes = []int{10, 500, 2000}
	cfg.Sample = 100

	results, err := Run(cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, cfg.Sizes[i], r.N)
		assert.Positive(t, r.Height)
		assert.GreaterOrEqual(t, r.Insert, time.Duration(0))
	}
	assert.LessOrEqual(t, results[0].Height, results[2].Height)
}

func TestRunDigest(t *testing.T) {
	t.Parallel()

	const n = 300
	h := xxhash.New()
	var buf [8]byte
	for k := range n {
		binary.BigEndian.PutUint64(buf[:], uint64(k))
		h.Write(buf[:])
	}

	// The digest depends on scan order only, not on the shuffle
	for _, seed := range []uint64{1, 2, 3} {
		cfg := DefaultConfig()
		cfg.Sizes = []int{n}
		cfg.Seed = seed

		results, err := Run(cfg)
		require.NoError(t, err)
		assert.Equal(t, h.Sum64(), results[0].Digest)
	}
}

func TestRunInvalid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Sample = 0
	_, err := Run(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Sizes = []int{0}
	_, err = Run(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Sizes = []int{10}
	cfg.Order = 2
	_, err = Run(cfg)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	t.Parallel()

	results := []Result{
		{N: 1000, Height: 6, Insert: 2 * time.Millisecond, Search: time.Microsecond, Delete: 2 * time.Microsecond, Digest: 0xabc},
		{N: 10000, Height: 9, Insert: 25 * time.Millisecond, Search: time.Microsecond, Delete: 3 * time.Microsecond, Digest: 0xdef},
	}

	var table bytes.Buffer
	require.NoError(t, WriteTable(&table, results))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "0000000000000abc")
	assert.Contains(t, lines[2], "25ms")

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, results))
	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1000", "3.0000", "6", "0.002", "1e-06", "2e-06"}, rows[1])
	assert.Equal(t, "4.0000", rows[2][1])
}
