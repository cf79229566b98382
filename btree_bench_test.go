package bptree

import (
	"fmt"
	"math/rand"
	"testing"

	gbtree "github.com/google/btree"
	tbtree "github.com/tidwall/btree"
)

const benchKeys = 100_000

func benchPerm() []int {
	return rand.New(rand.NewSource(1)).Perm(benchKeys)
}

func BenchmarkInsert(b *testing.B) {
	keys := benchPerm()

	for _, order := range []int{4, 16, 64, 256} {
		b.Run(fmt.Sprintf("bptree/order=%d", order), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				tree, _ := New[int, int](order)
				for _, k := range keys {
					_ = tree.Insert(k, k)
				}
			}
		})
	}

	b.Run("google", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tree := gbtree.NewG[pair](32, pairLess)
			for _, k := range keys {
				tree.ReplaceOrInsert(pair{key: k, value: k})
			}
		}
	})

	b.Run("tidwall", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var tree tbtree.Map[int, int]
			for _, k := range keys {
				tree.Set(k, k)
			}
		}
	})
}

func BenchmarkGet(b *testing.B) {
	keys := benchPerm()

	for _, order := range []int{4, 16, 64, 256} {
		b.Run(fmt.Sprintf("bptree/order=%d", order), func(b *testing.B) {
			tree, _ := New[int, int](order)
			for _, k := range keys {
				_ = tree.Insert(k, k)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = tree.Get(keys[i%benchKeys])
			}
		})
	}

	b.Run("google", func(b *testing.B) {
		tree := gbtree.NewG[pair](32, pairLess)
		for _, k := range keys {
			tree.ReplaceOrInsert(pair{key: k, value: k})
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			tree.Get(pair{key: keys[i%benchKeys]})
		}
	})

	b.Run("tidwall", func(b *testing.B) {
		var tree tbtree.Map[int, int]
		for _, k := range keys {
			tree.Set(k, k)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			tree.Get(keys[i%benchKeys])
		}
	})
}

func BenchmarkDelete(b *testing.B) {
	keys := benchPerm()

	for _, order := range []int{4, 16, 64, 256} {
		b.Run(fmt.Sprintf("bptree/order=%d", order), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				tree, _ := New[int, int](order)
				for _, k := range keys {
					_ = tree.Insert(k, k)
				}
				b.StartTimer()
				for _, k := range keys {
					_ = tree.Delete(k)
				}
			}
		})
	}
}

func BenchmarkScan(b *testing.B) {
	tree, _ := New[int, int](64)
	for _, k := range benchPerm() {
		_ = tree.Insert(k, k)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		n := 0
		for range tree.Scan() {
			n++
		}
		if n != benchKeys {
			b.Fatalf("scanned %d keys", n)
		}
	}
}
