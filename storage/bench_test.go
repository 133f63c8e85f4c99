package storage_test

import (
	"testing"

	"github.com/SGpp/SGpp-sub016/storage"
)

// fill1D inserts the full 1D tree up to level n.
func fill1D(b *testing.B, s *storage.Storage, n int) {
	b.Helper()
	for l := 1; l <= n; l++ {
		for i := 1; i < 1<<l; i += 2 {
			p := storage.MustPointOf([]storage.Level{storage.Level(l)}, []storage.Index{storage.Index(i)})
			if _, err := s.Insert(p); err != nil {
				b.Fatalf("insert: %v", err)
			}
		}
	}
}

// BenchmarkFind measures hash lookups on a 1D level-14 tree (16383 points).
func BenchmarkFind(b *testing.B) {
	s, _ := storage.New(1)
	fill1D(b, s, 14)
	it := storage.NewIterator(s)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		it.Set(0, 14, storage.Index(2*(n%8192)+1))
		if !it.Valid() {
			b.Fatal("missing point")
		}
	}
}
