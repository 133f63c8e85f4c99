package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SGpp/SGpp-sub016/storage"
)

// TestIterator_Walk walks a 1D level-2 tree plus one level-3 point.
func TestIterator_Walk(t *testing.T) {
	s, _ := storage.New(1)
	mustInsert(t, s, pt(1, 1)) // 0
	mustInsert(t, s, pt(2, 1)) // 1
	mustInsert(t, s, pt(2, 3)) // 2
	mustInsert(t, s, pt(3, 7)) // 3

	it := storage.NewIterator(s)
	seq, ok := it.Seq()
	require.True(t, ok)
	require.Equal(t, 0, seq)
	require.False(t, it.Hint())

	it.LeftChild(0)
	seq, ok = it.Seq()
	require.True(t, ok)
	require.Equal(t, 1, seq)
	require.True(t, it.Hint(), "(2,1) is a leaf")

	it.StepRight(0)
	seq, ok = it.Seq()
	require.True(t, ok)
	require.Equal(t, 2, seq)
	require.False(t, it.Hint())

	it.LeftChild(0)
	require.False(t, it.Valid(), "(3,5) is not stored")
	it.StepRight(0)
	seq, ok = it.Seq()
	require.True(t, ok)
	require.Equal(t, 3, seq)

	it.Up(0)
	l, i := it.Get(0)
	require.Equal(t, storage.Level(2), l)
	require.Equal(t, storage.Index(3), i)
	it.Up(0)
	l, i = it.Get(0)
	require.Equal(t, storage.Level(1), l)
	require.Equal(t, storage.Index(1), i)

	it.Up(0)
	l, i = it.Get(0)
	require.Equal(t, storage.Level(0), l)
	require.Equal(t, storage.Index(0), i)
	require.False(t, it.Valid(), "interior grid has no boundary points")
}

func TestIterator_MultiDimensional(t *testing.T) {
	s, _ := storage.New(2)
	mustInsert(t, s, pt(1, 1, 1, 1))
	want := mustInsert(t, s, pt(1, 1, 2, 3))

	it := storage.NewIterator(s)
	it.RightChild(1)
	seq, ok := it.Seq()
	require.True(t, ok)
	require.Equal(t, want, seq)

	it.ResetToLevelOne(1)
	it.ResetToRightLevelZero(0)
	require.False(t, it.Valid())
	require.True(t, it.Point().Equal(pt(0, 1, 1, 1)))

	require.NoError(t, it.SetSeq(want))
	require.True(t, it.Point().Equal(pt(1, 1, 2, 3)))
	require.ErrorIs(t, it.SetSeq(9), storage.ErrPointNotFound)
}

func TestIterator_CacheInvalidatedOnMove(t *testing.T) {
	s, _ := storage.New(1)
	mustInsert(t, s, pt(1, 1))
	mustInsert(t, s, pt(2, 1))

	it := storage.NewIterator(s)
	it.SetPoint(pt(2, 1))
	seq, ok := it.Seq()
	require.True(t, ok)
	require.Equal(t, 1, seq)
	it.Set(0, 2, 3)
	require.False(t, it.Valid())
	it.ResetToLeftLevelZero(0)
	require.False(t, it.Valid())
}
