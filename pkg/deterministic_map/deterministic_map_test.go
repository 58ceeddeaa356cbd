package deterministicmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_OrderedIteration(t *testing.T) {
	requireT := require.New(t)

	m := New[uint64, string]()
	for _, k := range []uint64{7, 3, 10, 1, 3} {
		m.Set(k, "v")
	}

	requireT.Equal(4, m.Len())
	requireT.Equal([]uint64{1, 3, 7, 10}, m.Keys())

	var visited []uint64
	m.Range(func(key uint64, _ string) bool {
		visited = append(visited, key)
		return key < 7
	})
	requireT.Equal([]uint64{1, 3, 7}, visited)
}

func TestMap_Delete(t *testing.T) {
	requireT := require.New(t)

	m := New[string, string]()
	m.Set("a", "b")
	m.Set("c", "d")
	requireT.Equal(2, m.Len())
	m.Delete("a")
	requireT.Equal(1, m.Len())
	m.Delete("a") // noop
	requireT.Equal([]string{"c"}, m.Keys())
	_, ok := m.Get("a")
	requireT.False(ok)
}

func TestMap_ZeroValue(t *testing.T) {
	requireT := require.New(t)

	var m Map[int, int]
	requireT.Equal(0, m.Len())
	_, ok := m.Get(1)
	requireT.False(ok)
	m.Delete(1)

	m.Update(1, func(current int, found bool) int {
		requireT.False(found)
		return current + 5
	})
	m.Update(1, func(current int, found bool) int {
		requireT.True(found)
		return current + 5
	})
	v, ok := m.Get(1)
	requireT.True(ok)
	requireT.Equal(10, v)
}

func TestMap_RangeErr(t *testing.T) {
	requireT := require.New(t)

	m := New[int, int]()
	m.Set(2, 20)
	m.Set(1, 10)

	stop := errors.New("stop")
	var sum int
	err := m.RangeErr(func(key, value int) error {
		sum += value
		if key == 1 {
			return stop
		}
		return nil
	})
	requireT.ErrorIs(err, stop)
	requireT.Equal(10, sum)
}
