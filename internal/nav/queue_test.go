package nav

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireHeapInvariant checks parent.f <= child.f for every node and
// that stored indices match positions.
func requireHeapInvariant(t *testing.T, o *openList) {
	t.Helper()
	for i, n := range o.nodes {
		require.Equal(t, i, n.index, "node stores wrong heap index")
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < len(o.nodes) {
				require.LessOrEqual(t, n.f, o.nodes[c].f,
					"heap invariant violated at parent %d child %d", i, c)
			}
		}
	}
}

func TestOpenListPopOrder(t *testing.T) {
	o := newOpenList()
	costs := []float64{10, 3, 7, 1, 9, 4, 4, 2}
	for i, f := range costs {
		o.push(&pathNode{x: int32(i), f: f})
		requireHeapInvariant(t, o)
	}

	sorted := append([]float64(nil), costs...)
	sort.Float64s(sorted)
	for _, want := range sorted {
		n := o.pop()
		require.NotNil(t, n)
		assert.Equal(t, want, n.f)
		requireHeapInvariant(t, o)
	}
	assert.Nil(t, o.pop())
}

func TestOpenListEmpty(t *testing.T) {
	o := newOpenList()
	assert.Nil(t, o.pop(), "pop on empty returns nil, never panics")
	assert.Nil(t, o.peek())
	assert.Equal(t, 0, o.Len())
}

func TestOpenListPeek(t *testing.T) {
	o := newOpenList()
	o.push(&pathNode{x: 1, f: 5})
	o.push(&pathNode{x: 2, f: 2})

	n := o.peek()
	require.NotNil(t, n)
	assert.Equal(t, int32(2), n.x)
	assert.Equal(t, 2, o.Len(), "peek must not remove")
}

func TestOpenListContains(t *testing.T) {
	o := newOpenList()
	n := &pathNode{x: 1, f: 5, index: -1}
	assert.False(t, o.contains(n))

	o.push(n)
	assert.True(t, o.contains(n))

	o.pop()
	assert.False(t, o.contains(n), "popped node no longer queued")
}

func TestOpenListDecreaseKey(t *testing.T) {
	o := newOpenList()
	a := &pathNode{x: 1, f: 10}
	b := &pathNode{x: 2, f: 20}
	c := &pathNode{x: 3, f: 30}
	o.push(a)
	o.push(b)
	o.push(c)

	c.f = 5
	o.decreaseKey(c)
	requireHeapInvariant(t, o)

	n := o.pop()
	require.NotNil(t, n)
	assert.Equal(t, int32(3), n.x, "re-floated node pops first")
}

func TestOpenListDecreaseKeyPopped(t *testing.T) {
	o := newOpenList()
	n := &pathNode{x: 1, f: 10}
	o.push(n)
	o.pop()

	n.f = 1
	o.decreaseKey(n) // must not panic on a node outside the heap
	assert.Equal(t, 0, o.Len())
}

func TestOpenListTieBreakInsertionOrder(t *testing.T) {
	o := newOpenList()
	for i := int32(0); i < 5; i++ {
		o.push(&pathNode{x: i, f: 7})
	}
	for i := int32(0); i < 5; i++ {
		n := o.pop()
		require.NotNil(t, n)
		assert.Equal(t, i, n.x, "equal-f nodes pop in insertion order")
	}
}

func TestOpenListRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	o := newOpenList()
	var queued []*pathNode

	for op := 0; op < 2000; op++ {
		switch r := rng.Intn(4); {
		case r == 0 && len(queued) > 0:
			// pop must return the current minimum
			minF := queued[0].f
			for _, n := range queued {
				if n.f < minF {
					minF = n.f
				}
			}
			n := o.pop()
			require.NotNil(t, n)
			assert.Equal(t, minF, n.f)
			for i, q := range queued {
				if q == n {
					queued = append(queued[:i], queued[i+1:]...)
					break
				}
			}
		case r == 1 && len(queued) > 0:
			n := queued[rng.Intn(len(queued))]
			n.f -= rng.Float64() * 5
			o.decreaseKey(n)
		default:
			n := &pathNode{x: int32(op), f: rng.Float64() * 100}
			o.push(n)
			queued = append(queued, n)
		}
		requireHeapInvariant(t, o)
	}
	assert.Equal(t, len(queued), o.Len())
}
