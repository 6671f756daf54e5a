package array

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/c0/errors"
)

func TestNilArrayIsEmpty(t *testing.T) {
	var a Array[int]

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())
	_, ok := a.Pop()
	assert.False(t, ok)

	a.Clear()
	a.Free()
	assert.Nil(t, a)
}

func TestGrowthPolicy(t *testing.T) {
	var a Array[int]

	a.Push(1)
	assert.Equal(t, 2, a.Cap(), "first allocation reserves k+1")

	a.Push(2)
	assert.Equal(t, 2, a.Cap())

	a.Push(3)
	assert.Equal(t, 5, a.Cap(), "growth is 2*cap+k")

	a.Append(4, 5, 6, 7)
	assert.Equal(t, 14, a.Cap())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, a.Slice())

	var b Array[int]
	b.Append(1, 2, 3)
	assert.Equal(t, 4, b.Cap())
}

func TestInsertAndOrderedRemove(t *testing.T) {
	var a Array[string]
	a.Append("a", "c")

	a.Insert(1, "b")
	a.Insert(0, "start")
	a.Insert(a.Len(), "end")
	assert.Equal(t, []string{"start", "a", "b", "c", "end"}, a.Slice())

	assert.Equal(t, "a", a.OrderedRemove(1))
	assert.Equal(t, "end", a.OrderedRemove(a.Len()-1))
	assert.Equal(t, []string{"start", "b", "c"}, a.Slice())
	assert.Equal(t, "c", a.Last())
}

func TestResize(t *testing.T) {
	var a Array[int]
	a.Append(1, 2, 3, 4)

	a.Resize(2)
	assert.Equal(t, []int{1, 2}, a.Slice())

	a.Resize(5)
	assert.Equal(t, []int{1, 2, 0, 0, 0}, a.Slice(), "regrown elements are zeroed")

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Greater(t, a.Cap(), 0, "clear keeps storage")
}

func TestOutOfBounds(t *testing.T) {
	var a Array[int]
	a.Push(1)

	tests := []struct {
		name string
		fn   func()
	}{
		{"at", func() { a.At(1) }},
		{"negative", func() { a.At(-1) }},
		{"set", func() { a.Set(3, 0) }},
		{"insert", func() { a.Insert(3, 0) }},
		{"remove", func() { a.OrderedRemove(1) }},
		{"resize", func() { a.Resize(-1) }},
		{"last of empty", func() { var e Array[int]; e.Last() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(*errors.Error)
				require.True(t, ok, "expected *errors.Error panic")
				assert.Equal(t, errors.KindOutOfBounds, err.Kind)
			}()
			tt.fn()
		})
	}
}

func TestMatchesSliceModel(t *testing.T) {
	var a Array[int]
	var model []int

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		switch op := rng.Intn(6); {
		case op <= 1:
			a.Push(i)
			model = append(model, i)
		case op == 2 && len(model) > 0:
			v, ok := a.Pop()
			require.True(t, ok)
			require.Equal(t, model[len(model)-1], v)
			model = model[:len(model)-1]
		case op == 3:
			at := rng.Intn(len(model) + 1)
			a.Insert(at, -i)
			model = append(model[:at], append([]int{-i}, model[at:]...)...)
		case op == 4 && len(model) > 0:
			at := rng.Intn(len(model))
			a.OrderedRemove(at)
			model = append(model[:at], model[at+1:]...)
		case op == 5:
			a.Append(i, i+1)
			model = append(model, i, i+1)
		}

		if a.Len() != len(model) {
			t.Fatalf("step %d: expected len %d, got %d", i, len(model), a.Len())
		}
	}

	assert.Equal(t, model, a.Slice())
}
