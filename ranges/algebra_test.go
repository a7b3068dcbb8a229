package ranges

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(shape ...int) *Range[int] {
	r, err := New[int](shape...)
	if err != nil {
		panic(err)
	}
	for i := range r.elements {
		r.elements[i] = i
	}
	return r
}

func TestSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	a, b := seq(2, 3), seq(2, 3)
	s, err := Sum(a, b, Add[int])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6, 8, 10}, s.Elements())
	assert.Equal(t, []int{2, 3}, s.Shape())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, a.Elements(), "operands must not change")
}

func TestSumMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	for i, pair := range [][2]*Range[int]{
		{seq(2, 3), seq(3, 2)},
		{seq(6), seq(2, 3)},
		{seq(2, 3), seq(2, 3, 1)},
		{seq(), seq(1)},
		{Empty[int](), seq()},
	} {
		if _, err := Sum(pair[0], pair[1], Add[int]); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("test %d: expected dimension mismatch for %v + %v, err = %v",
				i, pair[0].Shape(), pair[1].Shape(), err)
		}
	}
}

func TestSumParallel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	a := seq(100, 100)
	s, err := Sum(a, a, Add[int])
	require.NoError(t, err)
	for i, v := range s.elements {
		if v != 2*i {
			t.Fatalf("element %d is %d, expected %d", i, v, 2*i)
		}
	}
}

func TestMultiply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	a, _ := FromElements([]int{2}, []int{1, 2})
	b, _ := FromElements([]int{3}, []int{10, 20, 30})
	p, err := Multiply(a, b, Mul[int])
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, p.Shape())
	assert.Equal(t, []int{10, 20, 20, 40, 30, 60}, p.Elements())
	a2 := seq(2, 2)
	b2 := seq(3, 1)
	p2, err := Multiply(a2, b2, func(x, y int) int { return 10*x + y })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3, 1}, p2.Shape())
	for i := 0; i < a2.Len(); i++ {
		for j := 0; j < b2.Len(); j++ {
			if v := p2.elements[j*a2.Len()+i]; v != 10*i+j {
				t.Errorf("element (%d,%d) is %d, expected %d", i, j, v, 10*i+j)
			}
		}
	}
}

func TestMultiplyLargeLeftOperand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	n := 3*DefaultParallelThreshold + 7
	a, b := seq(n), seq(2)
	p, err := Multiply(a, b, func(x, y int) int { return 10*x + y })
	require.NoError(t, err)
	assert.Equal(t, []int{n, 2}, p.Shape())
	for k, v := range p.elements {
		i, j := k%n, k/n
		if v != 10*i+j {
			t.Fatalf("element (%d,%d) is %d, expected %d", i, j, v, 10*i+j)
		}
	}
	empty, _ := New[int](0)
	p, err = Multiply(empty, b, Mul[int])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, p.Shape())
	assert.True(t, p.IsEmpty())
}

func TestMultiplyRankZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	scalar, _ := FromElements(nil, []int{7})
	p1, err1 := Multiply(scalar, seq(2, 2), Mul[int])
	p2, err2 := Multiply(seq(3), scalar, Mul[int])
	require.NoError(t, err1)
	require.NoError(t, err2)
	for _, p := range []*Range[int]{p1, p2} {
		assert.True(t, p.IsEmpty())
		assert.Equal(t, 0, p.Rank())
	}
}

func TestContractTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	for n := 0; n <= 5; n++ {
		r := seq(n, n)
		c, err := Contract(r, []int{0, 1}, Add[int])
		require.NoError(t, err)
		assert.Equal(t, 0, c.Rank())
		sum := 0
		for k := 0; k < n; k++ {
			v, _ := r.At(k, k)
			sum += v
		}
		v, err := c.At()
		assert.NoError(t, err)
		assert.Equal(t, sum, v, "trace of %dx%d", n, n)
	}
	c, err := Contract(seq(2, 2, 2), []int{2, 0, 1}, Add[int])
	require.NoError(t, err)
	v, _ := c.At()
	assert.Equal(t, 7, v)
}

func TestContractPartial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	c, err := Contract(seq(2, 3, 2), []int{0, 2}, Add[int])
	require.NoError(t, err)
	assert.Equal(t, []int{3}, c.Shape())
	assert.Equal(t, []int{7, 11, 15}, c.Elements())
	c, err = Contract(seq(2, 3, 2), []int{2, 0}, Add[int])
	require.NoError(t, err)
	assert.Equal(t, []int{7, 11, 15}, c.Elements())
	c, err = Contract(seq(3, 2, 4, 2), []int{1, 3}, Add[int])
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, c.Shape())
	// strides of [3,2,4,2] are [1,3,6,24]
	for k := 0; k < 4; k++ {
		for i := 0; i < 3; i++ {
			v, _ := c.At(i, k)
			exp := (i + 6*k) + (i + 3 + 6*k + 24)
			if v != exp {
				t.Errorf("(%d,%d) = %d, expected %d", i, k, v, exp)
			}
		}
	}
}

func TestContractParallel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	c, err := Contract(seq(5000, 2, 2), []int{1, 2}, Add[int])
	require.NoError(t, err)
	require.Equal(t, 5000, c.Len())
	for k, v := range c.elements {
		if v != 2*k+15000 {
			t.Fatalf("element %d is %d, expected %d", k, v, 2*k+15000)
		}
	}
}

func TestContractErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	r := seq(2, 3, 2)
	for i, axes := range [][]int{
		{0},
		{},
		{0, 0},
		{0, 1},
		{0, 3},
		{-1, 0},
	} {
		if _, err := Contract(r, axes, Add[int]); !errors.Is(err, ErrContraction) {
			t.Errorf("test %d: expected contraction of %v to fail, err = %v", i, axes, err)
		}
	}
}

func TestContractEmptyDiagonal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	r, _ := New[int](0, 3, 0)
	c, err := Contract(r, []int{0, 2}, Add[int])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, c.Elements())
}

func TestDecimalCombinators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.ranges")
	defer teardown()
	//
	a, _ := FromElements([]int{2, 2}, []decimal.Decimal{
		decimal.RequireFromString("0.1"), decimal.RequireFromString("1"),
		decimal.RequireFromString("2"), decimal.RequireFromString("0.2"),
	})
	c, err := Contract(a, []int{0, 1}, AddDecimal)
	require.NoError(t, err)
	v, _ := c.At()
	assert.True(t, v.Equal(decimal.RequireFromString("0.3")), "trace is %s", v)
	p, err := Multiply(a, a, MulDecimal)
	require.NoError(t, err)
	assert.Equal(t, 16, p.Len())
}
