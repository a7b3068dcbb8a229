package literal

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/mdrange/ranges"
	"github.com/npillmayer/mdrange/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownShapeScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	p, err := NewKnownShapeParser(BraceTable(), IntParser())
	require.NoError(t, err)
	r, _ := ranges.New[int](3, 2)
	require.NoError(t, p.Parse(r, NewStringReader("{ {1,2,3} {4,5,6} }")))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, r.Elements())
	v, _ := r.At(0, 1)
	assert.Equal(t, 4, v)
	require.NoError(t, p.Parse(r, NewStringReader("{{-1, +2, 3},\n\t{4,5,6}}")))
	assert.Equal(t, []int{-1, 2, 3, 4, 5, 6}, r.Elements())
	require.NoError(t, p.Parse(r, NewStringReader("{ {1,2,3} /* first */ {4,5, /* last */ 6} } // done")))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, r.Elements())
}

func TestKnownShapeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	for i, test := range []struct {
		input string
		shape []int
		kind  error
	}{
		{"1", []int{1}, ErrExpectedOpen},
		{"", []int{1}, ErrExpectedOpen},
		{"  ,", []int{1}, ErrExpectedOpen},
		{"{}", []int{1}, ErrTooFewElements},
		{"{1,}", []int{2}, ErrTooFewElements},
		{"{,1}", []int{2}, ErrUnexpectedSeparator},
		{"{1,,2}", []int{2}, ErrUnexpectedSeparator},
		{"{a}", []int{1}, ErrLeafValue},
		{"{1.5}", []int{1}, ErrLeafValue},
		{"{1,2", []int{2}, ErrUnexpectedEOF},
		{"{{1,2}", []int{2, 1}, ErrUnexpectedEOF},
		{"{1,2,3}", []int{2}, ErrSiblingCount},
		{"{1}", []int{2}, ErrSiblingCount},
		{"{{1,2},{3}}", []int{2, 2}, ErrSiblingCount},
		{"{{1,2},{3,4},{5,6}}", []int{2, 2}, ErrSiblingCount},
		{"{{1}}", []int{1}, ErrDimensions},
		{"{1}", []int{1, 1}, ErrDimensions},
		{"{{1},2}", []int{1, 2}, ErrDimensions},
		{"{1} 2", []int{1}, ErrUnexpectedSymbol},
		{"{1 2}", []int{2}, ErrUnexpectedSymbol},
		{"{1}}", []int{1}, ErrUnexpectedSymbol},
	} {
		target, _ := ranges.New[int](test.shape...)
		p, _ := NewKnownShapeParser(BraceTable(), IntParser())
		err := p.Parse(target, NewStringReader(test.input))
		if !errors.Is(err, test.kind) || !errors.Is(err, ErrStructure) {
			t.Errorf("test %d: expected %q to fail with %v, have %v", i, test.input, test.kind, err)
		}
	}
}

func TestKnownShapeMismatchedDelimiters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	dt := BraceTable()
	dt.MapInternalDelimiters('[', ']')
	p, _ := NewKnownShapeParser(dt, IntParser())
	r, _ := ranges.New[int](2, 2)
	require.NoError(t, p.Parse(r, NewStringReader("[{1,2},{3,4}]")))
	err := p.Parse(r, NewStringReader("{[1,2},[3,4]}"))
	assert.ErrorIs(t, err, ErrDelimiterMismatch)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, mdrange.Span{1, 6}, perr.Span)
}

func TestKnownShapeTargetUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	r, _ := ranges.FromElements([]int{3}, []int{9, 9, 9})
	p, _ := NewKnownShapeParser(BraceTable(), IntParser())
	err := p.Parse(r, NewStringReader("{1,2,x}"))
	assert.ErrorIs(t, err, ErrLeafValue)
	assert.Equal(t, []int{9, 9, 9}, r.Elements())
}

func TestKnownShapeDegenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	p, _ := NewKnownShapeParser(BraceTable(), IntParser())
	scalar, _ := ranges.New[int]()
	assert.ErrorIs(t, p.Parse(scalar, NewStringReader("{1}")), ErrDimensions)
	empty, _ := ranges.New[int](2, 0)
	assert.ErrorIs(t, p.Parse(empty, NewStringReader("{{}}")), ErrDimensions)
}

func TestKnownShapeTrailing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	p, _ := NewKnownShapeParser(BraceTable(), IntParser(), AllowTrailing(true))
	r, _ := ranges.New[int](2)
	src := NewStringReader("{1,2} {3,4}")
	require.NoError(t, p.Parse(r, src))
	assert.Equal(t, []int{1, 2}, r.Elements())
	require.NoError(t, p.Parse(r, src))
	assert.Equal(t, []int{3, 4}, r.Elements())
}

func TestKnownShapeElementTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	f, err := ReadShaped("{1.5, -2e3, 7}", []int{3}, BraceTable(), FloatParser())
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2000, 7}, f.Elements())
	d, err := ReadShaped("{{0.1, 0.2}, {0.3, 0.4}}", []int{2, 2}, BraceTable(), DecimalParser())
	require.NoError(t, err)
	c, err := ranges.Contract(d, []int{0, 1}, ranges.AddDecimal)
	require.NoError(t, err)
	v, _ := c.At()
	assert.Equal(t, "0.5", v.String())
	s, err := ReadShaped(`{"a", "b c"}`, []int{2}, BraceTable(), StringParser())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b c"}, s.Elements())
}

func TestKnownShapeReentrant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	var p *KnownShapeParser[int]
	var inner error
	leaf := ElementParserFunc[int](func(symbols []mdrange.Token) (int, bool) {
		if inner == nil {
			r, _ := ranges.New[int](1)
			inner = p.Parse(r, NewStringReader("{1}"))
		}
		n, err := strconv.Atoi(Text(symbols))
		return n, err == nil
	})
	p, _ = NewKnownShapeParser[int](BraceTable(), leaf)
	r, _ := ranges.New[int](1)
	require.NoError(t, p.Parse(r, NewStringReader("{1}")))
	assert.ErrorIs(t, inner, ErrReentrant)
}

func TestKnownShapeStrayExternalDelimiters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.literal")
	defer teardown()
	//
	p, err := NewKnownShapeParser(catTable(), StringParser())
	require.NoError(t, err)
	catReader := func(input string) *scanner.Reader {
		return scanner.NewReader(scanner.NewCatTokenizer(strings.NewReader(input), nil))
	}
	for _, test := range []struct {
		input string
		shape []int
	}{
		{`{ b] }`, []int{1}},
		{`{ a"b, c }`, []int{2}},
		{`{ x[y }`, []int{1}},
		{`{ a, b] }`, []int{2}},
	} {
		r, _ := ranges.New[string](test.shape...)
		err := p.Parse(r, catReader(test.input))
		assert.ErrorIs(t, err, ErrUnexpectedSymbol, "input = %s", test.input)
		assert.Equal(t, make([]string, len(r.Elements())), r.Elements(), "input = %s", test.input)
	}
	r, _ := ranges.New[string](2)
	require.NoError(t, p.Parse(r, catReader(`{ [x], "y" }`)))
	assert.Equal(t, []string{"[x]", "y"}, r.Elements())
}
