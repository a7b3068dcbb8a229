package main

import (
	"testing"

	"github.com/npillmayer/mdrange/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, intp *Intp, line string) value {
	t.Helper()
	_, err := intp.Eval(line)
	require.NoError(t, err, "line = %s", line)
	return intp.lastValue
}

func literalOf(t *testing.T, v value) string {
	t.Helper()
	lit, err := v.Literal()
	require.NoError(t, err)
	return lit
}

func TestLet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	v := eval(t, intp, "let a int = {{1,2},{3,4}}")
	assert.Equal(t, runtime.IntRange, v.Kind())
	assert.Equal(t, []int{2, 2}, v.Shape())
	x, err := v.At([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	tag, err := intp.rt.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, runtime.IntRange, tag.Kind)
	//
	v = eval(t, intp, "let f = { 1.5, 2.5 }")
	assert.Equal(t, runtime.FloatRange, v.Kind())
	assert.Equal(t, "{1.5,2.5}", literalOf(t, v))
	//
	v = eval(t, intp, "let k int [3,1] = {{1,2,3}}")
	assert.Equal(t, []int{3, 1}, v.Shape())
}

func TestLetErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	for _, line := range []string{
		"let x int = {{1,2},{3}}",
		"let x int[2,2] = {1,2,3,4}",
		"let x complex = {1}",
		"let x int[2,2 = {1}",
		"let = {1}",
		"frobnicate x",
		"show nosuchname",
	} {
		_, err := intp.Eval(line)
		assert.Error(t, err, "line = %s", line)
	}
	_, err := intp.rt.Lookup("x")
	assert.Error(t, err)
}

func TestAlgebraCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	eval(t, intp, "let a int = {{1,2},{3,4}}")
	v := eval(t, intp, "sum a a")
	assert.Equal(t, "{{2,4},{6,8}}", literalOf(t, v))
	v = eval(t, intp, "contract a 0 1")
	assert.Equal(t, "5", literalOf(t, v))
	eval(t, intp, "let u int = {1,2}")
	eval(t, intp, "let w int = {10,20}")
	v = eval(t, intp, "mul u w")
	assert.Equal(t, []int{2, 2}, v.Shape())
	assert.Equal(t, "{{10,20},{20,40}}", literalOf(t, v))
	v = eval(t, intp, "view a [1] [0,1]")
	assert.Equal(t, "{{2},{4}}", literalOf(t, v))
	//
	eval(t, intp, "let f = {1.0}")
	_, err := intp.Eval("sum a f")
	assert.Error(t, err)
	_, err = intp.Eval("contract a 0")
	assert.Error(t, err)
}

func TestStringsAndDecimals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	eval(t, intp, "let s string = {ab,cd}")
	v := eval(t, intp, "mul s s")
	x, err := v.At([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, "cdab", x)
	//
	eval(t, intp, "let d decimal = {{0.1,0.2},{0.3,0.4}}")
	v = eval(t, intp, "contract d 0 1")
	assert.Equal(t, "0.5", literalOf(t, v))
}

func TestInspection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	eval(t, intp, "let a int = {{1,2},{3,4}}")
	eval(t, intp, "let b int = { {1, 2}, {3, 4} }")
	for _, line := range []string{"show a", "shape a", "at a 1 1", "format a", "hash a", "vars", "help"} {
		_, err := intp.Eval(line)
		assert.NoError(t, err, "line = %s", line)
	}
	a, _ := intp.lookup("a")
	b, _ := intp.lookup("b")
	ha, err := a.Fingerprint()
	require.NoError(t, err)
	hb, _ := b.Fingerprint()
	assert.Equal(t, ha, hb)
	//
	quit, err := intp.Eval("quit")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestLocalScopes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.rrepl")
	defer teardown()
	//
	intp := NewIntp()
	eval(t, intp, "let a int = {1,2}")
	eval(t, intp, "begin")
	eval(t, intp, "let a int = {10,20,30}")
	eval(t, intp, "let b int = {5}")
	a, err := intp.lookup("a")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, a.Shape())
	_, err = intp.Eval("vars")
	assert.NoError(t, err)
	eval(t, intp, "end")
	a, err = intp.lookup("a")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, a.Shape())
	_, err = intp.lookup("b")
	assert.Error(t, err)
	_, err = intp.Eval("end")
	assert.Error(t, err)
}
