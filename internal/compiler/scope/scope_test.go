package scope

import (
	"testing"

	"github.com/arnavsurve/pl0retro/internal/compiler/symbols"
	"github.com/nalgeon/be"
)

func TestFindInnermostFirst(t *testing.T) {
	var st Stack
	st.Push("program")
	st.Update("x", "outer-x")
	st.Define("n", 10)

	st.Push("p")
	st.Update("x", "inner-x")

	sym, depth, err := st.Find("x")
	be.Err(t, err, nil)
	be.Equal(t, sym, symbols.NewVariable("inner-x"))
	be.Equal(t, depth, 0)

	sym, depth, err = st.Find("n")
	be.Err(t, err, nil)
	be.Equal(t, sym.Kind, symbols.Constant)
	be.Equal(t, sym.Value, int64(10))
	be.Equal(t, depth, 1)

	st.Pop()
	sym, _, err = st.Find("x")
	be.Err(t, err, nil)
	be.Equal(t, sym.Label, "outer-x")
}

func TestRebindReplacesOnlyCurrentFrame(t *testing.T) {
	var st Stack
	st.Push("program")
	st.Update("a", "var-a")

	st.Push("p")
	st.Define("a", 1)
	st.Declare("a", "proc-a")

	sym, _, err := st.Find("a")
	be.Err(t, err, nil)
	be.Equal(t, sym, symbols.NewProcedure("proc-a"))
	be.Equal(t, len(st.Current().Symbols), 1)

	st.Pop()
	sym, _, err = st.Find("a")
	be.Err(t, err, nil)
	be.Equal(t, sym, symbols.NewVariable("var-a"))
}

func TestFindUnresolved(t *testing.T) {
	var st Stack
	_, _, err := st.Find("ghost")
	be.Err(t, err, ErrUnresolvedIdentifier)

	st.Push("program")
	_, _, err = st.Find("ghost")
	be.Err(t, err, ErrUnresolvedIdentifier)
	be.Err(t, err, `"ghost"`)
}

func TestPushPopDepth(t *testing.T) {
	var st Stack
	be.Equal(t, st.Depth(), 0)
	st.Push("a")
	st.Push("b")
	be.Equal(t, st.Depth(), 2)
	be.Equal(t, st.Current().Name, "b")
	be.Equal(t, st.Current().Outer.Name, "a")
	st.Pop()
	st.Pop()
	be.Equal(t, st.Depth(), 0)
	be.True(t, st.Current() == nil)
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	var st Stack
	st.Pop()
}

func TestLookupCurrentScope(t *testing.T) {
	outer := NewScope(nil, "outer")
	outer.Bind("x", symbols.NewVariable("l1"))
	inner := NewScope(outer, "inner")

	_, ok := inner.LookupCurrentScope("x")
	be.True(t, !ok)

	_, depth, ok := inner.Lookup("x")
	be.True(t, ok)
	be.Equal(t, depth, 1)
}
