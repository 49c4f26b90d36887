package listing

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/ctype"
)

func newPipeline(w io.Writer) (*classmodel.Pipeline, *Backend) {
	b := New(w)
	opts := classmodel.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return classmodel.New(b, opts), b
}

func TestListingStruct(t *testing.T) {
	var buf bytes.Buffer
	p, b := newPipeline(&buf)
	col := p.Collector()

	require.NoError(t, col.Open("Point", "", classmodel.KindStruct))
	require.NoError(t, col.AddVariable("x", "", ctype.Named("int")))
	require.NoError(t, col.Close(""))
	require.NoError(t, p.Emit(context.Background()))

	assert.Equal(t, []string{
		"declare struct Point",
		"class Point",
		"function Point_x_get = int Point_x_get(Point *self)",
		"  { result = self->x; }",
		"function Point_x_set = void Point_x_set(Point *self, int value)",
		"  { self->x = value; }",
		"function new_Point = Point *new_Point(void)",
		"  { result = new Point(); }",
		"function delete_Point = void delete_Point(Point *self)",
		"  { delete self; }",
		"end Point",
		"# 4 functions, 0 aliases",
	}, b.Lines())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "declare struct Point\nclass Point\n  function Point_x_get"))
	assert.Contains(t, out, "\n    { delete self; }\nend Point\n")
}

func TestListingInheritance(t *testing.T) {
	p, b := newPipeline(nil)
	col := p.Collector()
	void := ctype.Named("void")

	require.NoError(t, col.Open("Base", "", classmodel.KindClass))
	require.NoError(t, col.AddFunction("draw", "", void, nil, classmodel.Virtual))
	require.NoError(t, col.AddStaticVariable("count", "", ctype.Named("int")))
	require.NoError(t, col.AddConstant("MAX", "", ctype.Named("int"), "16"))
	require.NoError(t, col.AddPragma("python", "shadow", "1"))
	require.NoError(t, col.Close(""))

	require.NoError(t, col.Open("Derived", "", classmodel.KindClass))
	require.NoError(t, col.DeclareBases([]string{"Base"}))
	require.NoError(t, col.Close(""))

	require.NoError(t, p.Emit(context.Background()))

	lines := b.Lines()
	assert.Contains(t, lines, "class Base")
	assert.Contains(t, lines, "pragma python shadow = 1")
	assert.Contains(t, lines, "variable Base_count = int Base::count")
	assert.Contains(t, lines, "constant Base_MAX = int Base::MAX = 16")
	assert.Contains(t, lines, "class Derived : Base")
	assert.Contains(t, lines, "alias Derived_draw = Base_draw")
	assert.Contains(t, lines, "variable Derived_count = int Derived::count")
	assert.Contains(t, lines, "cast Derived -> Base")

	created, aliased := b.Counts()
	assert.Equal(t, 5, created)
	assert.Equal(t, 1, aliased)
}

func TestListingAddedMethod(t *testing.T) {
	p, b := newPipeline(nil)
	col := p.Collector()
	integer := ctype.Named("int")

	require.NoError(t, col.Open("Point", "", classmodel.KindStruct))
	require.NoError(t, col.AddVariable("x", "", integer))
	require.NoError(t, col.Close(""))

	require.NoError(t, col.Reopen("Point"))
	col.SetAddMethods(true)
	col.SetCode("return self->x * 2;")
	require.NoError(t, col.AddFunction("doubled", "", integer, nil, classmodel.NotVirtual))
	col.Unset()

	require.NoError(t, p.Emit(context.Background()))

	lines := b.Lines()
	assert.Contains(t, lines, "| int Point_doubled(Point *self) {")
	assert.Contains(t, lines, "|   return self->x * 2;")
	assert.Contains(t, lines, "| }")
	assert.Contains(t, lines, "function Point_doubled = int Point_doubled(Point *self)")
}

func TestListingImportedAndAbstract(t *testing.T) {
	p, b := newPipeline(nil)
	col := p.Collector()

	col.SetImportMode(true)
	require.NoError(t, col.Open("Ext", "", classmodel.KindClass))
	require.NoError(t, col.Close(""))
	col.SetImportMode(false)

	require.NoError(t, col.Open("Shape", "Figure", classmodel.KindClass))
	require.NoError(t, col.AddFunction("area", "", ctype.Named("double"), nil, classmodel.PureVirtual))
	require.NoError(t, col.Close(""))

	require.NoError(t, p.Emit(context.Background()))

	lines := b.Lines()
	assert.Contains(t, lines, "declare class Shape as Figure")
	assert.Contains(t, lines, "pointer Ext *")
	assert.Contains(t, lines, "class Shape as Figure (abstract)")
	assert.NotContains(t, lines, "function new_Figure = Shape *new_Shape(void)")
}

func TestListingNewObject(t *testing.T) {
	p, b := newPipeline(nil)
	col := p.Collector()
	shape := ctype.Named("Shape").Pointer()

	require.NoError(t, col.Open("Shape", "", classmodel.KindClass))
	col.SetNewObject(true)
	require.NoError(t, col.AddFunction("clone", "", shape, nil, classmodel.NotVirtual))
	col.SetNewObject(true)
	require.NoError(t, col.AddStaticFunction("make", "", shape, nil))
	require.NoError(t, col.AddFunction("self", "", shape, nil, classmodel.NotVirtual))
	require.NoError(t, col.Close(""))

	require.NoError(t, p.Emit(context.Background()))

	marked := map[string]bool{}
	for _, line := range b.Lines() {
		if name, ok := strings.CutPrefix(line, "function "); ok {
			name, _, _ = strings.Cut(name, " ")
			marked[name] = strings.HasSuffix(line, " (newobject)")
		}
	}
	assert.True(t, marked["Shape_clone"])
	assert.True(t, marked["Shape_make"])
	assert.False(t, marked["Shape_self"])
	assert.False(t, marked["new_Shape"])
}
