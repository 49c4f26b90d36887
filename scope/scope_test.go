package scope

import (
	"slices"
	"testing"

	"github.com/skdltmxn/classwrap/ctype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTypesRegisterAndLookup(t *testing.T) {
	lt := NewLocalTypes()
	lt.Register("Shape", "Color")
	lt.Register("Shape", "Kind")

	q, ok := lt.Lookup("Color")
	require.True(t, ok)
	assert.Equal(t, "Shape::Color", q)
	assert.Equal(t, 2, lt.Len())

	_, ok = lt.Lookup("Missing")
	assert.False(t, ok)
}

func TestLocalTypesOwnRegistrationOverrides(t *testing.T) {
	base := NewLocalTypes()
	base.Register("Shape", "Color")

	lt := NewLocalTypes()
	lt.Merge(base)
	lt.Register("Circle", "Color")

	q, _ := lt.Lookup("Color")
	assert.Equal(t, "Circle::Color", q)
	assert.Equal(t, 1, lt.Len())
}

func TestLocalTypesMergeFirstWriteWins(t *testing.T) {
	a := NewLocalTypes()
	a.Register("A", "T")
	a.Register("A", "U")
	b := NewLocalTypes()
	b.Register("B", "T")
	b.Register("B", "V")

	d := NewLocalTypes()
	d.Register("D", "U")
	assert.Equal(t, 1, d.Merge(a))
	assert.Equal(t, 1, d.Merge(b))

	var keys, values []string
	for k, v := range d.All() {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []string{"U", "T", "V"}, keys)
	assert.Equal(t, []string{"D::U", "A::T", "B::V"}, values)
}

func TestLocalTypesNilIsEmpty(t *testing.T) {
	var lt *LocalTypes
	assert.Equal(t, 0, lt.Len())
	_, ok := lt.Lookup("x")
	assert.False(t, ok)

	ty := ctype.MustParseType("Color *")
	assert.Equal(t, "Color *", lt.Substitute(ty).String())

	d := NewLocalTypes()
	assert.Equal(t, 0, d.Merge(nil))
}

func TestSubstitute(t *testing.T) {
	lt := NewLocalTypes()
	lt.Register("Shape", "Color")

	in := ctype.MustParseType("const Color &")
	out := lt.Substitute(in)
	assert.Equal(t, "const Shape::Color &", out.String())
	assert.Equal(t, "Color", in.Base)

	other := ctype.MustParseType("int")
	assert.Equal(t, "int", lt.Substitute(other).String())
}

func TestSubstituteParms(t *testing.T) {
	lt := NewLocalTypes()
	lt.Register("Shape", "Color")
	lt.Register("Shape", "RED")

	in := ctype.MustParseParms(`Color c = RED, int n = Shape::RED, const char *s = "RED", Color d = (Color) 3`)
	out := lt.SubstituteParms(in)

	require.Len(t, out, 4)
	assert.Equal(t, "Shape::Color", out[0].Type.Base)
	assert.Equal(t, "Shape::RED", out[0].Value)
	assert.Equal(t, "Shape::RED", out[1].Value)
	assert.Equal(t, `"RED"`, out[2].Value)
	assert.Equal(t, "(Shape::Color) 3", out[3].Value)

	// the input list is untouched
	assert.Equal(t, "Color", in[0].Type.Base)
	assert.Equal(t, "RED", in[0].Value)
}

func TestScopeInsertAndLookup(t *testing.T) {
	outer := NewScope("ns", nil)
	outer.Insert(NewObj(ObjNamespace, "std"))

	s := NewScope("Shape", outer)
	obj := NewObj(ObjType, "Color")
	assert.Nil(t, s.Insert(obj))
	assert.Same(t, s, obj.Decl)

	dup := NewObj(ObjVar, "Color")
	assert.Same(t, obj, s.Insert(dup))

	assert.Same(t, obj, s.Lookup("Color"))
	assert.Nil(t, s.Lookup("std"))
	assert.NotNil(t, s.LookupParent("std"))
	assert.Nil(t, s.LookupParent("nothing"))
}

func TestScopeMerge(t *testing.T) {
	base := NewScope("Shape", nil)
	base.Insert(NewObj(ObjType, "Color"))
	base.Insert(NewObj(ObjFunc, "area"))

	derived := NewScope("Circle", nil)
	derived.Insert(NewObj(ObjFunc, "area"))

	assert.Equal(t, 1, derived.Merge(base))
	assert.Equal(t, 2, derived.Len())
	assert.Same(t, base, derived.Lookup("Color").Decl)
	assert.Equal(t, 0, derived.Merge(derived))
	assert.Equal(t, 0, derived.Merge(nil))
	assert.True(t, slices.Equal([]string{"Color", "area"}, derived.Names()))
}

func TestScopeString(t *testing.T) {
	s := NewScope("Shape", nil)
	s.Insert(NewObj(ObjType, "Color"))
	assert.Equal(t, "scope Shape {\n\ttype Color\n}\n", s.String())
}

func TestObjKind(t *testing.T) {
	k, ok := ParseObjKind("namespace")
	require.True(t, ok)
	assert.Equal(t, ObjNamespace, k)
	_, ok = ParseObjKind("class")
	assert.False(t, ok)
	assert.Equal(t, "bad", ObjKind(42).String())
}
