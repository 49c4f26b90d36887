package classmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/classwrap/ctype"
	"github.com/skdltmxn/classwrap/scope"
)

func TestMemberOutsideClass(t *testing.T) {
	p, _ := newTestPipeline(t)
	col := p.Collector()
	integer := ctype.Named("int")

	assert.ErrorIs(t, col.AddFunction("f", "", integer, nil, NotVirtual), ErrNoCurrentClass)
	assert.ErrorIs(t, col.AddVariable("v", "", integer), ErrNoCurrentClass)
	assert.ErrorIs(t, col.AddConstructor("C", "", nil), ErrNoCurrentClass)
	assert.ErrorIs(t, col.Close(""), ErrNoCurrentClass)
	assert.ErrorIs(t, col.Abort(), ErrNoCurrentClass)
	assert.ErrorIs(t, col.DeclareBases([]string{"A"}), ErrNoCurrentClass)

	// type registration is silently ignored outside a class
	assert.NoError(t, col.RegisterType("T"))
	assert.NoError(t, col.RegisterScope(scope.NewScope("T", nil)))
	assert.NoError(t, col.InheritScope([]string{"A"}))
	assert.Empty(t, p.Diagnostics())
}

func TestOpenBadKind(t *testing.T) {
	p, _ := newTestPipeline(t)
	err := p.Collector().Open("Point", "", ClassKind("interface"))
	assert.ErrorIs(t, err, ErrBadKind)
	assert.Zero(t, p.Registry().Len())
}

func TestAmbientState(t *testing.T) {
	p, _ := newTestPipeline(t)
	col := p.Collector()
	integer := ctype.Named("int")

	col.SetLocation("point.i", 3)
	require.NoError(t, col.Open("Point", "", KindStruct))
	assert.Equal(t, "point.i:3", col.Location().String())

	// code without addmethods is dropped
	col.SetCode("return 0;")
	require.NoError(t, col.AddFunction("a", "", integer, nil, NotVirtual))

	col.SetAddMethods(true)
	col.SetCode("return 1;")
	require.NoError(t, col.AddFunction("b", "", integer, nil, NotVirtual))
	require.NoError(t, col.AddFunction("c", "", integer, nil, NotVirtual))

	col.SetNewObject(true)
	require.NoError(t, col.AddFunction("make", "", ctype.Named("Point").Pointer(), nil, NotVirtual))
	require.NoError(t, col.AddFunction("peek", "", ctype.Named("Point").Pointer(), nil, NotVirtual))

	col.SetReadOnly(true)
	require.NoError(t, col.AddVariable("x", "", integer))
	require.NoError(t, col.AddVariable("y", "", integer))
	col.SetReadOnly(false)
	require.NoError(t, col.AddVariable("z", "", integer))
	require.NoError(t, col.Close(""))

	cls := p.Registry().Search("Point")
	assert.Empty(t, cls.FindMember("a").Info().Code)
	assert.False(t, cls.FindMember("a").Info().NewMethod)
	assert.Equal(t, "return 1;", cls.FindMember("b").Info().Code)
	assert.Empty(t, cls.FindMember("c").Info().Code)
	assert.True(t, cls.FindMember("c").Info().NewMethod)

	assert.True(t, cls.FindMember("make").(*Function).NewObject)
	assert.False(t, cls.FindMember("peek").(*Function).NewObject)

	assert.True(t, cls.FindMember("x").(*Variable).ReadOnly)
	assert.True(t, cls.FindMember("y").(*Variable).ReadOnly)
	assert.False(t, cls.FindMember("z").(*Variable).ReadOnly)
	assert.Equal(t, Location{File: "point.i", Line: 3}, cls.FindMember("z").Info().Loc)

	// a new class body starts outside addmethods mode
	require.NoError(t, col.Open("Other", "", KindStruct))
	require.NoError(t, col.AddFunction("d", "", integer, nil, NotVirtual))
	assert.False(t, col.Current().FindMember("d").Info().NewMethod)
}

func TestMemberIdentity(t *testing.T) {
	p, _ := newTestPipeline(t)
	col := p.Collector()

	require.NoError(t, col.Open("Shape", "", KindClass))
	require.NoError(t, col.AddFunction("area", "", ctype.Named("double"), ctype.MustParseParms("int scale, const char *unit"), PureVirtual))
	require.NoError(t, col.AddFunction("move", "translate", ctype.Named("void"), nil, NotVirtual))
	require.NoError(t, col.AddConstructor("Shape", "", nil))
	require.NoError(t, col.Close(""))

	cls := p.Registry().Search("Shape")
	require.Len(t, cls.Members, 3)
	assert.True(t, cls.Abstract)
	assert.True(t, cls.HasConstructor)

	area := cls.Members[0].Info()
	assert.Equal(t, "area", area.IName)
	assert.Equal(t, "Shape", area.Base)
	assert.Equal(t, "area(int scale,const char *unit)", area.Signature)
	assert.False(t, area.Inherited)

	// found by interpreter name only
	assert.Nil(t, cls.FindMember("move"))
	require.NotNil(t, cls.FindMember("translate"))

	ctor := cls.Members[2].Info()
	assert.Empty(t, ctor.IName)
	assert.Less(t, area.ID, cls.Members[1].Info().ID)
	assert.Less(t, cls.Members[1].Info().ID, ctor.ID)
}

func TestSecondDestructorIgnored(t *testing.T) {
	p, _ := newTestPipeline(t)
	col := p.Collector()
	require.NoError(t, col.Open("Handle", "", KindClass))
	require.NoError(t, col.AddDestructor("Handle", ""))
	require.NoError(t, col.AddDestructor("Handle", "release"))
	require.NoError(t, col.Close(""))

	cls := p.Registry().Search("Handle")
	assert.Equal(t, 1, countKind(cls, KindDestructor))
	assert.Empty(t, cls.Members[0].Info().IName)
}

func TestCloseStripsClassKeyword(t *testing.T) {
	p, rec := newTestPipeline(t, func(o *Options) { o.CPlusPlus = false })
	col := p.Collector()

	require.NoError(t, col.Open("Point", "", KindStruct))
	require.NoError(t, col.Close(""))
	require.NoError(t, col.Open("", "", KindUnion))
	require.NoError(t, col.Close("Value"))

	point := p.Registry().Search("Point")
	assert.False(t, point.Strip)
	assert.Equal(t, "struct Point", point.FullName())
	assert.Equal(t, StateClosed, point.State)

	value := p.Registry().Search("Value")
	require.NotNil(t, value)
	assert.True(t, value.Strip)
	assert.Equal(t, "Value", value.FullName())
	assert.Equal(t, []string{"decl Point Point struct", "decl Value Value union"}, rec.calls)
}

func TestCloseBackendError(t *testing.T) {
	p, rec := newTestPipeline(t)
	rec.fail = "decl"
	col := p.Collector()
	require.NoError(t, col.Open("Point", "", KindStruct))
	err := col.Close("")
	assert.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "declare class Point")
}

func TestInheritScope(t *testing.T) {
	p, _ := newTestPipeline(t)
	col := p.Collector()

	shapeScope := scope.NewScope("Shape", nil)
	require.NoError(t, col.Open("Shape", "", KindClass))
	require.NoError(t, col.RegisterScope(shapeScope))
	require.NoError(t, col.RegisterType("Color"))
	require.NoError(t, col.Close(""))

	require.NoError(t, col.Open("Circle", "", KindClass))
	require.NoError(t, col.DeclareBases([]string{"Shape", "Circle"}))
	require.NoError(t, col.Close(""))

	circle := p.Registry().Search("Circle")
	assert.Equal(t, []string{"Shape", "Circle"}, circle.Bases)
	require.NotNil(t, circle.Scope)
	assert.NotSame(t, shapeScope, circle.Scope)
	q, ok := circle.Local.Lookup("Color")
	require.True(t, ok)
	assert.Equal(t, "Shape::Color", q)
	assert.Empty(t, p.Diagnostics())
}

func TestParseInheritMode(t *testing.T) {
	m, err := ParseInheritMode([]string{"functions", "constants"})
	require.NoError(t, err)
	assert.Equal(t, InheritFunctions|InheritConstants, m)
	assert.Equal(t, "functions|constants", m.String())

	m, err = ParseInheritMode([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, "all", m.String())

	_, err = ParseInheritMode([]string{"methods"})
	assert.Error(t, err)
}

func TestParseClassKind(t *testing.T) {
	for _, s := range []string{"struct", "union", "class"} {
		k, err := ParseClassKind(s)
		require.NoError(t, err)
		assert.Equal(t, ClassKind(s), k)
	}
	_, err := ParseClassKind("")
	assert.ErrorIs(t, err, ErrBadKind)
}
