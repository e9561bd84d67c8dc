package flatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNaming_InNamespace(t *testing.T) {
	p := DefaultNaming{}
	cases := []struct {
		key, prefix string
		want        bool
	}{
		{"Items[1]", "Items[1]", true},
		{"Items[1].Name", "Items[1]", true},
		{"Items[1][0]", "Items[1]", true},
		{"Items[10].Name", "Items[1]", false},
		{"ItemsX", "Items", false},
		{"Items.Name", "Items", true},
		{"anything", "", true},
		{"[3]", "[3]", true},
		{"[30]", "[3]", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.InNamespace(tc.key, tc.prefix), "%q in %q", tc.key, tc.prefix)
	}

	sep := DefaultNaming{ComponentSeparator: "_"}
	assert.True(t, sep.InNamespace("Date_Day", "Date"))
	assert.False(t, sep.InNamespace("DateDay", "Date"))
	assert.Equal(t, "Date_Day", sep.ComponentKey("Date", "Day"))
}

func TestPointerNaming(t *testing.T) {
	p := PointerNaming{}
	assert.Equal(t, "/When/Day", p.ComponentKey("/When", "Day"))
	assert.Equal(t, "/Day", p.ComponentKey("/", "Day"))
	assert.Equal(t, "/a~1b/x~0y", pathRef{}.Field("a/b").Field("x~y").Pointer())

	assert.True(t, p.InNamespace("/Items/1/Name", "/Items/1"))
	assert.False(t, p.InNamespace("/Items/10/Name", "/Items/1"))
	assert.True(t, p.InNamespace("/Items/1", "/Items/1"))
	assert.True(t, p.InNamespace("/x", "/"))
}

func TestNaming_ItemIndex(t *testing.T) {
	cases := []struct {
		policy    KeyNamingPolicy
		key, zero string
		want      int
		ok        bool
	}{
		{DefaultNaming{}, "Items[3].Name", "Items[0]", 3, true},
		{DefaultNaming{}, "Items[12]", "Items[0]", 12, true},
		{DefaultNaming{}, "Dates[2]Day", "Dates[0]", 2, true},
		{DefaultNaming{}, "[4][1]", "[0]", 4, true},
		{DefaultNaming{}, "Outer[1].Items[2].Leaf", "Outer[1].Items[0]", 2, true},
		{DefaultNaming{}, "Items[03]", "Items[0]", 0, false},
		{DefaultNaming{}, "Items[x]", "Items[0]", 0, false},
		{DefaultNaming{}, "Items[3", "Items[0]", 0, false},
		{DefaultNaming{}, "Other[1]", "Items[0]", 0, false},
		{PointerNaming{}, "/Items/3/Name", "/Items/0", 3, true},
		{PointerNaming{}, "/Items/3", "/Items/0", 3, true},
		{PointerNaming{}, "/5", "/0", 5, true},
		{PointerNaming{}, "/Items/30x", "/Items/0", 0, false},
		{PointerNaming{}, "/Itemsx/1", "/Items/0", 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.policy.ItemIndex(tc.key, tc.zero)
		assert.Equal(t, tc.ok, ok, "%q under %q", tc.key, tc.zero)
		assert.Equal(t, tc.want, got, "%q under %q", tc.key, tc.zero)
	}
}

func TestDescribe(t *testing.T) {
	leaf := NewSimple[string](nil)
	item := NewClass[struct{ Name string }]().Add(Bind(Property[struct{ Name string }, string]{
		Name: "Name",
		Get:  func(v struct{ Name string }) string { return v.Name },
		Set:  func(v *struct{ Name string }, s string) { v.Name = s },
	}, leaf))
	NewClass[struct{ Items []struct{ Name string } }]().Add(Bind(Property[struct{ Items []struct{ Name string } }, []struct{ Name string }]{
		Name: "Items",
		Get:  func(v struct{ Items []struct{ Name string } }) []struct{ Name string } { return v.Items },
		Set:  func(v *struct{ Items []struct{ Name string } }, s []struct{ Name string }) { v.Items = s },
	}, NewCollection[struct{ Name string }](item)))

	assert.Equal(t, "Items[].Name", describe(leaf))
	assert.Equal(t, "$", describe(NewSimple[int](nil)))

	k, err := keyOf(leaf, []int{4})
	require.NoError(t, err)
	assert.Equal(t, "Items[4].Name", k)
}

func TestAttach_Cycle(t *testing.T) {
	inner := NewClass[int]()
	outer := NewClass[int]().MapAs(inner)
	attach(inner, outer, "", false)
	err := inner.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValues(t *testing.T) {
	v := Values{"b": "2", "a": "1", "a.x": ""}
	assert.Equal(t, []string{"a", "a.x", "b"}, v.Keys())
	assert.Equal(t, "a=1&a.x=&b=2", v.String())
	assert.True(t, v.Has("a.x"))
	s, ok := v.Get("a.x")
	assert.True(t, ok)
	assert.Empty(t, s)
	assert.Equal(t, Values{"a": "1", "a.x": ""}, v.Under("a"))

	c := v.Clone()
	c.Merge(Values{"a": "9", "z": "0"})
	assert.Equal(t, "1", v["a"])
	assert.Equal(t, "9", c["a"])
	assert.Nil(t, Values(nil).Clone())
}

func TestStatusAndKindStrings(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "mandatory_failure", statusMandatory.String())
}
