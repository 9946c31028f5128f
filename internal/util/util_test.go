package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet_BasicOps(t *testing.T) {
	assert := assert.New(t)

	s := StringSetOf([]string{"a", "b", "a"})
	assert.Equal(2, s.Len())
	assert.True(s.Has("a"))
	assert.False(s.Has("c"))

	s.Add("c")
	assert.True(s.Has("c"))
	s.Remove("c")
	assert.False(s.Has("c"))
}

func TestStringSet_SetAlgebra(t *testing.T) {
	assert := assert.New(t)

	a := StringSetOf([]string{"x", "y"})
	b := StringSetOf([]string{"y", "z"})

	assert.True(a.Union(b).Equal(StringSetOf([]string{"x", "y", "z"})))
	assert.True(a.Intersection(b).Equal(StringSetOf([]string{"y"})))
	assert.True(a.Difference(b).Equal(StringSetOf([]string{"x"})))
	assert.False(a.DisjointWith(b))
	assert.True(a.DisjointWith(StringSetOf([]string{"z"})))
}

func TestStringSet_EmptyAndNil(t *testing.T) {
	assert := assert.New(t)

	var nilSet StringSet
	assert.Nil(StringSetOf(nil))
	assert.Empty(nilSet.Elements())

	empty := NewStringSet()
	assert.True(empty.Empty())
}

func TestStringSet_Sorted(t *testing.T) {
	assert := assert.New(t)

	s := StringSetOf([]string{"banana", "apple", "cherry"})
	assert.Equal([]string{"apple", "banana", "cherry"}, s.Sorted())
}

func TestStringSet_String(t *testing.T) {
	assert := assert.New(t)

	s := StringSetOf([]string{"b", "a"})
	assert.Equal("{a, b}", s.String())
}

func TestMakeTextList(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", MakeTextList(nil))
	assert.Equal("ball", MakeTextList([]string{"ball"}))
	assert.Equal("ball and box", MakeTextList([]string{"ball", "box"}))
	assert.Equal("ball, box, and table", MakeTextList([]string{"ball", "box", "table"}))
}

func TestMakeTextListOr(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("white ball or black ball", MakeTextListOr([]string{"white ball", "black ball"}))
	assert.Equal("a, b, or c", MakeTextListOr([]string{"a", "b", "c"}))
}
