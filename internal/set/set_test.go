package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	var s Stack[int]
	_, ok := s.Peek()
	assert.False(t, ok)

	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 3, top)

	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{1, 2}, s.All())
}
