package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	slots := Ptr(int64(5))
	assert.Equal(t, int64(5), *slots)

	*slots = 4
	assert.NotSame(t, slots, Ptr(int64(4)))
}
