package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

func TestWrapKeepsChain(t *testing.T) {
	err := Wrap(errSentinel, "load user")

	assert.EqualError(t, err, "load user: sentinel")
	assert.True(t, Is(err, errSentinel))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestIsAny(t *testing.T) {
	other := New("other")

	assert.True(t, IsAny(Wrapf(errSentinel, "user %d", 7), other, errSentinel))
	assert.False(t, IsAny(errSentinel, other))
	assert.False(t, IsAny(errSentinel))
}

func TestStack(t *testing.T) {
	assert.Empty(t, Stack(errSentinel))
	assert.Empty(t, Stack(nil))
	assert.Contains(t, Stack(WithStack(errSentinel)), "TestStack")
	assert.Contains(t, Stack(Join(errSentinel, Errorf("boom"))), "TestStack")
}
