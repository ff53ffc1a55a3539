package object_test

import (
	"testing"

	"github.com/347online/lox/object"
	"github.com/stretchr/testify/assert"
)

func TestStringifyNumbersNeverUseScientificNotation(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.5, "0.5"},
		{1e8, "100000000"},
		{1e20, "100000000000000000000"},
		{-233, "-233"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, object.Stringify(c.in))
	}
}

func TestStringifyNilBoolString(t *testing.T) {
	assert.Equal(t, "nil", object.Stringify(nil))
	assert.Equal(t, "true", object.Stringify(true))
	assert.Equal(t, "hello", object.Stringify("hello"))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, object.IsTruthy(nil))
	assert.False(t, object.IsTruthy(false))
	assert.True(t, object.IsTruthy(true))
	assert.True(t, object.IsTruthy(0.0))
	assert.True(t, object.IsTruthy(""))
}

func TestEqual(t *testing.T) {
	assert.True(t, object.Equal(nil, nil))
	assert.False(t, object.Equal(nil, false))
	assert.True(t, object.Equal(1.0, 1.0))
	assert.False(t, object.Equal(1.0, "1"))
	assert.True(t, object.Equal("a", "a"))
}
