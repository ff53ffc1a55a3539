package version_test

import (
	"testing"

	"github.com/347online/lox/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestStringPrefixesProgramName(t *testing.T) {
	assert.Equal(t, "lox "+version.Version, version.String())
}
