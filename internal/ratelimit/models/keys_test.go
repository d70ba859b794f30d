package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIPKey(t *testing.T) {
	assert.Equal(t, "rl:write:203.0.113.9", NewIPKey(ClassWrite, "203.0.113.9"))
	assert.Equal(t, "rl:auth:2001_db8__1", NewIPKey(ClassAuth, "2001:db8::1"))
}
