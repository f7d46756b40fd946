package consts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDevMode(t *testing.T) {
	previous := IsDevMode()
	defer SetDevMode(previous)

	SetDevMode(true)
	assert.True(t, IsDevMode())
	SetDevMode(false)
	assert.False(t, IsDevMode())
}

func TestUserAgentNamesVersion(t *testing.T) {
	ua := UserAgent()
	assert.True(t, strings.HasPrefix(ua, "geodist/"), ua)
	assert.Contains(t, ua, Version)
}
