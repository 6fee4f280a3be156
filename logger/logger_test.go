package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 2, 2))
	assert.Equal(t, "******", MaskSensitiveString("short1", 2, 2))
	assert.Equal(t, "ab...yz", MaskSensitiveString("abcdefghijklmnopqrstuvwxyz", 2, 2))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "al...s@example.com", MaskEmail("alice-jones@example.com"))
	// Short usernames collapse to asterisks
	assert.Equal(t, "**@example.com", MaskEmail("ab@example.com"))
	// Invalid format falls back to generic masking
	assert.Equal(t, "no...il", MaskEmail("notanemail"))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "*****", MaskToken("short"))
	tok := "eyJhbGciOiJIUzI1NiJ9.payload.signature"
	assert.Equal(t, "eyJ...ure", MaskToken(tok))
}
