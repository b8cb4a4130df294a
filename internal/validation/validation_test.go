package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@ex.com"))
	assert.NoError(t, ValidateEmail("a.b+tag@sub.example.org"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@domain@twice"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.co"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("hunter2"))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 72)))

	assert.Error(t, ValidatePassword(""))
	// bcrypt truncates beyond 72 bytes, so longer inputs are rejected.
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername(strings.Repeat("u", 20)))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("   "))
	assert.Error(t, ValidateUsername(strings.Repeat("u", 21)))
}
