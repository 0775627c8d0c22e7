package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ze@navalha.com", NormalizeEmail("  ZE@Navalha.com "))
	assert.Equal(t, "", NormalizeEmail("sem-arroba"))
	assert.Equal(t, "", NormalizeEmail("Zé <ze@navalha.com>"))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("ze@"))
	assert.False(t, IsEmailDomainValid("ze"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "11999990000", Digits("(11) 99999-0000"))
	assert.True(t, IsPlausiblePhone("(11) 99999-0000"))
	assert.True(t, IsPlausiblePhone("+55 11 99999-0000"))
	assert.False(t, IsPlausiblePhone("99999"))
	assert.False(t, IsPlausiblePhone(""))
}
