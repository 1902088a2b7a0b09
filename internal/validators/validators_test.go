package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jean@example.com", NormalizeEmail("  Jean@Example.com "))
	assert.Equal(t, "", NormalizeEmail("Jean <jean@example.com>"))
	assert.Equal(t, "", NormalizeEmail("not-an-email"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11999990000", NormalizePhone("(11) 99999-0000"))
	assert.Equal(t, "5511999990000", NormalizePhone("+55 11 99999 0000"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}
