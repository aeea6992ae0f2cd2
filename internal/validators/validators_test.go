package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailSyntaxValid(t *testing.T) {
	assert.True(t, IsEmailSyntaxValid("omar@amai.example"))
	assert.False(t, IsEmailSyntaxValid("Omar <omar@amai.example>"))
	assert.False(t, IsEmailSyntaxValid("omar@localhost"))
	assert.False(t, IsEmailSyntaxValid("omar"))
	assert.False(t, IsEmailSyntaxValid(""))
}

func TestEmailCheckerWithoutDomain(t *testing.T) {
	check := EmailChecker(false)
	assert.True(t, check("client@nowhere.invalid"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+201001234567", NormalizePhone(" +20 100-123 4567 "))
	assert.Equal(t, "01001234567", NormalizePhone("(0100) 123+4567"))
	assert.True(t, IsPhoneValid("+20 100 123 4567"))
	assert.False(t, IsPhoneValid("12345"))
}
