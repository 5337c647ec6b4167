package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"user@",
		"user@domain",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("12345"))
	assert.False(t, IsNumeric("12a45"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("-1"))
}

func TestParseAmount(t *testing.T) {
	d, ok := ParseAmount("150")
	assert.True(t, ok)
	assert.Equal(t, "150", d.String())

	d, ok = ParseAmount(" 99.50 ")
	assert.True(t, ok)
	assert.Equal(t, "99.5", d.String())

	_, ok = ParseAmount("not-a-number")
	assert.False(t, ok)

	_, ok = ParseAmount("")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "is required"},
		{Field: "salary", Message: "must be non-negative"},
	}

	assert.Equal(t, "email: is required; salary: must be non-negative", errs.Error())

	m := errs.ToMap()
	assert.Equal(t, "is required", m["email"])
	assert.Equal(t, "must be non-negative", m["salary"])
}
