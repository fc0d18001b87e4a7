package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"(71) 98833-5001", "71988335001", "5571988335001", "+55 71 3333-4444", "1133334444"}
	invalid := []string{"", "12345", "(71) 08833-5001", "00988335001", "719883350011234"}

	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "71988335001", DigitsOnly("(71) 98833-5001"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestValidateClientName(t *testing.T) {
	assert.True(t, ValidateClientName("João da Silva"))
	assert.True(t, ValidateClientName("Ana-Clara O'Neil"))
	assert.False(t, ValidateClientName("J"))
	assert.False(t, ValidateClientName("<script>"))
	assert.False(t, ValidateClientName("R2D2"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("123456"))
	assert.True(t, ValidatePassword("çãõéíú"))
	assert.False(t, ValidatePassword("12345"))
}

func TestValidateDateAndColor(t *testing.T) {
	assert.True(t, ValidateDate("2025-06-10"))
	assert.False(t, ValidateDate("10/06/2025"))
	assert.True(t, ValidateHexColor("#1a2B3c"))
	assert.True(t, ValidateHexColor("fff"))
	assert.False(t, ValidateHexColor("#12345"))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "João Da Silva", FormatName("  joão   DA silva "))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Corte script", SanitizeString(" Corte <script>"))
}
