package logsafe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "*"},
		{"ab", "a*"},
		{"abcd", "a**d"},
		{"myemail@example.com", "my***************om"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.in))
	}
}

func TestValueMasksPIIFields(t *testing.T) {
	assert.Equal(t, Mask("jane@example.com"), Value("user_email", "jane@example.com"))
	assert.Equal(t, "hello", Value("status", "hello"))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 500)

	got := Truncate(long, 21)
	assert.Len(t, []rune(got), 21)
	assert.Contains(t, got, "...")

	assert.Equal(t, "short", Truncate("short", 21))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
}
