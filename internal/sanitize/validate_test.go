package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	valid := []string{"2024-01-15", "2000-12-31", "1999-02-28", "2024-02-29"}
	for _, s := range valid {
		assert.True(t, ValidDate(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"2024-1-15",
		"15-01-2024",
		"2024/01/15",
		"2024-13-01",
		"2024-00-10",
		"2024-02-30",
		"2023-02-29",
		"2024-01-15T00:00:00",
		"abcd-ef-gh",
		"2024-01-150",
	}
	for _, s := range invalid {
		assert.False(t, ValidDate(s), "expected %q to be invalid", s)
	}
}

func TestValidTime(t *testing.T) {
	// Empty is valid: time is optional almost everywhere.
	assert.True(t, ValidTime(""))

	valid := []string{"00:00", "09:30", "23:59", "12:05"}
	for _, s := range valid {
		assert.True(t, ValidTime(s), "expected %q to be valid", s)
	}

	invalid := []string{"24:00", "12:60", "9:30", "12:5", "1230", "ab:cd", "12-30", "12:30:00"}
	for _, s := range invalid {
		assert.False(t, ValidTime(s), "expected %q to be invalid", s)
	}
}

func TestValidNumber(t *testing.T) {
	assert.True(t, ValidNumber(5, 0, 10))
	assert.True(t, ValidNumber(0, 0, 10))
	assert.True(t, ValidNumber(10, 0, 10))
	assert.True(t, ValidNumber(float64(7), 0, 10))
	assert.True(t, ValidNumber(int64(3), 0, 10))
	assert.True(t, ValidNumber("8", 0, 10))
	assert.True(t, ValidNumber(" 8 ", 0, 10))
	assert.True(t, ValidNumber(true, 0, 10))

	assert.False(t, ValidNumber(-1, 0, 10))
	assert.False(t, ValidNumber(11, 0, 10))
	assert.False(t, ValidNumber(float64(10.5), 0, 10))
	assert.False(t, ValidNumber("abc", 0, 10))
	assert.False(t, ValidNumber("", 0, 10))
	assert.False(t, ValidNumber(nil, 0, 10))
	assert.False(t, ValidNumber([]any{1}, 0, 10))
}

func TestIntOr(t *testing.T) {
	assert.Equal(t, 7, intOr(7, 0))
	assert.Equal(t, 7, intOr(float64(7.9), 0))
	assert.Equal(t, 7, intOr("7", 0))
	assert.Equal(t, 1, intOr(true, 0))
	assert.Equal(t, 0, intOr(false, 5))
	assert.Equal(t, 5, intOr("abc", 5))
	assert.Equal(t, 5, intOr(nil, 5))
	assert.Equal(t, 5, intOr([]any{}, 5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-3, 0, 10))
	assert.Equal(t, 10, clamp(50, 0, 10))
	assert.Equal(t, 7, clamp(7, 0, 10))
}

func TestIsZero(t *testing.T) {
	zero := []any{nil, false, 0, int64(0), float64(0), "", []any{}, map[string]any{}}
	for _, v := range zero {
		assert.True(t, isZero(v), "expected %#v to be zero", v)
	}

	nonZero := []any{true, 1, -1, float64(0.5), "x", []any{1}, map[string]any{"a": 1}}
	for _, v := range nonZero {
		assert.False(t, isZero(v), "expected %#v to be non-zero", v)
	}
}
