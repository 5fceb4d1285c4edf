package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", PadRight("abc", 5))
	assert.Equal(t, "abc", PadRight("abc", 3))
	assert.Equal(t, 4, GetDisplayWidth(PadRight("abcdef", 4)))
	assert.Equal(t, "", PadRight("abc", 0))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", CenterText("ab", 6))
	assert.Equal(t, " ab  ", CenterText("ab", 5))
	assert.Equal(t, "abc", CenterText("abcdef", 3))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, 3, GetDisplayWidth(Separator(3)))
	assert.Equal(t, "", Separator(-1))
}
