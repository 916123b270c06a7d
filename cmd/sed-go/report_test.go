package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		line     string
		offset   int
		expected int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 10, 3},
		{"\tx", 1, 8},
		{"ab\tx", 3, 8},
		{"éx", 2, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, visualColumn(tt.line, tt.offset), "%q at %d", tt.line, tt.offset)
	}
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "ab      x", expandTabs("ab\tx"))
	assert.Equal(t, "plain", expandTabs("plain"))
}

func TestFormatAtOffset(t *testing.T) {
	color.NoColor = true

	got := formatAtOffset("extra characters after command", "\tpq", 2, "")
	assert.Equal(t, "error: extra characters after command\n"+
		"  |\n"+
		"  | "+strings.Repeat(" ", 8)+"pq\n"+
		"  | "+strings.Repeat(" ", 9)+"^\n\n", got)
}

func TestFormatOtherError(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "error: boom\n", formatLoadError(errors.New("boom")))
}
