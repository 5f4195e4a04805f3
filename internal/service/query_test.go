package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{"+7", 7, true},
		{"-12", -12, true},
		{"\t 30", 30, true},
		{"30abc", 30, true},
		{"3.9", 3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"+x1", 0, false},
		{"99999999999999999999", math.MaxInt, true},
		{"-99999999999999999999", math.MinInt, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parseLeadingInt(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
