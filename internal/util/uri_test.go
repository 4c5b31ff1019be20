package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p><strong>Variant Scene</strong></p>", "%3Cp%3E%3Cstrong%3EVariant%20Scene%3C%2Fstrong%3E%3C%2Fp%3E"},
		{"a+b", "a%2Bb"},
		{"it's (fine)!*~", "it's%20(fine)!*~"},
		{"çay", "%C3%A7ay"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeURIComponent(tt.in), tt.in)
	}
}
