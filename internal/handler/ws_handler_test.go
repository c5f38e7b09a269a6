package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed string
		origin  string
		want    bool
	}{
		{
			name:    "no configured origin accepts anything",
			allowed: "",
			origin:  "https://evil.example",
			want:    true,
		},
		{
			name:    "matching origin passes",
			allowed: "https://app.maaziride.example",
			origin:  "https://app.maaziride.example",
			want:    true,
		},
		{
			name:    "mismatched origin is refused",
			allowed: "https://app.maaziride.example",
			origin:  "https://evil.example",
			want:    false,
		},
		{
			name:    "missing origin header is refused when configured",
			allowed: "https://app.maaziride.example",
			origin:  "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, originAllowed(tt.allowed, tt.origin))
		})
	}
}
