package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "spaces and dashes", raw: "+998 90 123-45-67", want: "+998901234567", ok: true},
		{name: "parentheses", raw: "(90) 123 45 67", want: "+901234567", ok: true},
		{name: "symbol noise around digits", raw: "9,8-81!", want: "+9881", ok: true},
		{name: "already normalized", raw: "+998901234567", want: "+998901234567", ok: true},
		{name: "no digits at all", raw: ",-!()", ok: false},
		{name: "letters only", raw: "позвоните мне", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
