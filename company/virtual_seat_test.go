package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVirtualSeat(t *testing.T) {
	tests := []struct {
		address string
		want    bool
	}{
		{"Regus Tower", true},
		{"regus tower", true},
		{"REGUS TOWER", true},
		{"Mlynské nivy 5, Business Center", true},
		{"Coworking Hub, Košice", true},
		{"virtual office s.r.o.", true},
		{"Hlavná 1, Nitra", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsVirtualSeat(tt.address), tt.address)
	}
}
