package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageRequest
		wantOK    bool
		wantLimit int
	}{
		{"vacío usa el default", PageRequest{}, true, DefaultPageLimit},
		{"en el tope", PageRequest{Limit: MaxPageLimit, Offset: 10}, true, MaxPageLimit},
		{"excede el tope", PageRequest{Limit: MaxPageLimit + 1}, false, MaxPageLimit + 1},
		{"offset negativo", PageRequest{Limit: 5, Offset: -1}, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			assert.Equal(t, tt.wantOK, p.Normalize())
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}
