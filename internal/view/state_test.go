package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListState(t *testing.T) {
	tests := []struct {
		name    string
		authed  bool
		loading bool
		n       int
		want    RenderState
	}{
		{"anonymous wins over loading", false, true, 3, Unauthenticated},
		{"loading", true, true, 0, Loading},
		{"empty", true, false, 0, Empty},
		{"populated", true, false, 2, Populated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListState(tt.authed, tt.loading, tt.n))
		})
	}
}

func TestDetailState(t *testing.T) {
	assert.Equal(t, Empty, DetailState(true, false, false))
	assert.Equal(t, Populated, DetailState(true, false, true))
	assert.Equal(t, Unauthenticated, DetailState(false, false, true))
}

func TestDegrade(t *testing.T) {
	assert.Equal(t, Populated, Degrade(Populated, nil, nil))
	assert.Equal(t, Degraded, Degrade(Populated, nil, errors.New("regressed")))
	assert.Equal(t, Empty, Degrade(Empty, errors.New("regressed")))
	assert.Equal(t, "degraded", Degraded.String())
}
