package config

import (
	"errors"
	"testing"
)

func TestValidateFPS(t *testing.T) {
	tests := []struct {
		fps     int
		wantErr bool
	}{
		{10, false},
		{15, false},
		{0, true},
		{12, true},
		{24, true},
		{30, true},
		{-10, true},
	}

	for _, tt := range tests {
		err := ValidateFPS(tt.fps)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFPS) {
				t.Errorf("ValidateFPS(%d) = %v, want ErrUnsupportedFPS", tt.fps, err)
			}
		} else if err != nil {
			t.Errorf("ValidateFPS(%d) = %v, want nil", tt.fps, err)
		}
	}
}
