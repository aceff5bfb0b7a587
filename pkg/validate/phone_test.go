package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "valid 10 digits", phone: "9876543210"},
		{name: "too short", phone: "987654321", wantErr: true},
		{name: "too long", phone: "98765432100", wantErr: true},
		{name: "letters", phone: "98765abc10", wantErr: true},
		{name: "with country code", phone: "+919876543210", wantErr: true},
		{name: "with spaces", phone: "98765 43210", wantErr: true},
		{name: "empty", phone: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Phone(tt.phone)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
