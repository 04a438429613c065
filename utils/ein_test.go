package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEIN(t *testing.T) {
	tests := []struct {
		name    string
		ein     string
		wantErr bool
	}{
		{name: "valid with dash", ein: "12-3456789"},
		{name: "valid without dash", ein: "123456789"},
		{name: "internet prefix", ein: "85-1234567"},
		{name: "unassigned prefix", ein: "00-1234567", wantErr: true},
		{name: "unassigned prefix 07", ein: "07-1234567", wantErr: true},
		{name: "too few digits", ein: "12-345678", wantErr: true},
		{name: "too many digits", ein: "12-34567890", wantErr: true},
		{name: "letters", ein: "AB-1234567", wantErr: true},
		{name: "empty", ein: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEIN(tt.ein)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
