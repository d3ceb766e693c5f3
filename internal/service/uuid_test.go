package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestValidateSubjectID(t *testing.T) {
	v7, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid.NewV7() failed: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"random v4", uuid.NewString(), false},
		{"v7", v7.String(), false},
		{"compact form", "9a4c1f0e3b7d4e558a206f1d2c3b4a59", false},
		{"empty", "", true},
		{"not a uuid", "baby-1", true},
		{"nil uuid", uuid.Nil.String(), true},
		{"truncated", "9a4c1f0e-3b7d-4e55-8a20", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubjectID(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSubjectID) {
					t.Errorf("ValidateSubjectID(%q) = %v, want ErrInvalidSubjectID", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateSubjectID(%q) = %v, want nil", tt.id, err)
			}
		})
	}
}
