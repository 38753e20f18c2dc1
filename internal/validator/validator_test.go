package validator

import (
	"strings"
	"testing"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
)

func TestValidateRaw(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		record  *domain.RawRecord
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid record",
			record: &domain.RawRecord{
				ID:    "1",
				Name:  "Aaron Miles",
				Email: "aaron@mailinator.com",
				Role:  "member",
			},
			wantErr: false,
		},
		{
			name: "missing id",
			record: &domain.RawRecord{
				Name:  "Aaron Miles",
				Email: "aaron@mailinator.com",
				Role:  "member",
			},
			wantErr: true,
			errMsg:  "id_required",
		},
		{
			name: "missing name",
			record: &domain.RawRecord{
				ID:    "1",
				Email: "aaron@mailinator.com",
				Role:  "member",
			},
			wantErr: true,
			errMsg:  "name_required",
		},
		{
			name: "missing email",
			record: &domain.RawRecord{
				ID:   "1",
				Name: "Aaron Miles",
				Role: "member",
			},
			wantErr: true,
			errMsg:  "email_required",
		},
		{
			name: "missing role",
			record: &domain.RawRecord{
				ID:    "1",
				Name:  "Aaron Miles",
				Email: "aaron@mailinator.com",
			},
			wantErr: true,
			errMsg:  "role_required",
		},
		{
			name: "field content is not validated, only presence",
			record: &domain.RawRecord{
				ID:    "not-a-number",
				Name:  "x",
				Email: "not-an-email",
				Role:  "archduke",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRaw(tt.record)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateRaw() expected error containing %q, got nil", tt.errMsg)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateRaw() error = %q, want it to contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRaw() unexpected error: %v", err)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateRaw(&domain.RawRecord{ID: "1", Name: "x"})
	fields := FieldErrors(err)

	if len(fields) != 2 {
		t.Fatalf("FieldErrors() = %v, want two fields", fields)
	}
	found := map[string]bool{}
	for _, f := range fields {
		found[f] = true
	}
	if !found["email"] || !found["role"] {
		t.Errorf("FieldErrors() = %v, want email and role", fields)
	}
}
