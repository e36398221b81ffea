package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
		wantErr  bool
	}{
		{"ok customer", "Anna", "anna@example.com", "secret-password", "customer", false},
		{"ok manager", "Boss", "boss@example.com", "secret-password", "manager", false},
		{"ok empty role", "Anna", "anna@example.com", "secret-password", "", false},
		{"empty name", "", "anna@example.com", "secret-password", "", true},
		{"empty email", "Anna", "", "secret-password", "", true},
		{"bad email", "Anna", "not-an-email", "secret-password", "", true},
		{"short password", "Anna", "anna@example.com", "1234567", "", true},
		{"unknown role", "Anna", "anna@example.com", "secret-password", "superadmin", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(ctx, tc.userName, tc.email, tc.password, tc.role)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "anna@example.com", "secret-password"))
	assert.Error(t, v.ValidateLogin(ctx, "", "secret-password"))
	assert.Error(t, v.ValidateLogin(ctx, "anna@example.com", ""))
	assert.Error(t, v.ValidateLogin(ctx, "not-an-email", "secret-password"))
}
