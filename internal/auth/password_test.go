package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/biblioteca/internal/entities"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		minLength int
		wantErr   error
	}{
		{
			name:      "valid password",
			password:  "segredo",
			minLength: 6,
			wantErr:   nil,
		},
		{
			name:      "password too short",
			password:  "abc",
			minLength: 6,
			wantErr:   ErrPasswordTooShort,
		},
		{
			name:      "password at minimum length",
			password:  "123456",
			minLength: 6,
			wantErr:   nil,
		},
		{
			name:      "zero minimum uses default",
			password:  "12345",
			minLength: 0,
			wantErr:   ErrPasswordTooShort,
		},
		{
			name:      "password too long",
			password:  strings.Repeat("a", 73),
			minLength: 6,
			wantErr:   ErrPasswordTooLong,
		},
		{
			name:      "password at maximum length",
			password:  strings.Repeat("a", 72),
			minLength: 6,
			wantErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.minLength)
			if err != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordErrorsAreValidationErrors(t *testing.T) {
	if !errors.Is(ErrPasswordTooShort, entities.ErrValidation) {
		t.Error("ErrPasswordTooShort should match entities.ErrValidation")
	}
	if !errors.Is(ErrPasswordTooLong, entities.ErrValidation) {
		t.Error("ErrPasswordTooLong should match entities.ErrValidation")
	}
	if errors.Is(ErrInvalidPassword, entities.ErrValidation) {
		t.Error("ErrInvalidPassword is a credential failure, not a validation error")
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("segredo123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == "segredo123" {
		t.Errorf("HashPassword() returned %q", hash)
	}

	other, err := HashPassword("segredo123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == other {
		t.Error("hashes of the same password should be salted differently")
	}

	if _, err := HashPassword(strings.Repeat("a", 73), bcrypt.MinCost); err != ErrPasswordTooLong {
		t.Errorf("HashPassword() error = %v, want ErrPasswordTooLong", err)
	}
}

func TestCheckPassword(t *testing.T) {
	password := "testpassword123"
	hash, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "correct password",
			password: password,
			wantErr:  nil,
		},
		{
			name:     "incorrect password",
			password: "wrongpassword",
			wantErr:  ErrInvalidPassword,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.password, hash)
			if err != tt.wantErr {
				t.Errorf("CheckPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("whatever", "not-a-bcrypt-hash")
	if err == nil || err == ErrInvalidPassword {
		t.Errorf("CheckPassword() error = %v, want a hash format error", err)
	}
}
