package service

import (
	"strings"
	"testing"

	"github.com/DukeRupert/motorcheck/internal/domain"
)

// =============================================================================
// Password Validation Tests
// =============================================================================

func TestValidatePassword_MinimumLength(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"too short - 7 chars", "Abcdef1", false},
		{"minimum - 8 chars", "Abcdef12", true},
		{"longer - 12 chars", "Abcdefgh1234", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.valid && err != nil {
				t.Errorf("expected valid, got error: %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected error for short password")
			}
		})
	}
}

func TestValidatePassword_MaximumLength(t *testing.T) {
	// 72 is the bcrypt limit
	longPassword := strings.Repeat("Aa1", 24) // 72 chars
	tooLong := strings.Repeat("Aa1", 25)      // 75 chars

	if err := validatePassword(longPassword); err != nil {
		t.Errorf("72 char password should be valid: %v", err)
	}

	if err := validatePassword(tooLong); err == nil {
		t.Error("73+ char password should be invalid")
	}
}

func TestValidatePassword_ErrorMessages(t *testing.T) {
	testCases := []struct {
		name          string
		password      string
		errorContains string
	}{
		{"too short", "Ab1", "at least 8"},
		{"too long", strings.Repeat("x", 80), "72 characters or less"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if err == nil {
				t.Fatal("expected error")
			}

			msg := domain.ErrorMessage(err)
			if !strings.Contains(strings.ToLower(msg), strings.ToLower(tc.errorContains)) {
				t.Errorf("error message %q should contain %q", msg, tc.errorContains)
			}
		})
	}
}

func TestValidatePassword_ReturnsInvalidCode(t *testing.T) {
	err := validatePassword("short")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := domain.ErrorCode(err); code != domain.EINVALID {
		t.Errorf("expected code %q, got %q", domain.EINVALID, code)
	}
}
