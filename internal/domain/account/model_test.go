package account_test

import (
	"testing"
	"time"

	"eventos/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{"valid organizer", account.Account{Email: "ana@example.com", Role: account.RoleOrganizer}, false},
		{"valid admin", account.Account{Email: "root@example.com", Role: account.RoleAdmin}, false},
		{"empty email", account.Account{Email: "", Role: account.RoleOrganizer}, true},
		{"email without at", account.Account{Email: "ana.example.com", Role: account.RoleOrganizer}, true},
		{"invalid role", account.Account{Email: "ana@example.com", Role: "guest"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests SetPassword and CheckPassword.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	a := account.Account{Email: "ana@example.com", Role: account.RoleOrganizer}

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("SetPassword(empty) error = %v, want ErrEmptyPassword", err)
	}

	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "correct horse battery" {
		t.Fatal("password was not hashed")
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout tests the failed-login lockout behavior.
func TestAccount_Lockout(t *testing.T) {
	a := account.Account{Email: "ana@example.com", Role: account.RoleOrganizer}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("account locked before 5 failures")
	}

	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("account not locked after 5 failures")
	}
	if a.LockedUntil.Before(time.Now()) {
		t.Error("LockedUntil should be in the future")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("ResetFailedLogins did not clear lock state")
	}
}
