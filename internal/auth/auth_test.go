package auth_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/Gaurav-Gosain/journalos/internal/auth"
)

func TestLoginLogout(t *testing.T) {
	s := auth.NewSession()
	var changes []bool
	s.OnChange(func(authenticated bool) { changes = append(changes, authenticated) })

	if s.IsAuthenticated() {
		t.Fatal("new session should be logged out")
	}

	u, err := s.Login("  ada  ")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if u.Username != "ada" || u.ID == "" {
		t.Errorf("Login() = %+v", u)
	}
	if got, ok := s.User(); !ok || got != u {
		t.Errorf("User() = %+v, %v", got, ok)
	}

	s.Logout()
	s.Logout()
	if s.IsAuthenticated() {
		t.Error("Logout() should clear the user")
	}
	if !slices.Equal(changes, []bool{true, false}) {
		t.Errorf("changes = %v, want [true false]", changes)
	}
}

func TestLoginRejectsBlankName(t *testing.T) {
	s := auth.NewSession()
	if _, err := s.Login("   "); !errors.Is(err, auth.ErrEmptyUsername) {
		t.Errorf("Login(blank) error = %v, want ErrEmptyUsername", err)
	}
	if s.IsAuthenticated() {
		t.Error("blank login should not authenticate")
	}
}
