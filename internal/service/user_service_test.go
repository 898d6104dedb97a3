package service

import (
	"errors"
	"testing"

	"trivia_backend/internal/util"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"maria perez", "Maria Perez"},
		{"MARIA PEREZ", "Maria Perez"},
		{"  maria   PEREZ  ", "Maria Perez"},
		{"jean-luc", "Jean-luc"},
	}
	for _, tt := range tests {
		got, err := normalizeName(tt.in)
		if err != nil {
			t.Errorf("normalizeName(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := normalizeName("   "); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestNormalizeNationalID(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"1234", true},
		{"12345678901234567890", true},
		{" 12345678 ", true},
		{"123", false},
		{"123456789012345678901", false},
		{"12a4", false},
		{"", false},
	}
	for _, tt := range tests {
		_, err := normalizeNationalID(tt.in)
		if tt.ok && err != nil {
			t.Errorf("normalizeNationalID(%q): unexpected error %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("normalizeNationalID(%q): expected error", tt.in)
		}
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.CreateUser(&UserCreateRequest{Name: "maria perez", NationalID: "12345678"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Name != "Maria Perez" {
		t.Errorf("name = %q, want title-cased", user.Name)
	}

	_, err = env.users.CreateUser(&UserCreateRequest{Name: "Other Name", NationalID: "12345678"})
	if !errors.Is(err, util.ErrNationalIDTaken) {
		t.Errorf("err = %v, want ErrNationalIDTaken", err)
	}
}

func TestDeleteUserCascadesAttempts(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)

	if _, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := env.users.DeleteUser("12345678"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.users.DeleteUser("12345678"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("second delete err = %v, want ErrUserNotFound", err)
	}

	attempts, err := env.participation.ListAttempts()
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("attempts after user delete = %d, want 0", len(attempts))
	}
}
