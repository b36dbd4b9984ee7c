package rbac

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Role
		shouldErr bool
	}{
		{"user", "user", RoleUser, false},
		{"admin", "admin", RoleAdmin, false},
		{"root", "root", RoleRoot, false},
		{"unknown role", "superuser", 0, true},
		{"empty", "", 0, true},
		{"case sensitive", "Admin", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRole(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("ParseRole(%q) expected error, got nil", tt.input)
				}
				if !errors.Is(err, ErrInvalidRole) {
					t.Errorf("ParseRole(%q) error should wrap ErrInvalidRole, got: %v", tt.input, err)
				}
			} else {
				if err != nil {
					t.Errorf("ParseRole(%q) unexpected error: %v", tt.input, err)
				}
				if result != tt.expected {
					t.Errorf("ParseRole(%q) = %v, expected %v", tt.input, result, tt.expected)
				}
			}
		})
	}
}

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		min      Role
		expected bool
	}{
		{"root >= root", RoleRoot, RoleRoot, true},
		{"root >= admin", RoleRoot, RoleAdmin, true},
		{"root >= user", RoleRoot, RoleUser, true},
		{"admin >= admin", RoleAdmin, RoleAdmin, true},
		{"admin >= user", RoleAdmin, RoleUser, true},
		{"admin < root", RoleAdmin, RoleRoot, false},
		{"user >= user", RoleUser, RoleUser, true},
		{"user < admin", RoleUser, RoleAdmin, false},
		{"user < root", RoleUser, RoleRoot, false},
		{"invalid role", Role(0), RoleUser, false},
		{"invalid minimum", RoleRoot, Role(42), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Satisfies(tt.min); got != tt.expected {
				t.Errorf("%v.Satisfies(%v) = %v, expected %v", tt.role, tt.min, got, tt.expected)
			}
		})
	}
}

func TestRoleJSONRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAdmin, RoleRoot} {
		data, err := json.Marshal(role)
		if err != nil {
			t.Fatalf("marshal %v: %v", role, err)
		}

		var decoded Role
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if decoded != role {
			t.Errorf("round trip of %v produced %v", role, decoded)
		}
	}

	var decoded Role
	if err := json.Unmarshal([]byte(`"owner"`), &decoded); err == nil {
		t.Error("unmarshal of unknown role should fail")
	}

	if _, err := json.Marshal(Role(99)); err == nil {
		t.Error("marshal of invalid role should fail")
	}
}

func TestRoleScan(t *testing.T) {
	var r Role
	if err := r.Scan("admin"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if r != RoleAdmin {
		t.Errorf("scanned role = %v, expected admin", r)
	}

	if err := r.Scan([]byte("root")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if r != RoleRoot {
		t.Errorf("scanned role = %v, expected root", r)
	}

	if err := r.Scan(7); err == nil {
		t.Error("scan of unsupported type should fail")
	}
}
