package rbac

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is an ordered privilege level. Comparison is by integer rank, so a
// higher role always satisfies a requirement stated in terms of a lower one.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
	RoleRoot
)

const (
	roleNameUser  = "user"
	roleNameAdmin = "admin"
	roleNameRoot  = "root"
)

var roleNames = map[Role]string{
	RoleUser:  roleNameUser,
	RoleAdmin: roleNameAdmin,
	RoleRoot:  roleNameRoot,
}

// ParseRole converts a wire or storage value into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleNameUser:
		return RoleUser, nil
	case roleNameAdmin:
		return RoleAdmin, nil
	case roleNameRoot:
		return RoleRoot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Satisfies reports whether r meets the given minimum role requirement.
// An invalid role never satisfies anything.
func (r Role) Satisfies(min Role) bool {
	return r.Valid() && min.Valid() && r >= min
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements driver.Valuer so roles are stored as their names.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
	return r.String(), nil
}

// Scan implements sql.Scanner for reading roles back out of the database.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidRole, src)
	}
}
