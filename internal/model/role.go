package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RoleName is the kind of a role. Stored as its numeric code.
type RoleName int

const (
	RoleUser RoleName = iota
	RoleAdmin
	RoleSupport
	RoleSuperAdmin
)

var roleNames = map[RoleName]string{
	RoleUser:       "User",
	RoleAdmin:      "Admin",
	RoleSupport:    "Support",
	RoleSuperAdmin: "SuperAdmin",
}

func (r RoleName) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RoleName(%d)", int(r))
}

// Valid reports whether r is one of the defined role kinds.
func (r RoleName) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRoleName accepts a role kind by name (case-insensitive) or by its
// numeric code ("0".."3").
func ParseRoleName(s string) (RoleName, error) {
	for kind, name := range roleNames {
		if strings.EqualFold(name, s) {
			return kind, nil
		}
	}
	if code, err := strconv.Atoi(s); err == nil {
		r := RoleName(code)
		if r.Valid() {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role name: %q", s)
}

// MatchRoleNames returns the role kinds whose names contain substr.
// "Admin" matches both Admin and SuperAdmin.
func MatchRoleNames(substr string) []RoleName {
	var kinds []RoleName
	for kind := RoleUser; kind <= RoleSuperAdmin; kind++ {
		if strings.Contains(kind.String(), substr) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Role represents a role owned by a user.
type Role struct {
	ID     uint     `json:"id" gorm:"primaryKey"`
	Name   RoleName `json:"name" gorm:"not null"`
	UserID uint     `json:"user_id" gorm:"not null;index"`
}
