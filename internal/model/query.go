package model

import (
	"strconv"
	"strings"
)

// SortField selects the user attribute a listing is ordered by.
// Encoded as: 0-name, 1-age, 2-email, 3-name of role.
type SortField int

const (
	SortByName SortField = iota
	SortByAge
	SortByEmail
	SortByRoleName
)

var sortFieldNames = map[SortField]string{
	SortByName:     "Name",
	SortByAge:      "Age",
	SortByEmail:    "Email",
	SortByRoleName: "RoleName",
}

// Valid reports whether f is one of the defined sort fields.
func (f SortField) Valid() bool {
	return f >= SortByName && f <= SortByRoleName
}

// UnmarshalParam implements echo's BindUnmarshaler so the field binds by
// name (case-insensitive) or by its numeric code. Unrecognized values
// bind to an invalid field and are rejected when the query runs, never
// silently defaulted.
func (f *SortField) UnmarshalParam(src string) error {
	if src == "" {
		*f = SortByName
		return nil
	}
	for field, name := range sortFieldNames {
		if strings.EqualFold(name, src) {
			*f = field
			return nil
		}
	}
	if code, err := strconv.Atoi(src); err == nil {
		*f = SortField(code)
		return nil
	}
	*f = SortField(-1)
	return nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// UserQuery carries pagination, filter and sort options for user listings.
// All fields are optional on the wire.
type UserQuery struct {
	PageNumber     int       `query:"pageNumber"`
	PageSize       int       `query:"pageSize"`
	SortField      SortField `query:"sortField"`
	IsAsc          *bool     `query:"isAsc"`
	NameFilter     string    `query:"nameFilter"`
	EmailFilter    string    `query:"emailFilter"`
	RoleNameFilter string    `query:"roleNameFilter"`
	MinAgeFilter   *int      `query:"minAgeFilter"`
	MaxAgeFilter   *int      `query:"maxAgeFilter"`
}

// Normalize applies defaults and clamps: page number floors at 1, page
// size defaults to 10 and is capped at 50.
func (q *UserQuery) Normalize() {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// Ascending returns the requested sort direction, defaulting to true.
func (q *UserQuery) Ascending() bool {
	if q.IsAsc == nil {
		return true
	}
	return *q.IsAsc
}
