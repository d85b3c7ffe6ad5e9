package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned when a role or status filter value is not recognised.
var ErrInvalidFilter = errors.New("invalid filter value")

// RoleFilter narrows listed leave requests by the requester role.
type RoleFilter string

const (
	RoleAll     RoleFilter = "all"
	RoleTeacher RoleFilter = "teacher"
	RoleStudent RoleFilter = "student"
)

// StatusFilter narrows listed leave requests by lifecycle state.
type StatusFilter string

const (
	StatusPending   StatusFilter = "pending"
	StatusApproved  StatusFilter = "approved"
	StatusRejected  StatusFilter = "rejected"
	StatusCancelled StatusFilter = "cancelled"
	StatusAll       StatusFilter = "all"
)

// Roles lists every role filter in declaration order.
var Roles = []RoleFilter{RoleAll, RoleTeacher, RoleStudent}

// Statuses lists every status filter in declaration order.
var Statuses = []StatusFilter{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusAll}

// Valid reports whether r is a known role filter.
func (r RoleFilter) Valid() bool {
	switch r {
	case RoleAll, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Valid reports whether s is a known status filter.
func (s StatusFilter) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusAll:
		return true
	}
	return false
}

// ParseRoleFilter normalises raw input. An empty value means RoleAll.
func ParseRoleFilter(raw string) (RoleFilter, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return RoleAll, nil
	}
	role := RoleFilter(value)
	if !role.Valid() {
		return "", fmt.Errorf("role %q: %w", raw, ErrInvalidFilter)
	}
	return role, nil
}

// ParseStatusFilter normalises raw input. An empty value means StatusAll.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return StatusAll, nil
	}
	status := StatusFilter(value)
	if !status.Valid() {
		return "", fmt.Errorf("status %q: %w", raw, ErrInvalidFilter)
	}
	return status, nil
}
