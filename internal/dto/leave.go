package dto

import "github.com/noah-isme/sma-leave-gateway/internal/models"

// ListLeaveQuery carries the admin list filters from the query string.
// Values are lower-cased before validation.
type ListLeaveQuery struct {
	Role   string `form:"role" validate:"omitempty,oneof=all teacher student"`
	Status string `form:"status" validate:"omitempty,oneof=pending approved rejected cancelled all"`
}

// DescriptorResponse describes the request the gateway would send upstream.
// The bearer value is redacted.
type DescriptorResponse struct {
	Method        string            `json:"method"`
	URL           string            `json:"url"`
	Headers       map[string]string `json:"headers"`
	Authenticated bool              `json:"authenticated"`
	Route         string            `json:"route"`
}

// LeaveListResponse wraps the upstream list.
type LeaveListResponse struct {
	Items  []models.LeaveRequest `json:"items"`
	Count  int                   `json:"count"`
	Source string                `json:"source"`
}

// RedirectResponse is the dashboard chosen for a session.
type RedirectResponse struct {
	Path string `json:"path"`
	Role string `json:"role,omitempty"`
}
