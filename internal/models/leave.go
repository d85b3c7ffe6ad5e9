package models

import "time"

// LeaveRequest is a leave request as listed by the leave backend.
type LeaveRequest struct {
	ID            string     `json:"id"`
	RequesterID   string     `json:"requester_id"`
	RequesterName string     `json:"requester_name"`
	RequesterRole string     `json:"requester_role"`
	Type          string     `json:"type"`
	Reason        string     `json:"reason"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Status        string     `json:"status"`
	ReviewedBy    *string    `json:"reviewed_by,omitempty"`
	ReviewNote    string     `json:"review_note,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
