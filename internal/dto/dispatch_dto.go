// FILE: internal/dto/dispatch_dto.go
package dto

import "time"

const (
	DispatchStatusPending   = "pending"
	DispatchStatusCompleted = "completed"
)

type DispatchSendRequest struct {
	Mode string `json:"mode" validate:"required,oneof=both morning night verses"`
	Date string `json:"date"`
}

type DispatchSendResponse struct {
	JobID   string   `json:"job_id"`
	Mode    string   `json:"mode"`
	Date    string   `json:"date"`
	Targets []string `json:"targets"`
}

type DispatchMessage struct {
	Target string `json:"target"`
	Text   string `json:"text"`
	Chars  int    `json:"chars"`
}

type DispatchJobResult struct {
	JobID       string            `json:"job_id"`
	Status      string            `json:"status"`
	Mode        string            `json:"mode"`
	Date        string            `json:"date"`
	Messages    []DispatchMessage `json:"messages"`
	RequestedAt time.Time         `json:"requested_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}
