package dto

import "github.com/polkiloo/checkin/internal/domain/model"

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
}

// ReportResponse carries the latest batch report and its rendered summary.
type ReportResponse struct {
	Report *model.BatchReport `json:"report"`
	Text   string             `json:"text"`
}

// RunResponse acknowledges a manually triggered run.
type RunResponse struct {
	Status string `json:"status"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}
