package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// ListAuditLogsRequest represents query parameters for listing audit entries
type ListAuditLogsRequest struct {
	Offset int `query:"offset" validate:"min=0"`
	Limit  int `query:"limit" validate:"min=1,max=100"`
}

// AuditLogResponse represents one audit entry
type AuditLogResponse struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	TableName string          `json:"table_name"`
	RecordID  uuid.UUID       `json:"record_id"`
	OldData   models.JSONBMap `json:"old_data,omitempty"`
	NewData   models.JSONBMap `json:"new_data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditLogListResponse represents a page of audit entries
type AuditLogListResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	Total     int64              `json:"total"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// NewAuditLogListResponse maps stored audit entries to their API shape
func NewAuditLogListResponse(logs []*models.AuditLog, total int64, offset, limit int) AuditLogListResponse {
	items := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, AuditLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			TableName: l.Table,
			RecordID:  l.RecordID,
			OldData:   l.OldData,
			NewData:   l.NewData,
			CreatedAt: l.CreatedAt,
		})
	}
	return AuditLogListResponse{AuditLogs: items, Total: total, Offset: offset, Limit: limit}
}
