package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuditActionCreate = "create"
	AuditActionDelete = "delete"
)

// AuditLog records a write against a user-owned table.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(20);not null;index" json:"action"`
	Table     string    `gorm:"column:table_name;type:varchar(100);not null" json:"table_name"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null;index" json:"record_id"`
	OldData   JSONBMap  `gorm:"type:text" json:"old_data,omitempty"`
	NewData   JSONBMap  `gorm:"type:text" json:"new_data,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (al *AuditLog) String() string {
	return fmt.Sprintf("AuditLog[User: %s, Action: %s, Record: %s/%s, Time: %s]",
		al.UserID, al.Action, al.Table, al.RecordID, al.CreatedAt.Format(time.RFC3339))
}

func (al *AuditLog) TableName() string {
	return "audit_logs"
}

func (al *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}

	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now().UTC()
	}
	return nil
}

// TransactionSnapshot captures the audited columns of a transaction.
func TransactionSnapshot(t *Transaction) JSONBMap {
	m := JSONBMap{
		"id":          t.ID.String(),
		"user_id":     t.UserID.String(),
		"type":        t.Type,
		"amount":      t.Amount,
		"category_id": t.CategoryID.String(),
		"occurred_at": t.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if t.Note != nil {
		m["note"] = *t.Note
	}
	return m
}

// JSONBMap represents a JSONB map field for PostgreSQL
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBMap", value)
	}

	if len(bytes) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(bytes, m)
}
