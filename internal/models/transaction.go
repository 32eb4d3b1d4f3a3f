package models

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// MaxNoteLength is measured in characters, not bytes.
	MaxNoteLength = 500

	// MaxAmount caps a single transaction at 10^15 minor units so that
	// report sums over any realistic number of rows stay inside int64.
	MaxAmount int64 = 1_000_000_000_000_000
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be a positive integer no greater than 10^15")
	ErrNoteTooLong            = errors.New("transaction note exceeds 500 characters")
	ErrTransactionImmutable   = errors.New("transactions cannot be modified once created")
)

// Transaction is an income or expense entry owned by a single user.
// Amount is always in the smallest currency unit.
type Transaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string    `gorm:"type:varchar(20);not null" json:"type"`
	Amount     int64     `gorm:"not null" json:"amount"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Note       *string   `gorm:"type:varchar(500)" json:"note"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	return t.Validate()
}

// BeforeUpdate rejects every update; transactions are append-only.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return ErrTransactionImmutable
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount <= 0 || t.Amount > MaxAmount {
		return ErrInvalidAmount
	}

	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if t.Note != nil && utf8.RuneCountInString(*t.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}

	if t.OccurredAt.IsZero() {
		return errors.New("occurred_at is required")
	}

	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

