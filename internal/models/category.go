package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is reference data; a transaction's type must equal its category's type.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}

	if !IsValidTransactionType(c.Type) {
		return ErrInvalidTransactionType
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

// DefaultCategories is the seed set used when the categories table is empty.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Salary", Type: TransactionTypeIncome},
		{Name: "Freelance", Type: TransactionTypeIncome},
		{Name: "Investment", Type: TransactionTypeIncome},
		{Name: "Other Income", Type: TransactionTypeIncome},
		{Name: "Food", Type: TransactionTypeExpense},
		{Name: "Transport", Type: TransactionTypeExpense},
		{Name: "Housing", Type: TransactionTypeExpense},
		{Name: "Utilities", Type: TransactionTypeExpense},
		{Name: "Entertainment", Type: TransactionTypeExpense},
		{Name: "Healthcare", Type: TransactionTypeExpense},
		{Name: "Shopping", Type: TransactionTypeExpense},
		{Name: "Other Expense", Type: TransactionTypeExpense},
	}
}
