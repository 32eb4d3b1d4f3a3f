package authz

import (
	"errors"

	"expense-tracker/internal/models"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
)

var (
	ErrForbidden       = errors.New("operation not permitted")
	ErrNotOwner        = errors.New("record belongs to another user")
	ErrUnauthenticated = errors.New("no authenticated principal")
)

// Principal is the authenticated caller. It is passed explicitly to every
// service operation.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) authenticated() bool {
	return p.UserID != uuid.Nil
}

// RequireAuthenticated rejects the zero principal.
func RequireAuthenticated(p Principal) error {
	if !p.authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// CanViewOwn allows reading a transaction only by its owner.
func CanViewOwn(p Principal, t *models.Transaction) error {
	if !p.authenticated() {
		return ErrUnauthenticated
	}
	if t == nil || t.UserID != p.UserID {
		return ErrNotOwner
	}
	return nil
}

// CanInsertOwnMatchingType allows an insert when the record is owned by the
// caller and its type agrees with the category. A type disagreement is
// reported as a *validation.ValidationError.
func CanInsertOwnMatchingType(p Principal, ownerID uuid.UUID, transactionType string, category *models.Category) error {
	if !p.authenticated() {
		return ErrUnauthenticated
	}
	if ownerID != p.UserID {
		return ErrNotOwner
	}
	if category == nil || !validation.TypesMatch(transactionType, category.Type) {
		categoryType := ""
		if category != nil {
			categoryType = category.Type
		}
		return validation.NewTypeMismatchError(categoryType, transactionType)
	}
	return nil
}

// CanDeleteIfAdmin allows deletes by administrators only, regardless of owner.
func CanDeleteIfAdmin(p Principal) error {
	if !p.authenticated() {
		return ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
