package authz

import (
	"errors"
	"testing"

	"expense-tracker/internal/models"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewOwn(t *testing.T) {
	owner := uuid.New()
	tx := &models.Transaction{ID: uuid.New(), UserID: owner}

	testCases := []struct {
		name      string
		principal Principal
		tx        *models.Transaction
		wantErr   error
	}{
		{"owner", Principal{UserID: owner, Role: models.RoleUser}, tx, nil},
		{"admin on foreign row", Principal{UserID: uuid.New(), Role: models.RoleAdmin}, tx, ErrNotOwner},
		{"other user", Principal{UserID: uuid.New(), Role: models.RoleUser}, tx, ErrNotOwner},
		{"anonymous", Principal{}, tx, ErrUnauthenticated},
		{"nil record", Principal{UserID: owner}, nil, ErrNotOwner},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanViewOwn(tc.principal, tc.tx)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCanInsertOwnMatchingType(t *testing.T) {
	user := uuid.New()
	p := Principal{UserID: user, Role: models.RoleUser}
	food := &models.Category{ID: uuid.New(), Name: "Food", Type: models.TransactionTypeExpense}

	assert.NoError(t, CanInsertOwnMatchingType(p, user, models.TransactionTypeExpense, food))
	assert.ErrorIs(t, CanInsertOwnMatchingType(p, uuid.New(), models.TransactionTypeExpense, food), ErrNotOwner)
	assert.ErrorIs(t, CanInsertOwnMatchingType(Principal{}, user, models.TransactionTypeExpense, food), ErrUnauthenticated)

	err := CanInsertOwnMatchingType(p, user, models.TransactionTypeIncome, food)
	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(validation.CodeTypeMismatch))
	assert.Contains(t, verr.Fields[0].Message, "'expense' does not match transaction type 'income'")
}

func TestCanDeleteIfAdmin(t *testing.T) {
	assert.NoError(t, CanDeleteIfAdmin(Principal{UserID: uuid.New(), Role: models.RoleAdmin}))
	assert.ErrorIs(t, CanDeleteIfAdmin(Principal{UserID: uuid.New(), Role: models.RoleUser}), ErrForbidden)
	assert.ErrorIs(t, CanDeleteIfAdmin(Principal{UserID: uuid.New()}), ErrForbidden)
	assert.ErrorIs(t, CanDeleteIfAdmin(Principal{Role: models.RoleAdmin}), ErrUnauthenticated)
}

func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, RequireAuthenticated(Principal{UserID: uuid.New()}))
	assert.ErrorIs(t, RequireAuthenticated(Principal{Role: models.RoleAdmin}), ErrUnauthenticated)
}
