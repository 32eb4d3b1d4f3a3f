package services

import (
	"context"
	"errors"
	"testing"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// AuditServiceTestSuite is the test suite for AuditService
type AuditServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockRepo  *repository_mocks.MockAuditLogRepositoryInterface
	service   AuditServiceInterface
	ctx       context.Context
	principal authz.Principal
	tx        *models.Transaction
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.service = NewAuditService(s.mockRepo)
	s.ctx = context.Background()
	s.principal = authz.Principal{UserID: uuid.New(), Role: models.RoleUser}
	s.tx = &models.Transaction{
		ID:         uuid.New(),
		UserID:     s.principal.UserID,
		Type:       models.TransactionTypeExpense,
		Amount:     4250,
		CategoryID: uuid.New(),
	}
}

func (s *AuditServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) TestValidateActivityType() {
	s.NoError(ValidateActivityType(models.AuditActionCreate))
	s.NoError(ValidateActivityType(models.AuditActionDelete))
	s.Error(ValidateActivityType("update"))
	s.Error(ValidateActivityType(""))
}

func (s *AuditServiceTestSuite) TestRecordTransactionCreated() {
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, log *models.AuditLog) error {
			s.Equal(s.principal.UserID, log.UserID)
			s.Equal(models.AuditActionCreate, log.Action)
			s.Equal("transactions", log.Table)
			s.Equal(s.tx.ID, log.RecordID)
			s.Nil(log.OldData)
			s.Equal(int64(4250), log.NewData["amount"])
			return nil
		})

	s.NoError(s.service.RecordTransactionCreated(s.ctx, s.principal, s.tx))
}

func (s *AuditServiceTestSuite) TestRecordTransactionDeleted() {
	admin := authz.Principal{UserID: uuid.New(), Role: models.RoleAdmin}

	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, log *models.AuditLog) error {
			s.Equal(admin.UserID, log.UserID)
			s.Equal(models.AuditActionDelete, log.Action)
			s.Nil(log.NewData)
			s.Equal(s.tx.UserID.String(), log.OldData["user_id"])
			return nil
		})

	s.NoError(s.service.RecordTransactionDeleted(s.ctx, admin, s.tx))
}

func (s *AuditServiceTestSuite) TestRecord_InvalidInput() {
	s.ErrorIs(s.service.RecordTransactionCreated(s.ctx, s.principal, nil), ErrInvalidAuditLog)
	s.ErrorIs(s.service.RecordTransactionDeleted(s.ctx, authz.Principal{}, s.tx), ErrInvalidUserID)
}

func (s *AuditServiceTestSuite) TestRecord_RepositoryError() {
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(errors.New("database error"))

	err := s.service.RecordTransactionCreated(s.ctx, s.principal, s.tx)
	s.Error(err)
	s.Contains(err.Error(), "failed to create audit log")
}

func (s *AuditServiceTestSuite) TestListOwn() {
	logs := []*models.AuditLog{{ID: uuid.New(), UserID: s.principal.UserID, Action: models.AuditActionCreate}}
	s.mockRepo.EXPECT().GetByUserID(s.ctx, s.principal.UserID, 0, 20).Return(logs, int64(1), nil)

	result, total, err := s.service.ListOwn(s.ctx, s.principal, 0, 20)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(logs, result)
}

func (s *AuditServiceTestSuite) TestListOwn_InvalidArguments() {
	_, _, err := s.service.ListOwn(s.ctx, authz.Principal{}, 0, 20)
	s.ErrorIs(err, ErrInvalidUserID)

	for _, tc := range [][2]int{{-1, 20}, {0, 0}, {0, MaxPageSize + 1}} {
		_, _, err := s.service.ListOwn(s.ctx, s.principal, tc[0], tc[1])
		s.ErrorIs(err, ErrInvalidPagination)
	}
}
