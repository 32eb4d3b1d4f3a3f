package services

import (
	"context"
	"errors"
	"testing"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories/repository_mocks"
	"expense-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReportServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	auditLogger     *service_mocks.MockAuditLoggerInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	service         ReportServiceInterface
	ctx             context.Context
	principal       authz.Principal
}

func (s *ReportServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.auditLogger = service_mocks.NewMockAuditLoggerInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewReportService(s.transactionRepo, s.auditLogger, s.metrics, nil)
	s.ctx = context.Background()
	s.principal = authz.Principal{UserID: uuid.New(), Role: models.RoleUser}

	s.metrics.EXPECT().IncrementCounter("report.generated", gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime("report.category", gomock.Any()).AnyTimes()
}

func (s *ReportServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func strPtr(v string) *string { return &v }

func row(id, name, typ string, amount int64) models.ReportRow {
	return models.ReportRow{CategoryID: strPtr(id), CategoryName: strPtr(name), CategoryType: strPtr(typ), Amount: amount}
}

func (s *ReportServiceSuite) TestCategoryReport() {
	filters := models.ReportFilters{Type: ""}
	s.transactionRepo.EXPECT().ReportRows(s.ctx, s.principal.UserID, filters).Return([]models.ReportRow{
		row("c1", "Food", "expense", 5000),
		row("c2", "Salary", "income", 200000),
		row("c1", "Food", "expense", 3000),
	}, nil)

	summary, err := s.service.CategoryReport(s.ctx, s.principal, filters)
	s.Require().NoError(err)

	s.Require().Len(summary.ByCategory, 2)
	s.Equal(models.CategoryTotal{CategoryID: "c2", CategoryName: "Salary", CategoryType: "income", TotalAmount: 200000}, summary.ByCategory[0])
	s.Equal(models.CategoryTotal{CategoryID: "c1", CategoryName: "Food", CategoryType: "expense", TotalAmount: 8000}, summary.ByCategory[1])
	s.Equal(models.ReportTotals{Income: 200000, Expense: 8000, Balance: 192000}, summary.Totals)
}

func (s *ReportServiceSuite) TestCategoryReport_Empty() {
	s.transactionRepo.EXPECT().ReportRows(s.ctx, s.principal.UserID, gomock.Any()).Return(nil, nil)

	summary, err := s.service.CategoryReport(s.ctx, s.principal, models.ReportFilters{})
	s.Require().NoError(err)
	s.NotNil(summary.ByCategory)
	s.Empty(summary.ByCategory)
	s.Equal(models.ReportTotals{}, summary.Totals)
}

func (s *ReportServiceSuite) TestCategoryReport_OrphansAreLoggedAndCounted() {
	s.transactionRepo.EXPECT().ReportRows(s.ctx, s.principal.UserID, gomock.Any()).Return([]models.ReportRow{
		row("c1", "Food", "expense", 100),
		{Amount: 77},
		{Amount: 23},
	}, nil)
	s.auditLogger.EXPECT().LogOrphanedTransactions(s.ctx, s.principal.UserID, 2)
	s.metrics.EXPECT().RecordGauge("report.orphaned_rows", float64(2), gomock.Any())

	summary, err := s.service.CategoryReport(s.ctx, s.principal, models.ReportFilters{})
	s.Require().NoError(err)
	s.Len(summary.ByCategory, 1)
	s.Equal(int64(100), summary.Totals.Expense)
}

func (s *ReportServiceSuite) TestCategoryReport_RepositoryError() {
	s.transactionRepo.EXPECT().ReportRows(s.ctx, s.principal.UserID, gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := s.service.CategoryReport(s.ctx, s.principal, models.ReportFilters{})
	s.Error(err)
	s.Contains(err.Error(), "failed to load report rows")
}

func (s *ReportServiceSuite) TestCategoryReport_Unauthenticated() {
	_, err := s.service.CategoryReport(s.ctx, authz.Principal{}, models.ReportFilters{})
	s.ErrorIs(err, authz.ErrUnauthenticated)
}
