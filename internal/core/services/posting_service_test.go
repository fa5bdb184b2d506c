package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/finledger/ledger-backend/internal/core/domain"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/core/services"
	"github.com/finledger/ledger-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) CreateHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) AddLine(ctx context.Context, line domain.JournalLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalRepository) Post(ctx context.Context, tenantID string, journalID string, postedAt time.Time) error {
	args := m.Called(ctx, tenantID, journalID, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) CreateHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) AddLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockJournalRepository) PostInTx(ctx context.Context, tx pgx.Tx, tenantID string, journalID string, postedAt time.Time) error {
	args := m.Called(ctx, tx, tenantID, journalID, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockActivityLogger is a mock type for the ActivityLogger interface
type MockActivityLogger struct {
	mock.Mock
}

func (m *MockActivityLogger) Log(ctx context.Context, tenantID string, description string, subject portssvc.EntityRef, causerID string, properties map[string]any, category string) error {
	args := m.Called(ctx, tenantID, description, subject, causerID, properties, category)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockActivityLog *MockActivityLogger
	service         portssvc.PostingSvcFacade
	tenantID        string
	actorID         string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockActivityLog = new(MockActivityLogger)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockActivityLog)
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

// leafAccount builds an account whose interval has width one.
func (suite *PostingServiceTestSuite) leafAccount(code string, left int64) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        code,
		Name:        "Account " + code,
		AccountType: domain.Asset,
		IsActive:    true,
		Left:        int64Ptr(left),
		Right:       int64Ptr(left + 1),
	}
}

// expectTransaction wires the Begin/Commit/Rollback lifecycle. The deferred
// rollback fires even after a commit, so it is always permitted.
func (suite *PostingServiceTestSuite) expectTransaction(commits bool) {
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	if commits {
		suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostJournal_BalancedSucceeds() {
	ctx := context.Background()
	cash := suite.leafAccount("1000", 1)
	revenue := suite.leafAccount("4000", 3)
	req := dto.PostJournalRequest{
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.expectTransaction(true)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, cash.AccountID).Return(cash, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, revenue.AccountID).Return(revenue, nil).Once()
	suite.mockJournalRepo.On("AddLineInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalLine")).Return(nil).Twice()
	suite.mockJournalRepo.On("PostInTx", mock.Anything, mock.Anything, suite.tenantID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockActivityLog.On("Log", mock.Anything, suite.tenantID, "Journal posted", mock.AnythingOfType("services.EntityRef"), suite.actorID, mock.Anything, "accounting").Return(nil).Once()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.IsPosted)
	suite.Require().NotNil(entry.PostedAt)
	suite.WithinDuration(time.Now(), *entry.PostedAt, time.Second)
	suite.Equal(suite.actorID, entry.CreatedBy)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockActivityLog.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostJournal_UnbalancedRollsBack() {
	ctx := context.Background()
	cash := suite.leafAccount("1000", 1)
	revenue := suite.leafAccount("4000", 3)
	req := dto.PostJournalRequest{
		Description: "Half-entered sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.expectTransaction(false)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, cash.AccountID).Return(cash, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, revenue.AccountID).Return(revenue, nil).Once()
	suite.mockJournalRepo.On("AddLineInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalLine")).Return(nil).Twice()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalancedJournal)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.mockActivityLog.AssertNotCalled(suite.T(), "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournal_NonLeafRejected() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		AccountType: domain.Asset,
		Left:        int64Ptr(1),
		Right:       int64Ptr(4),
	}
	revenue := suite.leafAccount("4000", 5)
	req := dto.PostJournalRequest{
		Description: "Posting against a summary account",
		Lines: []dto.JournalLineRequest{
			{AccountID: parent.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.expectTransaction(false)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, parent.AccountID).Return(parent, nil).Once()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNonLeafPosting)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockActivityLog.AssertNotCalled(suite.T(), "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournal_LeafFallbackWithoutBounds() {
	ctx := context.Background()
	// Accounts imported without interval bounds fall back to a child count.
	legacy := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1500",
		AccountType: domain.Asset,
	}
	revenue := suite.leafAccount("4000", 1)
	req := dto.PostJournalRequest{
		Description: "Posting to a legacy account",
		Lines: []dto.JournalLineRequest{
			{AccountID: legacy.AccountID, Debit: decimal.NewFromInt(25)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(25)},
		},
	}

	suite.expectTransaction(true)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, legacy.AccountID).Return(legacy, nil).Once()
	suite.mockAccountRepo.On("CountChildrenInTx", mock.Anything, mock.Anything, suite.tenantID, legacy.AccountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, revenue.AccountID).Return(revenue, nil).Once()
	suite.mockJournalRepo.On("AddLineInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalLine")).Return(nil).Twice()
	suite.mockJournalRepo.On("PostInTx", mock.Anything, mock.Anything, suite.tenantID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockActivityLog.On("Log", mock.Anything, suite.tenantID, "Journal posted", mock.AnythingOfType("services.EntityRef"), suite.actorID, mock.Anything, "accounting").Return(nil).Once()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(entry.IsPosted)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostJournal_AccountMissing() {
	ctx := context.Background()
	missingID := uuid.NewString()
	revenue := suite.leafAccount("4000", 1)
	req := dto.PostJournalRequest{
		Description: "Unknown account",
		Lines: []dto.JournalLineRequest{
			{AccountID: missingID, Debit: decimal.NewFromInt(10)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.expectTransaction(false)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, missingID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournal_NegativeAmountRejected() {
	ctx := context.Background()
	req := dto.PostJournalRequest{
		Description: "Negative line",
		Lines: []dto.JournalLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(-5)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(-5)},
		},
	}

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournal_NoLinesRejected() {
	ctx := context.Background()
	req := dto.PostJournalRequest{Description: "Empty journal"}

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournal_AuditFailureDoesNotUnwindPost() {
	ctx := context.Background()
	cash := suite.leafAccount("1000", 1)
	revenue := suite.leafAccount("4000", 3)
	req := dto.PostJournalRequest{
		Description: "Audit sink down",
		Lines: []dto.JournalLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(75)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(75)},
		},
	}

	suite.expectTransaction(true)
	suite.mockJournalRepo.On("CreateHeaderInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, cash.AccountID).Return(cash, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForShare", mock.Anything, mock.Anything, suite.tenantID, revenue.AccountID).Return(revenue, nil).Once()
	suite.mockJournalRepo.On("AddLineInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalLine")).Return(nil).Twice()
	suite.mockJournalRepo.On("PostInTx", mock.Anything, mock.Anything, suite.tenantID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockActivityLog.On("Log", mock.Anything, suite.tenantID, "Journal posted", mock.AnythingOfType("services.EntityRef"), suite.actorID, mock.Anything, "accounting").Return(assert.AnError).Once()

	entry, err := suite.service.PostJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(entry.IsPosted)
	suite.mockActivityLog.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_IdempotentRepost() {
	ctx := context.Background()
	journalID := uuid.NewString()

	// The repository treats an already-posted journal as a successful no-op.
	suite.mockJournalRepo.On("Post", ctx, suite.tenantID, journalID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.Post(ctx, suite.tenantID, journalID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("Post", ctx, suite.tenantID, journalID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.Post(ctx, suite.tenantID, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestGetJournal_Success() {
	ctx := context.Background()
	postedAt := time.Now().UTC()
	entry := &domain.JournalEntry{
		JournalID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Description: "Found journal",
		IsPosted:    true,
		PostedAt:    &postedAt,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: entry.JournalID, Debit: decimal.NewFromInt(10)},
		{LineID: uuid.NewString(), JournalID: entry.JournalID, Credit: decimal.NewFromInt(10)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, entry.JournalID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, entry.JournalID).Return(lines, nil).Once()

	gotEntry, gotLines, err := suite.service.GetJournal(ctx, suite.tenantID, entry.JournalID)

	suite.Require().NoError(err)
	suite.Equal(entry.JournalID, gotEntry.JournalID)
	suite.Len(gotLines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGetJournal_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).Return(nil, apperrors.ErrNotFound).Once()

	gotEntry, gotLines, err := suite.service.GetJournal(ctx, suite.tenantID, journalID)

	suite.Require().Error(err)
	suite.Nil(gotEntry)
	suite.Nil(gotLines)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
