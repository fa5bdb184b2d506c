package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/finledger/ledger-backend/internal/core/domain"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/dto"
	"github.com/finledger/ledger-backend/internal/handlers"
	"github.com/finledger/ledger-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) AddChildAccount(ctx context.Context, tenantID string, parentID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, parentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetTree(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) IsLeaf(ctx context.Context, tenantID string, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	args := m.Called(ctx, tenantID, accountID, actorID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockPostingService *MockPostingService
	tenantID           string
	actorID            string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)
	suite.mockPostingService = new(MockPostingService)
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
		Posting: suite.mockPostingService,
	})
}

// doRequest sends a tenant-annotated JSON request through the full router.
func (suite *AccountHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantIDHeader, suite.tenantID)
	req.Header.Set(middleware.ActorIDHeader, suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	left, right := int64(1), int64(2)
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
		Left:        &left,
		Right:       &right,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.tenantID, reqBody, suite.actorID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.True(resp.IsLeaf)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountType() {
	body := map[string]any{
		"code":        "9999",
		"name":        "Mystery",
		"accountType": "PROFIT",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body)

	// Rejected by the accounttype binding rule before the service is reached.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingTenantHeader() {
	reqBody := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	reqBody := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash Again",
		AccountType: domain.Asset,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.tenantID, reqBody, suite.actorID).
		Return(nil, apperrors.ErrDuplicateCode).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestAddChildAccount_Success() {
	parentID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Code:        "1001",
		Name:        "Petty Cash",
		AccountType: domain.Asset,
	}
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		ParentID:    parentID,
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountService.On("AddChildAccount", mock.Anything, suite.tenantID, parentID, reqBody, suite.actorID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts/"+parentID+"/children", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(parentID, resp.ParentID)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.tenantID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetTree_Success() {
	left1, right1 := int64(1), int64(4)
	left2, right2 := int64(2), int64(3)
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1000", Left: &left1, Right: &right1},
		{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1100", Left: &left2, Right: &right2},
	}

	suite.mockAccountService.On("GetTree", mock.Anything, suite.tenantID).Return(accounts, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/tree", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Accounts []dto.AccountResponse `json:"accounts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 2)
	suite.Equal("1000", resp.Accounts[0].Code)
	suite.False(resp.Accounts[0].IsLeaf)
	suite.True(resp.Accounts[1].IsLeaf)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_HasChildren() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.tenantID, accountID, suite.actorID).
		Return(apperrors.ErrHasChildren).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.tenantID, accountID, suite.actorID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
