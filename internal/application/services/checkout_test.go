package services_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/mocks"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	endpoints protocol.Endpoints
	transport *mocks.MockTransport
	orders    *mocks.MockOrderStore
	cart      *mocks.MockCart
	diag      *mocks.RecordingDiagnostics
	order     *domain.Order
	service   *services.CheckoutService
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	suite.endpoints = testhelpers.Endpoints(suite.T())
	suite.transport = mocks.NewMockTransport(suite.T())
	suite.order = testhelpers.NewOrder("42")
	suite.orders = mocks.NewMockOrderStore(suite.order)
	suite.cart = mocks.NewMockCart(testhelpers.DefaultCart()...)
	suite.diag = mocks.NewRecordingDiagnostics()

	suite.service = services.NewCheckoutService(
		suite.orders,
		suite.transport,
		services.NewNegotiator(suite.transport, suite.endpoints, suite.diag),
		services.NewContractBuilder(testhelpers.DefaultShop()),
		suite.endpoints,
		suite.diag,
	)
}

func (suite *CheckoutServiceTestSuite) expectConfig(outcome application.Outcome) {
	suite.transport.EXPECT().
		Get(mock.Anything, suite.endpoints.Config(), mock.Anything).
		Return(outcome).
		Once()
}

func (suite *CheckoutServiceTestSuite) expectCreate(outcome application.Outcome) {
	suite.transport.EXPECT().
		Post(mock.Anything, suite.endpoints.PrivateOrders(), mock.MatchedBy(func(req protocol.PostOrderRequest) bool {
			return req.Order.OrderID == "wc_order_Ab12-42" && req.Order.Amount == "KUDOS:12.5"
		}), mock.Anything).
		Return(outcome).
		Once()
}

func (suite *CheckoutServiceTestSuite) submit() (*services.CheckoutResult, error) {
	return suite.service.SubmitOrder(context.Background(), services.CheckoutCommand{OrderNumber: "42"}, suite.cart)
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_Success() {
	suite.expectConfig(testhelpers.ConfigOutcome("1:0:0", "KUDOS"))
	suite.expectCreate(testhelpers.Outcome(200, `{"order_id":"abc","token":"tkn"}`))

	result, err := suite.submit()

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), testhelpers.BackendBaseURL+"/orders/abc?token=tkn", result.RedirectURL)
	assert.Equal(suite.T(), "abc", result.BackendOrderID)
	assert.Equal(suite.T(), domain.PhaseAwaitingConfirmation, result.Phase)
	assert.Empty(suite.T(), suite.orders.StatusChanges)
	assert.Equal(suite.T(), 0, suite.cart.Cleared)
}

// ============================================================================
// GATE TESTS
// ============================================================================

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_IncompatibleVersionNeverPosts() {
	suite.expectConfig(testhelpers.ConfigOutcome("5:0:0", "KUDOS"))

	_, err := suite.submit()

	require.Error(suite.T(), err)
	assert.True(suite.T(), application.IsKind(err, application.KindProtocolIncompatible))
	suite.transport.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(suite.T(), suite.orders.StatusChanges)
}

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_CurrencyMismatchNeverPosts() {
	suite.expectConfig(testhelpers.ConfigOutcome("1:0:0", "EUR"))

	_, err := suite.submit()

	require.Error(suite.T(), err)
	assert.Contains(suite.T(), application.UserMessage(err), "backend URL invalid")
	suite.transport.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_PaidOrderIsNeverResubmitted() {
	for _, status := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderCompleted, domain.OrderOnHold, domain.OrderRefunded} {
		suite.Run(string(status), func() {
			suite.order.Status = status

			_, err := suite.submit()

			require.Error(suite.T(), err)
			assert.True(suite.T(), application.IsKind(err, application.KindPreconditionFailed))
			assert.Equal(suite.T(), application.ErrCodeOrderStatusNotPayable, application.ToErrorCode(err))
			assert.Equal(suite.T(), status, suite.order.Status)
			assert.Empty(suite.T(), suite.orders.StatusChanges)
		})
	}
	suite.transport.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
	suite.transport.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_CancelledOrderMayRetry() {
	suite.order.Status = domain.OrderCancelled
	suite.expectConfig(testhelpers.ConfigOutcome("1:0:0", "KUDOS"))
	suite.expectCreate(testhelpers.Outcome(200, `{"order_id":"abc","token":"tkn"}`))

	result, err := suite.submit()

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "abc", result.BackendOrderID)
}

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_UnknownOrder() {
	_, err := suite.service.SubmitOrder(context.Background(), services.CheckoutCommand{OrderNumber: "404"}, suite.cart)

	assert.ErrorIs(suite.T(), err, domain.ErrOrderNotFound)
	suite.transport.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// FAILURE CLASSIFICATION TESTS
// ============================================================================

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_Failures() {
	tests := []struct {
		name    string
		outcome application.Outcome
		kind    application.ErrorKind
		code    string
	}{
		{"200 without JSON", testhelpers.Outcome(200, `OK`), application.KindMalformedResponse, application.ErrCodeMalformedResponse},
		{"200 without token", testhelpers.Outcome(200, `{"order_id":"abc"}`), application.KindMalformedResponse, application.ErrCodeMalformedResponse},
		{"200 without order_id", testhelpers.Outcome(200, `{"token":"tkn"}`), application.KindMalformedResponse, application.ErrCodeMalformedResponse},
		{"404 with code", testhelpers.Outcome(404, `{"code":2000,"hint":"instance unknown"}`), application.KindBackendRejected, application.ErrCodeBackendMisconfigured},
		{"404 without JSON", testhelpers.Outcome(404, `Not Found`), application.KindMalformedResponse, application.ErrCodeMalformedResponse},
		{"410 gone", testhelpers.Outcome(410, `{"code":2400}`), application.KindBackendError, application.ErrCodeBackendError},
		{"500", testhelpers.Outcome(500, `{"code":1}`), application.KindBackendError, application.ErrCodeBackendError},
		{"transport failure", testhelpers.Outcome(0, `timeout: context deadline exceeded`), application.KindTransportFailure, application.ErrCodeBackendUnreachable},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.expectConfig(testhelpers.ConfigOutcome("1:0:0", "KUDOS"))
			suite.expectCreate(tt.outcome)

			result, err := suite.submit()

			assert.Nil(suite.T(), result)
			svcErr, ok := application.IsServiceError(err)
			require.True(suite.T(), ok)
			assert.Equal(suite.T(), tt.kind, svcErr.Kind)
			assert.Equal(suite.T(), tt.code, svcErr.Code)
			assert.NotEmpty(suite.T(), svcErr.UserMessage)
			assert.Equal(suite.T(), []domain.OrderStatus{domain.OrderCancelled}, suite.orders.StatusChanges)
			assert.Equal(suite.T(), domain.OrderCancelled, suite.order.Status)
			assert.True(suite.T(), suite.diag.Contains(application.LevelError, "POST /private/orders"))
		})
	}
}

func (suite *CheckoutServiceTestSuite) Test_SubmitOrder_MisconfiguredKeepsBackendCode() {
	suite.expectConfig(testhelpers.ConfigOutcome("1:0:0", "KUDOS"))
	suite.expectCreate(testhelpers.Outcome(404, `{"code":2000}`))

	_, err := suite.submit()

	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), 2000, svcErr.BackendCode)
	assert.Equal(suite.T(), 404, svcErr.BackendStatus)
	assert.NotContains(suite.T(), svcErr.UserMessage, "2000")
}
