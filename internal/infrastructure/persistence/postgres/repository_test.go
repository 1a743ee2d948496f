package postgres_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/persistence/postgres"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var _ application.OrderStore = (*postgres.OrderRepository)(nil)

type RepositoryTestSuite struct {
	suite.Suite
	testDB      *testhelpers.TestDatabase
	orders      *postgres.OrderRepository
	carts       *postgres.CartRepository
	coordinator *postgres.TransactionCoordinator
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.orders = postgres.NewOrderRepository(suite.testDB.DB)
	suite.carts = postgres.NewCartRepository(suite.testDB.DB)
	suite.coordinator = postgres.NewTransactionCoordinator(suite.testDB.DB)
}

func (suite *RepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *RepositoryTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *RepositoryTestSuite) createOrder() *domain.Order {
	order := testhelpers.NewOrder("", testhelpers.WithTotal("99999999.12345678"))
	order.Key = ""
	require.NoError(suite.T(), suite.orders.Create(context.Background(), order))
	return order
}

// ============================================================================
// ORDER TESTS
// ============================================================================

func (suite *RepositoryTestSuite) Test_Create_AssignsNumberAndKey() {
	order := suite.createOrder()

	assert.Equal(suite.T(), "1", order.Number)
	_, err := domain.ParseExternalOrderID(order.ExternalID())
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), order.CreatedAt.IsZero())
}

func (suite *RepositoryTestSuite) Test_GetOrder_RoundTrip() {
	ctx := context.Background()
	line2 := "Hinterhaus"
	order := testhelpers.NewOrder("", testhelpers.WithTotal("12.50"), testhelpers.WithShipping(domain.Address{
		Country: "DE",
		City:    "Berlin",
		Line1:   "Invalidenstrasse 117",
		Line2:   &line2,
	}))
	require.NoError(suite.T(), suite.orders.Create(ctx, order))

	found, err := suite.orders.GetOrder(ctx, order.Number)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), order.Key, found.Key)
	assert.Equal(suite.T(), domain.OrderPending, found.Status)
	assert.Equal(suite.T(), "KUDOS", found.Currency)
	assert.True(suite.T(), found.Total.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(suite.T(), "Invalidenstrasse 117", found.Shipping.Line1)
	require.NotNil(suite.T(), found.Shipping.Line2)
	assert.Equal(suite.T(), "Hinterhaus", *found.Shipping.Line2)
	assert.Nil(suite.T(), found.TransactionRef)
}

func (suite *RepositoryTestSuite) Test_Total_KeepsEveryDigit() {
	order := suite.createOrder()

	found, err := suite.orders.GetOrder(context.Background(), order.Number)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "99999999.12345678", found.Total.String())
}

func (suite *RepositoryTestSuite) Test_GetOrder_NotFound() {
	for _, number := range []string{"999", "abc", "-1", ""} {
		_, err := suite.orders.GetOrder(context.Background(), number)

		assert.ErrorIs(suite.T(), err, domain.ErrOrderNotFound, "number %q", number)
	}
}

func (suite *RepositoryTestSuite) Test_MarkPaid() {
	ctx := context.Background()
	order := suite.createOrder()

	require.NoError(suite.T(), suite.orders.MarkPaid(ctx, order, order.ExternalID()))

	found, err := suite.orders.GetOrder(ctx, order.Number)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.OrderProcessing, found.Status)
	require.NotNil(suite.T(), found.TransactionRef)
	assert.Equal(suite.T(), order.ExternalID(), *found.TransactionRef)
}

func (suite *RepositoryTestSuite) Test_SetStatus() {
	ctx := context.Background()
	order := suite.createOrder()

	require.NoError(suite.T(), suite.orders.SetStatus(ctx, order, domain.OrderCancelled))

	found, err := suite.orders.GetOrder(ctx, order.Number)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.OrderCancelled, found.Status)
}

func (suite *RepositoryTestSuite) Test_SetStatus_UnknownOrder() {
	ghost := testhelpers.NewOrder("77")

	err := suite.orders.SetStatus(context.Background(), ghost, domain.OrderCancelled)

	assert.ErrorIs(suite.T(), err, domain.ErrOrderNotFound)
}

func (suite *RepositoryTestSuite) Test_Metadata_Upsert() {
	ctx := context.Background()
	order := suite.createOrder()

	_, ok, err := suite.orders.Metadata(ctx, order, "taler_refund_url")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	require.NoError(suite.T(), suite.orders.AttachMetadata(ctx, order, "taler_refund_url", "https://a"))
	require.NoError(suite.T(), suite.orders.AttachMetadata(ctx, order, "taler_refund_url", "https://b"))

	value, ok, err := suite.orders.Metadata(ctx, order, "taler_refund_url")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "https://b", value)
}

// ============================================================================
// CART TESTS
// ============================================================================

func (suite *RepositoryTestSuite) Test_Cart_PerSession() {
	ctx := context.Background()
	mine := suite.carts.ForSession("session-a")
	theirs := suite.carts.ForSession("session-b")

	for _, line := range testhelpers.DefaultCart() {
		require.NoError(suite.T(), suite.carts.AddLine(ctx, "session-a", line))
	}
	require.NoError(suite.T(), suite.carts.AddLine(ctx, "session-b", testhelpers.DefaultCart()[0]))

	lines, err := mine.CurrentLines(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), lines, 2)
	assert.True(suite.T(), lines[0].UnitPrice.Equal(decimal.RequireFromString("2.25")))

	require.NoError(suite.T(), mine.Clear(ctx))

	lines, err = mine.CurrentLines(ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), lines)

	lines, err = theirs.CurrentLines(ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), lines, 1)
}

func (suite *RepositoryTestSuite) Test_Cart_AddLineAccumulates() {
	ctx := context.Background()
	line := testhelpers.DefaultCart()[0]

	require.NoError(suite.T(), suite.carts.AddLine(ctx, "s", line))
	require.NoError(suite.T(), suite.carts.AddLine(ctx, "s", line))

	lines, err := suite.carts.Lines(ctx, "s")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), lines, 1)
	assert.Equal(suite.T(), 4, lines[0].Quantity)
}

func (suite *RepositoryTestSuite) Test_Cart_RejectsNonPositiveQuantity() {
	line := testhelpers.DefaultCart()[0]
	line.Quantity = 0

	err := suite.carts.AddLine(context.Background(), "s", line)

	assert.ErrorIs(suite.T(), err, domain.ErrInvalidAmount)
}

// ============================================================================
// TRANSACTION TESTS
// ============================================================================

func (suite *RepositoryTestSuite) Test_PlaceOrder() {
	ctx := context.Background()
	order := testhelpers.NewOrder("")
	order.Key = ""

	err := suite.coordinator.PlaceOrder(ctx, order, "session-c", testhelpers.DefaultCart())

	require.NoError(suite.T(), err)
	assert.True(suite.T(), order.Total.Equal(decimal.RequireFromString("12.50")))

	lines, err := suite.carts.Lines(ctx, "session-c")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), lines, 2)
}

func (suite *RepositoryTestSuite) Test_PlaceOrder_RollsBack() {
	ctx := context.Background()
	order := testhelpers.NewOrder("", testhelpers.WithCurrency("NOT-A-CURRENCY"))
	order.Key = ""

	err := suite.coordinator.PlaceOrder(ctx, order, "session-d", testhelpers.DefaultCart())

	require.Error(suite.T(), err)
	lines, err := suite.carts.Lines(ctx, "session-d")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), lines)
}
