package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	customerrepo "github.com/smallbiznis/collectra/internal/customer/repository"
	"github.com/smallbiznis/collectra/internal/invoice/domain"
	"github.com/smallbiznis/collectra/internal/invoice/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customerdomain.Customer{}, &domain.Invoice{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Customers: customerrepo.Provide(),
	})
	return svc, db, node
}

func seedCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node) customerdomain.Customer {
	t.Helper()
	customer := customerdomain.Customer{
		ID:       node.Generate(),
		Name:     "Acme Trading",
		Email:    "billing@acme.example",
		Metadata: datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func TestCreateInvoice(t *testing.T) {
	svc, db, node := newService(t)
	customer := seedCustomer(t, db, node)
	due := time.Now().UTC().AddDate(0, 1, 0)

	created, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		Number:      "INV-1001",
		TotalAmount: 125_000,
		Currency:    "usd",
		DueAt:       &due,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.InvoiceStatusOpen, created.Status)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, int64(125_000), created.Outstanding())
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	svc, _, node := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID:  node.Generate().String(),
		TotalAmount: 100,
		Currency:    "USD",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, db, node := newService(t)
	customer := seedCustomer(t, db, node)

	_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Status:     "VOID",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID:  customer.ID.String(),
		TotalAmount: 100,
		PaidAmount:  200,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestListByCustomer(t *testing.T) {
	svc, db, node := newService(t)
	customer := seedCustomer(t, db, node)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
			CustomerID:  customer.ID.String(),
			TotalAmount: int64(1000 * (i + 1)),
			Currency:    "USD",
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListByCustomer(context.Background(), domain.ListInvoiceRequest{
		CustomerID: customer.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Invoices, 2)
}
