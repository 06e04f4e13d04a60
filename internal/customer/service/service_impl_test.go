package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateCustomer(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "  Baltic Freight OÜ  ",
		Email: "billing@balticfreight.example",
		Phone: "+372 555 0100",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Baltic Freight OÜ", created.Name)

	fetched, err := svc.GetByID(context.Background(), domain.GetCustomerRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "+372 555 0100", fetched.Phone)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Email: "a@b.example"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Acme", Email: "no-at-sign"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "billing@acme.example",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Holdings",
		Email: "billing@acme.example",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUpdateCustomerDuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "billing@acme.example",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Beta Logistics",
		Email: "ap@beta.example",
	})
	require.NoError(t, err)

	taken := "billing@acme.example"
	_, err = svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:    second.ID.String(),
		Email: &taken,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetByID(context.Background(), domain.GetCustomerRequest{ID: "123456789012345678"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), domain.GetCustomerRequest{ID: "garbage"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateCustomerPartial(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "old@acme.example",
	})
	require.NoError(t, err)

	email := "new@acme.example"
	updated, err := svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:    created.ID.String(),
		Email: &email,
	})
	require.NoError(t, err)

	assert.Equal(t, "new@acme.example", updated.Email)
	assert.Equal(t, "Acme Trading", updated.Name)
}

func TestUpdateCustomerRejectsEmptyName(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "billing@acme.example",
	})
	require.NoError(t, err)

	empty := "   "
	_, err = svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:   created.ID.String(),
		Name: &empty,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestDeleteCustomer(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "billing@acme.example",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteCustomerRequest{ID: created.ID.String()}))

	err = svc.Delete(context.Background(), domain.DeleteCustomerRequest{ID: created.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerStorageErrorsAreWrapped(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	require.NoError(t, db.Migrator().DropTable(&domain.Customer{}))

	_, err = svc.List(context.Background(), domain.ListCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInternal)

	_, err = svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Acme Trading",
		Email: "billing@acme.example",
	})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestListCustomersFilterAndPaging(t *testing.T) {
	svc := newService(t)

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
			Name:  name,
			Email: name + "@example.test",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListCustomerRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Customers, 2)
	assert.Equal(t, 2, resp.Limit)

	filtered, err := svc.List(context.Background(), domain.ListCustomerRequest{Name: "Beta"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)
	require.Len(t, filtered.Customers, 1)
	assert.Equal(t, "Beta", filtered.Customers[0].Name)
}
