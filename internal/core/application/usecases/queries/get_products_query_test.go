package queries_test

import (
	"context"
	"errors"
	"testing"

	"flowershop/internal/core/application/usecases/queries"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type StubProductRepository struct{ mock.Mock }

func (m *StubProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *StubProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *StubProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StubProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *StubProductRepository) GetAll(ctx context.Context, category string) ([]*product.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func newTestProduct(t *testing.T, name, category string) *product.Product {
	t.Helper()
	price, err := kernel.NewMoney(decimal.NewFromInt(125000))
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), name, price, "", category, "")
	require.NoError(t, err)
	return p
}

func TestGetProductsQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	catalog := []*product.Product{
		newTestProduct(t, "Red Rose Bouquet", "bouquets"),
		newTestProduct(t, "White Lily Bouquet", "bouquets"),
	}

	repo := new(StubProductRepository)
	repo.On("GetAll", ctx, "bouquets").Return(catalog, nil).Once()

	handler := queries.NewGetProductsQueryHandler(repo)
	result, err := handler.Handle(ctx, queries.NewGetProductsQuery("bouquets"))

	require.NoError(t, err)
	assert.Equal(t, catalog, result)
	repo.AssertExpectations(t)
}

func TestGetProductsQueryHandler_Handle_EmptyCategoryReturnsAll(t *testing.T) {
	ctx := t.Context()

	repo := new(StubProductRepository)
	repo.On("GetAll", ctx, "").Return([]*product.Product{}, nil).Once()

	handler := queries.NewGetProductsQueryHandler(repo)
	result, err := handler.Handle(ctx, queries.NewGetProductsQuery(""))

	require.NoError(t, err)
	assert.Empty(t, result)
	repo.AssertExpectations(t)
}

func TestGetProductsQueryHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()

	repo := new(StubProductRepository)
	repo.On("GetAll", ctx, "").Return(nil, errors.New("connection refused")).Once()

	handler := queries.NewGetProductsQueryHandler(repo)
	_, err := handler.Handle(ctx, queries.NewGetProductsQuery(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetProductsQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetProductsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetProductsQueryIsNotConstructed)
}
