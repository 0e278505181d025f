package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/nexuscrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]purchase.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *purchase.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]purchase.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *purchase.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPurchaseInvoiceRepository is a mock implementation of PurchaseInvoiceRepository
type MockPurchaseInvoiceRepository struct {
	mock.Mock
}

func (m *MockPurchaseInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.PurchaseInvoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]purchase.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) Save(ctx context.Context, invoice *purchase.PurchaseInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func createTestSupplier(t *testing.T) *purchase.Supplier {
	t.Helper()
	supplier, err := purchase.NewSupplier("Hardware Depot")
	require.NoError(t, err)
	return supplier
}

func createTestPurchaseOrder(t *testing.T, supplierID uuid.UUID) *purchase.PurchaseOrder {
	t.Helper()
	order, err := purchase.NewPurchaseOrder("PO-7781", supplierID, time.Now(), decimal.NewFromInt(900))
	require.NoError(t, err)
	return order
}

func TestPurchaseInvoiceService_Create_LinksOrder(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	order := createTestPurchaseOrder(t, supplier.ID)
	req := CreatePurchaseInvoiceRequest{
		Number:      "F-2025-118",
		SupplierID:  supplier.ID,
		OrderID:     &order.ID,
		TotalAmount: decimal.NewFromInt(900),
	}

	mockSupplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	mockOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	mockInvoiceRepo.On("Save", ctx, mock.AnythingOfType("*purchase.PurchaseInvoice")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	require.NotNil(t, result.OrderID)
	assert.Equal(t, order.ID, *result.OrderID)
	assert.Equal(t, "RECEIVED", result.Status)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestPurchaseInvoiceService_Create_SupplierMismatch(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	other := createTestSupplier(t)
	order := createTestPurchaseOrder(t, other.ID)
	req := CreatePurchaseInvoiceRequest{
		Number:      "F-2025-119",
		SupplierID:  supplier.ID,
		OrderID:     &order.ID,
		TotalAmount: decimal.NewFromInt(900),
	}

	mockSupplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	mockOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICTING_PARENT_REFERENCE", domainErr.Code)
	mockInvoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseInvoiceService_Create_OrderNotFound(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	orderID := uuid.New()
	req := CreatePurchaseInvoiceRequest{
		Number:      "F-2025-120",
		SupplierID:  supplier.ID,
		OrderID:     &orderID,
		TotalAmount: decimal.NewFromInt(50),
	}

	mockSupplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	mockOrderRepo.On("FindByID", ctx, orderID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_PARENT_REFERENCE", domainErr.Code)
}

func TestPurchaseInvoiceService_Create_WithoutOrder(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	req := CreatePurchaseInvoiceRequest{
		Number:      "F-2025-121",
		SupplierID:  supplier.ID,
		TotalAmount: decimal.NewFromInt(120),
	}

	mockSupplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	mockInvoiceRepo.On("Save", ctx, mock.AnythingOfType("*purchase.PurchaseInvoice")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.Nil(t, result.OrderID)
	mockOrderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPurchaseInvoiceService_Create_SupplierTakenFromOrder(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	order := createTestPurchaseOrder(t, supplier.ID)
	req := CreatePurchaseInvoiceRequest{
		Number:      "F-2025-123",
		OrderID:     &order.ID,
		TotalAmount: decimal.NewFromInt(300),
	}

	mockOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	mockSupplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	mockInvoiceRepo.On("Save", ctx, mock.AnythingOfType("*purchase.PurchaseInvoice")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, supplier.ID, result.SupplierID)
	require.NotNil(t, result.OrderID)
	assert.Equal(t, order.ID, *result.OrderID)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestPurchaseInvoiceService_Create_RequiresSupplierOrOrder(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	result, err := service.Create(context.Background(), CreatePurchaseInvoiceRequest{
		Number:      "F-2025-124",
		TotalAmount: decimal.NewFromInt(10),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_PARENT_REFERENCE", domainErr.Code)
	mockInvoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseInvoiceService_Update_RelinkRechecksSupplier(t *testing.T) {
	mockInvoiceRepo := new(MockPurchaseInvoiceRepository)
	mockOrderRepo := new(MockPurchaseOrderRepository)
	mockSupplierRepo := new(MockSupplierRepository)
	service := NewPurchaseInvoiceService(mockInvoiceRepo, mockOrderRepo, mockSupplierRepo)

	ctx := context.Background()
	supplier := createTestSupplier(t)
	invoice, err := purchase.NewPurchaseInvoice("F-2025-122", supplier.ID,
		time.Now(), time.Now().AddDate(0, 1, 0), decimal.NewFromInt(75))
	require.NoError(t, err)
	foreignOrder := createTestPurchaseOrder(t, uuid.New())

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	mockOrderRepo.On("FindByID", ctx, foreignOrder.ID).Return(foreignOrder, nil)

	result, err := service.Update(ctx, invoice.ID, UpdatePurchaseInvoiceRequest{OrderID: &foreignOrder.ID})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICTING_PARENT_REFERENCE", domainErr.Code)
	assert.Nil(t, invoice.OrderID)
	mockInvoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
