package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/numbering"
	"github.com/nexuscrm/backend/internal/domain/purchase"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&DocumentSequence{},
		&sales.Client{},
		&sales.Contact{},
		&sales.Opportunity{},
		&sales.Offer{},
		&sales.OfferItem{},
		&sales.SaleOrder{},
		&sales.Invoice{},
		&sales.InvoiceItem{},
		&sales.Contract{},
		&purchase.Supplier{},
		&purchase.PurchaseOrder{},
		&purchase.PurchaseInvoice{},
	)
	require.NoError(t, err)

	return db
}

func newTestAllocator(t *testing.T, db *gorm.DB) *SequenceAllocator {
	t.Helper()
	allocator := NewSequenceAllocator(db, zap.NewNop())
	allocator.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return allocator
}

func TestSequenceAllocator_Next(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)
	ctx := context.Background()

	t.Run("first allocation starts at one", func(t *testing.T) {
		number, err := allocator.Next(ctx, numbering.SeriesOpportunity)
		require.NoError(t, err)
		assert.Equal(t, "OPP-2025-001", number)
	})

	t.Run("subsequent allocations increment", func(t *testing.T) {
		number, err := allocator.Next(ctx, numbering.SeriesOpportunity)
		require.NoError(t, err)
		assert.Equal(t, "OPP-2025-002", number)
	})

	t.Run("series count independently", func(t *testing.T) {
		number, err := allocator.Next(ctx, numbering.SeriesInvoice)
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-001", number)
	})

	t.Run("rejects unknown series", func(t *testing.T) {
		_, err := allocator.Next(ctx, numbering.Series("XXX"))
		assert.Error(t, err)
	})
}

func TestSequenceAllocator_SeedsFromExistingDocuments(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)
	ctx := context.Background()

	clientID := uuid.New()
	for _, number := range []string{"OPP-2025-001", "OPP-2025-041", "OPP-2025-007"} {
		opp, err := sales.NewOpportunity(number, clientID, "Seeded "+number)
		require.NoError(t, err)
		require.NoError(t, db.Create(opp).Error)
	}

	number, err := allocator.Next(ctx, numbering.SeriesOpportunity)
	require.NoError(t, err)
	assert.Equal(t, "OPP-2025-042", number)
}

func TestSequenceAllocator_IgnoresUnparsableNumbers(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)
	ctx := context.Background()

	clientID := uuid.New()
	opp, err := sales.NewOpportunity("OPP-2025-LEGACY", clientID, "Imported row")
	require.NoError(t, err)
	require.NoError(t, db.Create(opp).Error)

	number, err := allocator.Next(ctx, numbering.SeriesOpportunity)
	require.NoError(t, err)
	assert.Equal(t, "OPP-2025-001", number)
}

func TestSequenceAllocator_WidensPastThreeDigits(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)
	ctx := context.Background()

	require.NoError(t, db.Create(&DocumentSequence{
		Series:    numbering.SeriesSaleOrder,
		Year:      2025,
		LastValue: 999,
	}).Error)

	number, err := allocator.Next(ctx, numbering.SeriesSaleOrder)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2025-1000", number)
}

func TestSequenceAllocator_SequentialBatch(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		number, err := allocator.Next(ctx, numbering.SeriesOffer)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("OFF-2025-%03d", i), number)
	}
}

func TestSequenceAllocator_RolledBackTransactionReleasesNumber(t *testing.T) {
	db := setupTestDB(t)
	allocator := newTestAllocator(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		number, err := allocator.NextInTx(tx, numbering.SeriesInvoice)
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-001", number)
		return fmt.Errorf("forced rollback")
	})
	require.Error(t, err)

	number, err := allocator.Next(context.Background(), numbering.SeriesInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-001", number)
}
