package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOffer(t *testing.T) *Offer {
	t.Helper()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	offer, err := NewOffer("OFF-2025-001", uuid.New(), uuid.New(), date, date.AddDate(0, 1, 0))
	require.NoError(t, err)
	return offer
}

func mustItem(t *testing.T, qty int, price, disc string) OfferItem {
	t.Helper()
	item, err := NewOfferItem("P1", "Product", qty,
		decimal.RequireFromString(price), decimal.RequireFromString(disc))
	require.NoError(t, err)
	return *item
}

func TestOfferStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OfferStatus
		isValid bool
	}{
		{OfferStatusDraft, true},
		{OfferStatusSent, true},
		{OfferStatusAccepted, true},
		{OfferStatusRejected, true},
		{OfferStatusExpired, true},
		{OfferStatus("INVALID"), false},
		{OfferStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewOffer_RequiresOpportunity(t *testing.T) {
	date := time.Now()
	_, err := NewOffer("OFF-2025-001", uuid.New(), uuid.Nil, date, date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestNewOffer_Defaults(t *testing.T) {
	offer := createTestOffer(t)
	assert.Equal(t, OfferStatusDraft, offer.Status)
	assert.True(t, offer.TotalAmount.IsZero())
	assert.Empty(t, offer.Items)
}

func TestNewOfferItem_Validation(t *testing.T) {
	price := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		desc     string
		quantity int
		price    decimal.Decimal
		discount decimal.Decimal
		wantErr  bool
	}{
		{"valid", "Widget", 1, price, decimal.Zero, false},
		{"full discount boundary", "Widget", 1, price, decimal.NewFromInt(100), false},
		{"zero quantity", "Widget", 0, price, decimal.Zero, true},
		{"negative quantity", "Widget", -2, price, decimal.Zero, true},
		{"empty description", "", 1, price, decimal.Zero, true},
		{"negative price", "Widget", 1, decimal.NewFromInt(-1), decimal.Zero, true},
		{"discount below range", "Widget", 1, price, decimal.NewFromInt(-1), true},
		{"discount above range", "Widget", 1, price, decimal.RequireFromString("100.01"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOfferItem("P1", tt.desc, tt.quantity, tt.price, tt.discount)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOfferItem_LineTotal(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		price,
		disc,
		want string
	}{
		{"no discount", 2, "100.00", "0", "200"},
		{"ten percent", 1, "50.00", "10.00", "45"},
		{"full discount", 3, "99.99", "100", "0"},
		{"fractional discount", 1, "100.00", "12.50", "87.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustItem(t, tt.qty, tt.price, tt.disc)
			assert.True(t, item.LineTotal().Equal(decimal.RequireFromString(tt.want)),
				"got %s", item.LineTotal())
		})
	}
}

func TestOffer_ReplaceItems_RecomputesTotal(t *testing.T) {
	offer := createTestOffer(t)

	offer.ReplaceItems([]OfferItem{
		mustItem(t, 2, "100.00", "0"),
		mustItem(t, 1, "50.00", "10.00"),
	})

	assert.Equal(t, "245.00", offer.TotalAmount.StringFixed(2))
	require.Len(t, offer.Items, 2)
	for idx, item := range offer.Items {
		assert.Equal(t, offer.ID, item.OfferID)
		assert.Equal(t, idx, item.Position)
	}
}

func TestOffer_ReplaceItems_EmptySetYieldsZero(t *testing.T) {
	offer := createTestOffer(t)
	offer.ReplaceItems([]OfferItem{mustItem(t, 5, "20.00", "0")})
	require.Equal(t, "100.00", offer.TotalAmount.StringFixed(2))

	offer.ReplaceItems(nil)
	assert.Equal(t, "0.00", offer.TotalAmount.StringFixed(2))
	assert.Empty(t, offer.Items)
}

func TestOffer_RecalculateTotal_RoundsToCurrencyScale(t *testing.T) {
	offer := createTestOffer(t)
	// 3 * 33.33 * (1 - 1/3 of a percent) keeps fractions beyond two digits
	offer.ReplaceItems([]OfferItem{mustItem(t, 3, "33.33", "0.33")})
	assert.Equal(t, "99.66", offer.TotalAmount.StringFixed(2))
}

func TestOffer_SetStatus(t *testing.T) {
	offer := createTestOffer(t)
	require.NoError(t, offer.SetStatus(OfferStatusSent))
	assert.Equal(t, OfferStatusSent, offer.Status)

	err := offer.SetStatus(OfferStatus("BOGUS"))
	assert.Error(t, err)
}
