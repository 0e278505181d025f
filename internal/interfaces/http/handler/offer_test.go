package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferTestHandler(offerRepo *stubOfferRepo, opportunityRepo *stubOpportunityRepo) *OfferHandler {
	return NewOfferHandler(salesapp.NewOfferService(offerRepo, opportunityRepo))
}

func postJSON(t *testing.T, h gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestOfferHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clientID := uuid.New()
	opportunity, err := sales.NewOpportunity("OPP-2025-009", clientID, "Warehouse expansion")
	require.NoError(t, err)

	h := newOfferTestHandler(
		&stubOfferRepo{},
		&stubOpportunityRepo{findByID: func(ctx context.Context, id uuid.UUID) (*sales.Opportunity, error) {
			return opportunity, nil
		}},
	)

	body := map[string]any{
		"opportunity_id": opportunity.ID,
		"items": []map[string]any{
			{"description": "Widget", "quantity": 2, "unit_price": "100", "discount": "0"},
			{"description": "Gadget", "quantity": 1, "unit_price": "50", "discount": "10"},
		},
	}
	w := postJSON(t, h.Create, "/sales/offers", body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, clientID.String(), data["client_id"])
	assert.Equal(t, "245.00", data["total_amount"])
}

func TestOfferHandler_Create_MissingOpportunity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newOfferTestHandler(&stubOfferRepo{}, &stubOpportunityRepo{})

	body := map[string]any{"opportunity_id": uuid.New()}
	w := postJSON(t, h.Create, "/sales/offers", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeMissingParent, resp.Error.Code)
}

func TestOfferHandler_UpdateRoutedOnPutAndPatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	offer, err := sales.NewOffer("OFF-2025-031", uuid.New(), uuid.New(), date, date.AddDate(0, 1, 0))
	require.NoError(t, err)

	h := newOfferTestHandler(
		&stubOfferRepo{findByID: func(ctx context.Context, id uuid.UUID) (*sales.Offer, error) {
			return offer, nil
		}},
		&stubOpportunityRepo{},
	)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/"))

	payload, err := json.Marshal(map[string]any{"notes": "call back in June"})
	require.NoError(t, err)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(method, "/sales/offers/"+offer.ID.String(), bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, method)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "call back in June", data["notes"], method)
	}
}

func TestOfferHandler_Create_ValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newOfferTestHandler(&stubOfferRepo{}, &stubOpportunityRepo{})

	// opportunity_id is required; binding fails before the service runs
	w := postJSON(t, h.Create, "/sales/offers", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.NotEmpty(t, resp.Error.Details)
	assert.Equal(t, "opportunityid", resp.Error.Details[0].Field)
}
