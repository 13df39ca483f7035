package transfer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/service/inventory"
)

const neutral = "School"

func newTestService() *inventory.Service {
	store := inventory.NewStore()
	store.ReplaceStock(models.StockModel{
		"A": {Category: "motion", PerLocation: map[string]int{"School": 5}},
		"B": {Category: "electrical", PerLocation: map[string]int{"School": 5}},
	})
	return inventory.NewService(store, neutral, nil)
}

func newTestSubmitter(t *testing.T, handler http.HandlerFunc) (*Submitter, *inventory.Service) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	inv := newTestService()
	cfg := config.SubmitConfig{URL: server.URL, Timeout: 5 * time.Second}
	return NewSubmitter(cfg, inv, nil), inv
}

func TestSubmitFieldOrdering(t *testing.T) {
	var form url.Values
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.WriteHeader(http.StatusOK)
	})

	inv.Toggle("A")
	inv.SetQuantity("A", "3")
	inv.Toggle("B")
	inv.SetQuantity("B", "1")

	record, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn", Member: "Mohnish"})

	require.NoError(t, err)
	assert.Equal(t, "A, B", form.Get("Items"))
	assert.Equal(t, "3, 1", form.Get("Quantity"))
	assert.Equal(t, "School", form.Get("From"))
	assert.Equal(t, "Barn", form.Get("To"))
	assert.Equal(t, "Mohnish", form.Get("Member"))
	assert.Equal(t, []string{"A", "B"}, record.Items)
	assert.Equal(t, []int{3, 1}, record.Quantities)
	assert.Empty(t, inv.Entries(), "selection is cleared after a successful submission")
}

func TestSubmitValidationAbortsBeforeSending(t *testing.T) {
	requests := 0
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	})

	inv.Toggle("A") // checked but no quantity typed

	_, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "enter a quantity of at least 1", verr.Issues[0].Message)
	assert.Zero(t, requests, "no partial submission is ever sent")
	assert.Len(t, inv.Entries(), 1, "failed validation leaves the selection intact")
}

func TestSubmitSameRouteRejectedUnlessNeutral(t *testing.T) {
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	inv.Toggle("A")
	inv.SetQuantity("A", "2")

	_, err := sub.Submit(context.Background(), models.TransferRequest{From: "Barn", To: "Barn"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = sub.Submit(context.Background(), models.TransferRequest{From: neutral, To: neutral})
	assert.NoError(t, err, "neutral self-route is a restock, not a move")
}

func TestSubmitStockIssuesBlock(t *testing.T) {
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	inv.Toggle("A")
	inv.SetQuantity("A", "50")

	_, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "insufficient stock, only 5 available at School", verr.Issues[0].Message)
}

func TestSubmitDeliveryFailureKeepsSelection(t *testing.T) {
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	inv.Toggle("A")
	inv.SetQuantity("A", "2")

	_, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})

	require.Error(t, err)
	assert.Len(t, inv.Entries(), 1, "failure resets submission state for a manual retry")

	_, err = sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})
	assert.False(t, errors.Is(err, ErrSubmitInFlight), "guard is released after a failed attempt")
}

func TestSubmitInFlightGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sub, inv := newTestSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	})

	inv.Toggle("A")
	inv.SetQuantity("A", "2")

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})
		done <- err
	}()

	<-entered
	_, err := sub.Submit(context.Background(), models.TransferRequest{From: "School", To: "Barn"})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "March 1st, 2026 (9:05 AM)"},
		{2, "March 2nd, 2026 (9:05 AM)"},
		{3, "March 3rd, 2026 (9:05 AM)"},
		{11, "March 11th, 2026 (9:05 AM)"},
		{12, "March 12th, 2026 (9:05 AM)"},
		{13, "March 13th, 2026 (9:05 AM)"},
		{21, "March 21st, 2026 (9:05 AM)"},
	}

	for _, tt := range tests {
		stamp := formatTimestamp(time.Date(2026, time.March, tt.day, 9, 5, 0, 0, time.UTC))
		assert.Equal(t, tt.want, stamp)
	}
}
