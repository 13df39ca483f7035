package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/service/inventory"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/service/transfer"
)

// InventoryHandler exposes the transfer engine to the UI layer over HTTP.
type InventoryHandler struct {
	inv       *inventory.Service
	submitter *transfer.Submitter
	locations config.LocationsConfig
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(inv *inventory.Service, submitter *transfer.Submitter, locations config.LocationsConfig, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{inv: inv, submitter: submitter, locations: locations, logger: logger}
}

// Status reports readiness and snapshot freshness.
func (h *InventoryHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.Store().CurrentStatus())
}

// Items returns the current item catalog.
func (h *InventoryHandler) Items(c *gin.Context) {
	items := h.inv.Store().Catalog()
	if items == nil {
		items = models.Catalog{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Stock returns the current stock model snapshot.
func (h *InventoryHandler) Stock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stock": h.inv.Store().Stock()})
}

// Resources returns the free-form resources directory.
func (h *InventoryHandler) Resources(c *gin.Context) {
	resources := h.inv.Store().Resources()
	if resources == nil {
		resources = []models.ResourceEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Locations returns the closed location set and the neutral location.
func (h *InventoryHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locations": h.locations.Names,
		"neutral":   h.locations.Neutral,
	})
}

// Selection returns the working set in insertion order.
func (h *InventoryHandler) Selection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.inv.Entries()})
}

type toggleRequest struct {
	Item string `json:"item" binding:"required"`
}

// ToggleSelection flips one item in or out of the selection.
func (h *InventoryHandler) ToggleSelection(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	selected := h.inv.Toggle(req.Item)
	c.JSON(http.StatusOK, gin.H{"selected": selected, "entries": h.inv.Entries()})
}

type quantityRequest struct {
	Item  string `json:"item" binding:"required"`
	Value string `json:"value"`
}

// SetQuantity applies a raw quantity edit. The value travels as the raw
// string the user typed; the selection applies the canonical clamping and
// removal rule.
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.inv.SetQuantity(req.Item, req.Value)
	c.JSON(http.StatusOK, gin.H{"entries": h.inv.Entries()})
}

// ClearSelection empties the working set (view reset).
func (h *InventoryHandler) ClearSelection(c *gin.Context) {
	h.inv.ClearSelection()
	c.Status(http.StatusNoContent)
}

// Validate recomputes the advisory issues for the supplied route.
func (h *InventoryHandler) Validate(c *gin.Context) {
	issues := h.inv.Issues(c.Query("from"), c.Query("to"))
	if issues == nil {
		issues = []models.ValidationIssue{}
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// SubmitTransfer drives the one-shot submission transaction.
func (h *InventoryHandler) SubmitTransfer(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.submitter.Submit(c.Request.Context(), req)
	if err != nil {
		var verr *transfer.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": verr.Issues})
		case errors.Is(err, transfer.ErrSubmitInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress"})
		default:
			h.logger.Error("transfer submission failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "transfer could not be delivered"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"timestamp":  record.Timestamp,
		"items":      record.Items,
		"quantities": record.Quantities,
	})
}
