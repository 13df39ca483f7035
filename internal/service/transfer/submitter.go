package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/service/inventory"
)

// ErrSubmitInFlight indicates a submission transaction is already
// outstanding. The protocol carries no submission id, so the single
// in-flight guard is the only protection against duplicate sends.
var ErrSubmitInFlight = errors.New("a transfer submission is already in flight")

// ValidationError carries the issues that blocked a submission. Nothing is
// sent when validation fails; there is no partial submission.
type ValidationError struct {
	Issues []models.ValidationIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transfer blocked by %d validation issue(s)", len(e.Issues))
}

// Submitter drives the one-shot transfer submission transaction against
// the Apps Script endpoint.
type Submitter struct {
	httpClient *resty.Client
	submitURL  string
	inventory  *inventory.Service
	inFlight   atomic.Bool
	logger     *zap.Logger
	now        func() time.Time
}

// NewSubmitter builds a submitter for the configured endpoint.
func NewSubmitter(cfg config.SubmitConfig, inv *inventory.Service, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.SetTimeout(cfg.Timeout)

	return &Submitter{
		httpClient: restyClient,
		submitURL:  cfg.URL,
		inventory:  inv,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit re-validates the full selection and route, assembles the transfer
// record, and posts it form-encoded. On success the selection is cleared.
// Failed deliveries release the guard and leave the selection intact so
// the user can retry manually; there is no automatic retry.
func (s *Submitter) Submit(ctx context.Context, req models.TransferRequest) (*models.TransferRecord, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	entries := s.inventory.Entries()
	if issues := s.validateForSubmit(req, entries); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	record := s.buildRecord(req, entries)

	quantities := make([]string, len(record.Quantities))
	for i, q := range record.Quantities {
		quantities[i] = strconv.Itoa(q)
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"Timestamp": record.Timestamp,
			"From":      record.From,
			"To":        record.To,
			"Member":    record.Member,
			"Items":     strings.Join(record.Items, ", "),
			"Quantity":  strings.Join(quantities, ", "),
			"Other":     record.Other,
		}).
		Post(s.submitURL)
	if err != nil {
		return nil, fmt.Errorf("submit transfer: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("submit transfer: status %d", resp.StatusCode())
	}

	s.inventory.ClearSelection()
	s.logger.Info("transfer submitted",
		zap.String("from", record.From),
		zap.String("to", record.To),
		zap.Int("items", len(record.Items)))

	return record, nil
}

// validateForSubmit applies the full submit-time rule set: route complete,
// route not same-location unless neutral, at least one item, every
// quantity at least 1, and stock sufficiency unless neutral-exempt.
func (s *Submitter) validateForSubmit(req models.TransferRequest, entries []models.SelectionEntry) []models.ValidationIssue {
	var issues []models.ValidationIssue

	neutral := s.inventory.Neutral()

	if req.From == "" || req.To == "" {
		issues = append(issues, models.ValidationIssue{Message: "choose both a source and a destination"})
	} else if req.From == req.To && req.From != neutral {
		issues = append(issues, models.ValidationIssue{Message: "source and destination are the same"})
	}

	if len(entries) == 0 {
		issues = append(issues, models.ValidationIssue{Message: "no items selected"})
	}

	for _, entry := range entries {
		if !entry.HasQuantity() || *entry.Quantity < 1 {
			issues = append(issues, models.ValidationIssue{
				Item:    entry.Item,
				Message: "enter a quantity of at least 1",
			})
		}
	}

	issues = append(issues, inventory.Validate(entries, s.inventory.Store().Stock(), req.From, req.To, neutral)...)
	return issues
}

// buildRecord joins items and quantities by index in insertion order.
func (s *Submitter) buildRecord(req models.TransferRequest, entries []models.SelectionEntry) *models.TransferRecord {
	record := &models.TransferRecord{
		Timestamp: formatTimestamp(s.now()),
		From:      req.From,
		To:        req.To,
		Member:    req.Member,
		Other:     req.Other,
	}

	for _, entry := range entries {
		record.Items = append(record.Items, entry.Item)
		record.Quantities = append(record.Quantities, *entry.Quantity)
	}
	return record
}

// formatTimestamp renders "January 2nd, 2006 (3:04 PM)", matching the
// submission sheet's human-readable timestamp column.
func formatTimestamp(t time.Time) string {
	day := t.Day()
	suffix := "th"
	switch {
	case day%10 == 1 && day != 11:
		suffix = "st"
	case day%10 == 2 && day != 12:
		suffix = "nd"
	case day%10 == 3 && day != 13:
		suffix = "rd"
	}

	return fmt.Sprintf("%s %d%s, %d (%s)",
		t.Month().String(), day, suffix, t.Year(), t.Format("3:04 PM"))
}
