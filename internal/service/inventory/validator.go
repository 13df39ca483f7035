package inventory

import (
	"fmt"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
)

// Validate checks a selection against the current stock model for a route.
// It is pure: callers recompute it whenever the selection, the stock model,
// or the route changes, and never store the result.
//
// No issues are reported while either route endpoint is unset or the
// selection is empty; that is a not-ready state, not a valid one. A
// transfer from the neutral location to itself represents adding new
// stock, so no availability check applies. Items missing from the stock
// model are skipped silently; an unrecognized item cannot be stock-checked.
func Validate(entries []models.SelectionEntry, stock models.StockModel, from, to, neutral string) []models.ValidationIssue {
	if from == "" || to == "" || len(entries) == 0 {
		return nil
	}

	if from == neutral && to == neutral {
		return nil
	}

	var issues []models.ValidationIssue
	for _, entry := range entries {
		record, ok := stock[entry.Item]
		if !ok {
			continue
		}

		available := record.QuantityAt(from)
		switch {
		case available == 0:
			issues = append(issues, models.ValidationIssue{
				Item:    entry.Item,
				Message: fmt.Sprintf("no stock at %s", from),
			})
		case available < entry.RequestedOrOne():
			issues = append(issues, models.ValidationIssue{
				Item:    entry.Item,
				Message: fmt.Sprintf("insufficient stock, only %d available at %s", available, from),
			})
		}
	}
	return issues
}
