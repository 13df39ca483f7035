package models

// SelectionEntry is one line of the user's working set: an item together
// with the requested quantity. Quantity is nil while the item is checked
// but no amount has been typed yet; that state is distinct from 0, which
// is never a submittable quantity.
type SelectionEntry struct {
	Item     string `json:"item"`
	Quantity *int   `json:"quantity"`
}

// HasQuantity reports whether the entry carries a concrete quantity.
func (e SelectionEntry) HasQuantity() bool {
	return e.Quantity != nil
}

// RequestedOrOne returns the entry's quantity, treating an unset quantity
// as a request for a single unit when checking availability.
func (e SelectionEntry) RequestedOrOne() int {
	if e.Quantity == nil {
		return 1
	}
	return *e.Quantity
}

// ValidationIssue describes one advisory violation found while checking a
// selection against the stock model. Issues are derived values; they are
// recomputed on every relevant state change and never stored.
type ValidationIssue struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}
