package models

// TransferRequest is the caller's intent to move the current selection
// between two locations.
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Member string `json:"member"`
	Other  string `json:"other"`
}

// TransferRecord is the finalized description of one item movement event,
// ready for submission. Items and Quantities are index-aligned: consumers
// of the submission feed join them positionally, not by name.
type TransferRecord struct {
	Timestamp  string
	From       string
	To         string
	Member     string
	Items      []string
	Quantities []int
	Other      string
}
