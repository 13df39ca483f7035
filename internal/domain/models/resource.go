package models

// ResourceEntry is one row of the free-form resources directory feed,
// keyed by the feed's lowercased header names. Directory rows are not
// subject to stock validation.
type ResourceEntry map[string]string
