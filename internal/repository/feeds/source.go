package feeds

import "context"

// Source yields raw field-vector rows for each remote feed. Implementations
// return an error only for total fetch failure (network, non-success status,
// empty payload); content-level problems degrade to warnings downstream.
type Source interface {
	CatalogRows(ctx context.Context) ([][]string, error)
	SummaryRows(ctx context.Context) ([][]string, error)
	ResourceRows(ctx context.Context) ([][]string, error)
}
