package feeds

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
)

// SheetsSource reads the same feeds straight from the spreadsheet through
// the Google Sheets API instead of the published CSV endpoints. Used when
// API credentials are configured; the rest of the engine sees identical
// row vectors either way.
type SheetsSource struct {
	service *sheetsapi.Service
	cfg     config.SheetsConfig
	logger  *zap.Logger
}

// NewSheetsSource builds a Google Sheets API backed feed source.
func NewSheetsSource(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SheetsSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetsSource{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// CatalogRows reads the catalog range from the spreadsheet.
func (s *SheetsSource) CatalogRows(ctx context.Context) ([][]string, error) {
	return s.readRange(ctx, s.cfg.CatalogRange)
}

// SummaryRows reads the inventory summary range from the spreadsheet.
func (s *SheetsSource) SummaryRows(ctx context.Context) ([][]string, error) {
	return s.readRange(ctx, s.cfg.SummaryRange)
}

// ResourceRows reads the resources directory range from the spreadsheet.
func (s *SheetsSource) ResourceRows(ctx context.Context) ([][]string, error) {
	return s.readRange(ctx, s.cfg.ResourcesRange)
}

func (s *SheetsSource) readRange(ctx context.Context, sheetRange string) ([][]string, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("read range %s: empty response", sheetRange)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, value := range resp.Values {
		row := make([]string, len(value))
		for i, cell := range value {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}

	s.logger.Debug("range read from sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return rows, nil
}
