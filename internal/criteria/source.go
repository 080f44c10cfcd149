// internal/criteria/source.go
package criteria

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	chassiserrors "adaptive-chassis/internal/common/errors"
	httpclient "adaptive-chassis/internal/common/http"
	"adaptive-chassis/internal/common/logger"
	"adaptive-chassis/internal/models"
	"adaptive-chassis/pkg/registry"
)

// Fixed sheet columns. Weight columns come from the typology registry.
const (
	columnCategory    = "Category"
	columnCriterion   = "Criterion"
	columnScoringHint = "Scoring Notes (0-5)"
)

// Source produces the current criteria set.
type Source interface {
	Fetch(ctx context.Context) ([]models.Criterion, error)
}

// SheetSource fetches criteria from a published-to-web CSV sheet.
type SheetSource struct {
	url    string
	client *httpclient.Client
	reg    *registry.TypologyRegistry
	logger logger.Logger
}

func NewSheetSource(url string, timeout time.Duration, reg *registry.TypologyRegistry, log logger.Logger) *SheetSource {
	return &SheetSource{
		url:    url,
		client: httpclient.NewClient(timeout),
		reg:    reg,
		logger: log.WithFields(map[string]interface{}{"component": "sheet-source"}),
	}
}

func (s *SheetSource) Fetch(ctx context.Context) ([]models.Criterion, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, chassiserrors.NewSourceUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, chassiserrors.NewSourceUnavailableError(fmt.Errorf("unexpected status %d from sheet", resp.StatusCode))
	}

	criteria, err := s.parse(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("criteria sheet fetched", map[string]interface{}{
		"criteria": len(criteria),
	})

	return criteria, nil
}

func (s *SheetSource) parse(r io.Reader) ([]models.Criterion, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, chassiserrors.NewSheetParseFailedError(err)
	}
	if len(records) == 0 {
		return nil, chassiserrors.NewSheetParseFailedError(fmt.Errorf("sheet has no header row"))
	}

	// Published sheets pick up stray spaces in headers; trim before mapping.
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	criterionCol, ok := index[columnCriterion]
	if !ok {
		return nil, chassiserrors.NewSheetColumnMissingError(columnCriterion)
	}
	categoryCol, hasCategory := index[columnCategory]
	hintCol, hasHint := index[columnScoringHint]

	weightCols := make(map[models.Typology]int, len(s.reg.Typologies))
	for _, t := range s.reg.Typologies {
		col, ok := index[t.WeightColumn]
		if !ok {
			return nil, chassiserrors.NewSheetColumnMissingError(t.WeightColumn)
		}
		weightCols[models.Typology(t.ID)] = col
	}

	criteria := make([]models.Criterion, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		name := cell(row, criterionCol)
		if name == "" {
			continue
		}

		c := models.Criterion{
			Name:    name,
			Weights: make(map[models.Typology]float64, len(weightCols)),
			Order:   rowNum,
		}
		if hasCategory {
			c.Category = cell(row, categoryCol)
		}
		if hasHint {
			c.ScoringHint = cell(row, hintCol)
		}

		for t, col := range weightCols {
			raw := cell(row, col)
			if raw == "" {
				continue
			}
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				s.logger.Warn("unparsable weight cell, treating as 0", map[string]interface{}{
					"criterion": name,
					"typology":  string(t),
					"value":     raw,
				})
				continue
			}
			c.Weights[t] = w
		}

		criteria = append(criteria, c)
	}

	return criteria, nil
}

// cell reads a trimmed field, tolerating ragged rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
