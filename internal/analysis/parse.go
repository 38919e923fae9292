package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/cenik/internal/model"
)

// ErrMalformedResponse is returned when the model output does not match the
// expected schema. One bad product invalidates the whole response.
var ErrMalformedResponse = errors.New("malformed analysis response")

type response struct {
	Products *[]product `json:"products"`
}

type product struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Unit  *string          `json:"unit"`
}

// ParseProducts decodes a {"products": [...]} document.
func ParseProducts(data []byte) ([]model.AnalysisResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Products == nil {
		return nil, fmt.Errorf("%w: missing products", ErrMalformedResponse)
	}

	results := make([]model.AnalysisResult, 0, len(*resp.Products))
	for i, p := range *resp.Products {
		switch {
		case p.Name == nil || strings.TrimSpace(*p.Name) == "":
			return nil, fmt.Errorf("%w: product %d has no name", ErrMalformedResponse, i)
		case p.Price == nil:
			return nil, fmt.Errorf("%w: product %d has no price", ErrMalformedResponse, i)
		case p.Price.IsNegative():
			return nil, fmt.Errorf("%w: product %d has negative price", ErrMalformedResponse, i)
		case p.Unit == nil:
			return nil, fmt.Errorf("%w: product %d has no unit", ErrMalformedResponse, i)
		}
		results = append(results, model.AnalysisResult{
			Name:  strings.TrimSpace(*p.Name),
			Price: *p.Price,
			Unit:  strings.TrimSpace(*p.Unit),
		})
	}
	return results, nil
}
