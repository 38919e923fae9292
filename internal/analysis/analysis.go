// Package analysis extracts product names, prices and units from shelf
// photos and receipt screenshots using an external vision model.
package analysis

import (
	"context"

	"github.com/erazemk/cenik/internal/model"
)

// Prompt is the instruction sent along with every image.
const Prompt = "Extract product name, price, and unit from this supermarket shelf or receipt image. Return as JSON."

// Analyzer turns one image into the products it shows.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error) {
	return f(ctx, image, mime, credential)
}
