package analysis

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/cenik/internal/model"
)

func TestParseProducts(t *testing.T) {
	data := []byte(`{"products": [
		{"name": " Seoul Milk ", "price": 2980, "unit": "1L"},
		{"name": "Eggs", "price": 6990.5, "unit": "30ea"}
	]}`)

	got, err := ParseProducts(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Seoul Milk", got[0].Name)
	assert.True(t, got[0].Price.Equal(decimal.NewFromInt(2980)))
	assert.Equal(t, "1L", got[0].Unit)
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("6990.5")))
}

func TestParseProductsEmptyList(t *testing.T) {
	got, err := ParseProducts([]byte(`{"products": []}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseProductsRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"not json", "Sorry, I cannot read this image."},
		{"missing products", `{"items": []}`},
		{"missing name", `{"products": [{"price": 100, "unit": "1ea"}]}`},
		{"blank name", `{"products": [{"name": " ", "price": 100, "unit": "1ea"}]}`},
		{"missing price", `{"products": [{"name": "Egg", "unit": "1ea"}]}`},
		{"bad price", `{"products": [{"name": "Egg", "price": "1,500", "unit": "1ea"}]}`},
		{"negative price", `{"products": [{"name": "Egg", "price": -5, "unit": "1ea"}]}`},
		{"missing unit", `{"products": [{"name": "Egg", "price": 100}]}`},
		// One bad entry invalidates the rest.
		{"partial", `{"products": [{"name": "Egg", "price": 100, "unit": "1ea"}, {"name": "Milk"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProducts([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, got)
		})
	}
}

func TestGeminiRequiresCredential(t *testing.T) {
	g := &Gemini{Model: "gemini-2.5-flash"}
	_, err := g.Analyze(context.Background(), []byte{0xff, 0xd8}, "image/jpeg", "")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestAnalyzerFunc(t *testing.T) {
	var a Analyzer = AnalyzerFunc(func(_ context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error) {
		return []model.AnalysisResult{{Name: mime + ":" + credential}}, nil
	})

	got, err := a.Analyze(context.Background(), nil, "image/jpeg", "key")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg:key", got[0].Name)
}
