package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/erazemk/cenik/internal/model"
)

// ErrNoCredential is returned when Analyze is called without an API key.
var ErrNoCredential = errors.New("no API key")

// Gemini analyses images with the Gemini API.
type Gemini struct {
	Model      string
	HTTPClient *http.Client
}

// productSchema constrains the model output to {"products": [{name, price, unit}]}.
var productSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"products": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":  {Type: genai.TypeString, Description: "Name of the grocery item"},
					"price": {Type: genai.TypeNumber, Description: "Price in whole currency units"},
					"unit":  {Type: genai.TypeString, Description: "Unit such as '1ea', '100g' or 'pack'"},
				},
				Required: []string{"name", "price", "unit"},
			},
		},
	},
	Required: []string{"products"},
}

// Analyze sends one image and the extraction prompt to the configured model.
// The client is built per call because the key can change between calls.
func (g *Gemini) Analyze(ctx context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error) {
	if credential == "" {
		return nil, ErrNoCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(Prompt),
			genai.NewPartFromBytes(image, mime),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   productSchema,
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	return ParseProducts([]byte(resp.Text()))
}
