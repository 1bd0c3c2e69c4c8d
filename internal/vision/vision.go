// Package vision sends prepared crop images to a multimodal model and turns
// its reply into a structured CropAnalysis. Two providers are supported:
// the OpenAI chat API and a local Ollama server. Model replies are treated
// as untrusted text; parsing is defensive and degrades to a conservative
// fallback result rather than failing the request.
package vision

import (
	"context"

	"github.com/khetiai/kheti-server/internal/imaging"
)

// CropAnalysis is the structured verdict on an uploaded crop image.
type CropAnalysis struct {
	HealthScore       float64  `json:"health_score"`
	DiseaseDetected   string   `json:"disease_detected,omitempty"`
	DiseaseConfidence float64  `json:"disease_confidence,omitempty"`
	GrowthStage       string   `json:"growth_stage"`
	Recommendations   string   `json:"recommendations"`
	Observations      []string `json:"observations,omitempty"`
}

// Analyzer produces a CropAnalysis from a prepared image payload plus the
// measured feature context.
type Analyzer interface {
	Analyze(ctx context.Context, payload *imaging.VisionPayload, featureContext, language string) (*CropAnalysis, error)
}
