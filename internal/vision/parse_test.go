package vision

import (
	"strings"
	"testing"
)

func TestParseAnalysis_CleanJSON(t *testing.T) {
	raw := `{
		"health_score": 82.5,
		"disease_detected": "Leaf Spot",
		"disease_confidence": 0.85,
		"growth_stage": "Vegetative",
		"recommendations": "Apply copper fungicide within three days.",
		"observations": ["brown lesions on lower leaves"]
	}`

	a := parseAnalysis(raw)
	if a.HealthScore != 82.5 {
		t.Errorf("health score: got %v, want 82.5", a.HealthScore)
	}
	if a.DiseaseDetected != "Leaf Spot" {
		t.Errorf("disease: got %q", a.DiseaseDetected)
	}
	if a.DiseaseConfidence != 0.85 {
		t.Errorf("confidence: got %v", a.DiseaseConfidence)
	}
	if a.GrowthStage != "Vegetative" {
		t.Errorf("growth stage: got %q", a.GrowthStage)
	}
}

func TestParseAnalysis_CodeFences(t *testing.T) {
	raw := "```json\n{\"health_score\": 90, \"growth_stage\": \"Mature\", \"recommendations\": \"Harvest soon.\"}\n```"

	a := parseAnalysis(raw)
	if a.HealthScore != 90 {
		t.Errorf("health score through fences: got %v, want 90", a.HealthScore)
	}
	if a.GrowthStage != "Mature" {
		t.Errorf("growth stage: got %q", a.GrowthStage)
	}
}

func TestParseAnalysis_ProseAroundJSON(t *testing.T) {
	raw := `Here is my analysis of the crop:
{"health_score": 70, "growth_stage": "Flowering", "recommendations": "Keep soil moist."}
I hope this helps!`

	a := parseAnalysis(raw)
	if a.HealthScore != 70 {
		t.Errorf("health score: got %v, want 70", a.HealthScore)
	}
}

func TestParseAnalysis_TrailingComma(t *testing.T) {
	raw := `{"health_score": 65, "growth_stage": "Seedling", "recommendations": "Thin the seedlings.",}`

	a := parseAnalysis(raw)
	if a.HealthScore != 65 {
		t.Errorf("health score after trailing comma removal: got %v, want 65", a.HealthScore)
	}
}

func TestParseAnalysis_NonJSONFallback(t *testing.T) {
	a := parseAnalysis("The plant looks healthy to me, nothing to report.")

	if a.HealthScore != 50 {
		t.Errorf("fallback health score: got %v, want 50", a.HealthScore)
	}
	if a.GrowthStage != "Unknown" {
		t.Errorf("fallback growth stage: got %q", a.GrowthStage)
	}
	if a.Recommendations == "" {
		t.Error("fallback should carry a recommendation")
	}
}

func TestClampAnalysis(t *testing.T) {
	tests := []struct {
		name string
		in   CropAnalysis
		want func(*CropAnalysis) bool
	}{
		{
			name: "score above range",
			in:   CropAnalysis{HealthScore: 140, GrowthStage: "Mature"},
			want: func(a *CropAnalysis) bool { return a.HealthScore == 100 },
		},
		{
			name: "score below range",
			in:   CropAnalysis{HealthScore: -3, GrowthStage: "Mature"},
			want: func(a *CropAnalysis) bool { return a.HealthScore == 0 },
		},
		{
			name: "confidence without disease cleared",
			in:   CropAnalysis{HealthScore: 80, DiseaseConfidence: 0.9, GrowthStage: "Mature"},
			want: func(a *CropAnalysis) bool { return a.DiseaseConfidence == 0 },
		},
		{
			name: "disease none normalized to empty",
			in:   CropAnalysis{HealthScore: 80, DiseaseDetected: "None", DiseaseConfidence: 0.4, GrowthStage: "Mature"},
			want: func(a *CropAnalysis) bool { return a.DiseaseDetected == "" && a.DiseaseConfidence == 0 },
		},
		{
			name: "disease without confidence floored",
			in:   CropAnalysis{HealthScore: 80, DiseaseDetected: "Rust", GrowthStage: "Mature"},
			want: func(a *CropAnalysis) bool { return a.DiseaseConfidence == 0.5 },
		},
		{
			name: "missing growth stage",
			in:   CropAnalysis{HealthScore: 80},
			want: func(a *CropAnalysis) bool { return a.GrowthStage == "Unknown" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			got := clampAnalysis(&in)
			if !tt.want(got) {
				t.Errorf("clamp result: %+v", got)
			}
		})
	}
}

func TestSanitizeModelJSON_Comments(t *testing.T) {
	raw := `{
		// the score
		"health_score": 75, /* inline */
		"growth_stage": "Fruiting"
	}`

	clean := sanitizeModelJSON(raw)
	if strings.Contains(clean, "//") || strings.Contains(clean, "/*") {
		t.Errorf("comments survived sanitization: %q", clean)
	}
}

func TestAnalysisPrompt_Language(t *testing.T) {
	ctx := "Image Analysis Context:\n- Green content: 80.0%"

	en := analysisPrompt(ctx, "en")
	if !strings.Contains(en, "agronomist") {
		t.Error("English prompt missing instruction block")
	}
	if !strings.Contains(en, "Green content: 80.0%") {
		t.Error("prompt missing feature context")
	}

	ur := analysisPrompt(ctx, "ur")
	if ur == en {
		t.Error("Urdu prompt should differ from English")
	}
	if !strings.Contains(ur, "health_score") {
		t.Error("Urdu prompt must keep English JSON keys")
	}

	if analysisPrompt(ctx, "fr") != en {
		t.Error("unsupported language should fall back to English")
	}
}
