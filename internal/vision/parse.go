package vision

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reBlockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment   = regexp.MustCompile(`(?m)^\s*//.*$`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// sanitizeModelJSON strips the decoration vision models habitually wrap
// around JSON: code fences, comments, trailing commas, prose before or
// after the object. Only the outermost {...} survives.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	raw = reBlockComment.ReplaceAllString(raw, "")
	raw = reLineComment.ReplaceAllString(raw, "")
	raw = reTrailingComma.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// fallbackAnalysis is returned when the model reply cannot be parsed. The
// request still succeeds; the farmer gets a neutral verdict instead of a
// 500.
func fallbackAnalysis(reason string) *CropAnalysis {
	return &CropAnalysis{
		HealthScore:     50,
		GrowthStage:     "Unknown",
		Recommendations: "Automated analysis was inconclusive. Please retake the photo in good light, or consult a local agricultural expert.",
		Observations:    []string{reason},
	}
}

// parseAnalysis turns a raw model reply into a CropAnalysis, sanitizing
// first and falling back to a conservative result when no usable JSON can
// be recovered.
func parseAnalysis(raw string) *CropAnalysis {
	raw = sanitizeModelJSON(raw)

	if !strings.HasPrefix(raw, "{") {
		return fallbackAnalysis("model returned non-JSON response")
	}

	var out CropAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return fallbackAnalysis("no valid JSON found in response")
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
			return fallbackAnalysis("failed to parse model response")
		}
	}

	return clampAnalysis(&out)
}

// clampAnalysis bounds the numeric fields and repairs the disease pairing:
// a confidence without a named disease is noise, a named disease without a
// confidence gets a floor.
func clampAnalysis(a *CropAnalysis) *CropAnalysis {
	if a.HealthScore < 0 {
		a.HealthScore = 0
	}
	if a.HealthScore > 100 {
		a.HealthScore = 100
	}
	if a.DiseaseConfidence < 0 {
		a.DiseaseConfidence = 0
	}
	if a.DiseaseConfidence > 1 {
		a.DiseaseConfidence = 1
	}

	a.DiseaseDetected = strings.TrimSpace(a.DiseaseDetected)
	if strings.EqualFold(a.DiseaseDetected, "none") || strings.EqualFold(a.DiseaseDetected, "null") {
		a.DiseaseDetected = ""
	}
	if a.DiseaseDetected == "" {
		a.DiseaseConfidence = 0
	} else if a.DiseaseConfidence == 0 {
		a.DiseaseConfidence = 0.5
	}

	if strings.TrimSpace(a.GrowthStage) == "" {
		a.GrowthStage = "Unknown"
	}
	return a
}
