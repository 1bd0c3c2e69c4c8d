package vision

import "strings"

// analysisPromptEN instructs the model to answer with bare JSON. The feature
// context measured by the local pipeline is appended so the model grounds
// its verdict in actual pixel statistics instead of guessing.
const analysisPromptEN = `You are an expert agronomist analyzing a crop photograph.

Return JSON only, with exactly this shape:
{
  "health_score": 0.0,
  "disease_detected": "string or empty when none",
  "disease_confidence": 0.0,
  "growth_stage": "Seedling|Vegetative|Flowering|Fruiting|Mature",
  "recommendations": "practical advice for the farmer",
  "observations": ["short factual observation"]
}

HARD RULES
- health_score is 0-100.
- disease_confidence is 0-1 and must be 0 when disease_detected is empty.
- Recommendations must be actionable and specific to what you see.
- JSON only. No markdown, no code fences, no comments, no trailing commas.

Technical measurements from the uploaded image follow. Weigh them together
with what you see:

`

// analysisPromptUR is the Urdu variant; the JSON keys stay English so the
// response parses identically, only the free-text fields change language.
const analysisPromptUR = `آپ ایک ماہر زرعی سائنسدان ہیں جو فصل کی تصویر کا تجزیہ کر رہے ہیں۔

صرف JSON واپس کریں، بالکل اس شکل میں:
{
  "health_score": 0.0,
  "disease_detected": "string or empty when none",
  "disease_confidence": 0.0,
  "growth_stage": "Seedling|Vegetative|Flowering|Fruiting|Mature",
  "recommendations": "کسان کے لیے عملی مشورہ",
  "observations": ["مختصر حقیقی مشاہدہ"]
}

لازمی اصول
- health_score صفر سے 100 تک ہے۔
- disease_confidence صفر سے 1 تک ہے، اور بیماری نہ ہونے پر صفر ہو۔
- recommendations اور observations اردو میں لکھیں؛ JSON کیز انگریزی رہیں۔
- صرف JSON۔ کوئی مارک ڈاؤن، کوڈ فینس یا تبصرہ نہیں۔

اپ لوڈ کردہ تصویر کی تکنیکی پیمائشیں درج ذیل ہیں:

`

// analysisPrompt assembles the provider-independent prompt: instruction
// block for the requested language plus the serialized feature context.
func analysisPrompt(featureContext, language string) string {
	base := analysisPromptEN
	if language == "ur" {
		base = analysisPromptUR
	}
	return base + strings.TrimSpace(featureContext)
}
