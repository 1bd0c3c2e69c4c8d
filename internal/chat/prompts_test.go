package chat

import (
	"strings"
	"testing"
)

func TestSystemPrompt_Languages(t *testing.T) {
	en := SystemPrompt("en")
	if !strings.Contains(en, "KhetiAI") {
		t.Error("English prompt missing assistant name")
	}

	ur := SystemPrompt("ur")
	if ur == en {
		t.Error("Urdu prompt should differ from English")
	}
}

func TestSystemPrompt_Fallback(t *testing.T) {
	if SystemPrompt("fr") != SystemPrompt("en") {
		t.Error("unsupported language should fall back to English")
	}
	if SystemPrompt("") != SystemPrompt("en") {
		t.Error("empty language should fall back to English")
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	if len(langs) != 2 {
		t.Fatalf("supported languages: got %d, want 2", len(langs))
	}
	for _, l := range langs {
		if _, ok := systemPrompts[l]; !ok {
			t.Errorf("language %s listed but has no prompt", l)
		}
	}
}
