package assistant

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"finanza/internal/core"
)

func TestTransactionContext(t *testing.T) {
	txs := []core.Transaction{
		{Date: "2024-02-01", Description: "Nomina", Category: "Salario", Type: core.Income, Amount: 2000},
		{Date: "2024-02-03", Description: "Lunch", Category: "Food", Type: core.Expense, Amount: 15.5},
	}

	got := TransactionContext(txs)
	want := "- 2024-02-01: Nomina (Salario) | +2000.00\n- 2024-02-03: Lunch (Food) | -15.50"
	if got != want {
		t.Errorf("TransactionContext() = %q, want %q", got, want)
	}
}

func TestChatSystemPromptLanguages(t *testing.T) {
	txs := []core.Transaction{
		{Date: "2024-02-03", Description: "Lunch", Category: "Food", Type: core.Expense, Amount: 15},
	}

	es := chatSystemPrompt(txs, LangSpanish, "EUR")
	if !strings.Contains(es, "Moneda: EUR") || !strings.Contains(es, "- 2024-02-03: Lunch") {
		t.Errorf("spanish prompt missing data: %q", es)
	}

	en := chatSystemPrompt(txs, LangEnglish, "USD")
	if !strings.Contains(en, "Currency: USD") {
		t.Errorf("english prompt missing currency: %q", en)
	}
}

func TestImageSize(t *testing.T) {
	tests := []struct {
		ratio   string
		want    string
		wantErr bool
	}{
		{AspectSquare, openai.CreateImageSize1024x1024, false},
		{"", openai.CreateImageSize1024x1024, false},
		{AspectLandscape, openai.CreateImageSize1792x1024, false},
		{AspectPortrait, openai.CreateImageSize1024x1792, false},
		{"4:3", "", true},
	}

	for _, tt := range tests {
		got, err := imageSize(tt.ratio)
		if tt.wantErr {
			if err == nil {
				t.Errorf("imageSize(%q) expected error", tt.ratio)
			}
			continue
		}
		if err != nil {
			t.Errorf("imageSize(%q) error = %v", tt.ratio, err)
			continue
		}
		if got != tt.want {
			t.Errorf("imageSize(%q) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestExtractSources(t *testing.T) {
	text := "Rates went up.\nSources: https://example.com/rates, https://bank.example.org/news.\nAlso https://example.com/rates again."

	sources := extractSources(text)
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2: %v", len(sources), sources)
	}
	if sources[0].URI != "https://example.com/rates" {
		t.Errorf("first source = %q", sources[0].URI)
	}
	if sources[1].URI != "https://bank.example.org/news" {
		t.Errorf("second source = %q", sources[1].URI)
	}
}

func TestExtractSourcesNone(t *testing.T) {
	if got := extractSources("no links here"); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
