package classify

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Verdict
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  `{"label":"positive","confidence":0.87}`,
			want: Verdict{Label: LabelPositive, Confidence: 0.87},
		},
		{
			name: "negative",
			raw:  `{"label":"negative","confidence":0.6}`,
			want: Verdict{Label: LabelNegative, Confidence: 0.6},
		},
		{
			name: "wrapped in prose",
			raw:  "Here is the result:\n```json\n{\"label\":\"positive\",\"confidence\":0.5}\n```",
			want: Verdict{Label: LabelPositive, Confidence: 0.5},
		},
		{
			name:    "unknown label",
			raw:     `{"label":"neutral","confidence":0.5}`,
			wantErr: true,
		},
		{
			name:    "confidence out of range",
			raw:     `{"label":"positive","confidence":1.5}`,
			wantErr: true,
		},
		{
			name:    "no object",
			raw:     "positive",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVerdict(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("parseVerdict(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestVerdict_Signed(t *testing.T) {
	pos := Verdict{Label: LabelPositive, Confidence: 0.8}
	if pos.Signed() != 0.8 {
		t.Errorf("Expected +0.8, got %v", pos.Signed())
	}

	neg := Verdict{Label: LabelNegative, Confidence: 0.6}
	if neg.Signed() != -0.6 {
		t.Errorf("Expected -0.6, got %v", neg.Signed())
	}
}

func TestNewClassifier_Factory(t *testing.T) {
	if _, err := NewClassifier(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without API key")
	}

	c, err := NewClassifier(Config{Provider: "ollama", Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("Expected no error for ollama, got %v", err)
	}
	if c.Name() != "ollama" {
		t.Errorf("Expected ollama classifier, got %s", c.Name())
	}

	if c, err := NewClassifier(Config{}); err != nil || c != nil {
		t.Errorf("Expected nil classifier for empty provider, got (%v, %v)", c, err)
	}

	if _, err := NewClassifier(Config{Provider: "bert"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
