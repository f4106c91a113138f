package intent

import "testing"

func TestIsEditRequest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"verb and noun", "reescreva esse documento", true},
		{"verb without noun", "reescreva isso", false},
		{"noun without verb", "o que diz esse documento?", false},
		{"noun outside the table", "adicione uma nova tarefa", false},
		{"accented noun", "organize o texto dessa página", true},
		{"apply phrase", "aplique no documento, por favor", true},
		{"uppercase and accents", "REESCREVA ESSE DOCUMENTO", true},
		{"summarize description", "resuma a descrição", true},
		{"plain question", "como faço deploy?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEditRequest(tt.text); got != tt.want {
				t.Errorf("IsEditRequest(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectMetric(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantMetric Metric
		wantOK     bool
	}{
		{"workspace count", "quantos workspaces existem?", MetricWorkspaceCount, true},
		{"document count", "quantas páginas temos aqui?", MetricDocumentCount, true},
		{"qtd abbreviation", "qtd de documentos?", MetricDocumentCount, true},
		{"workspace wins when both appear", "quantos documentos tem esse workspace?", MetricWorkspaceCount, true},
		{"quantifier without noun", "quantos usuários ativos?", "", false},
		{"noun without quantifier", "me mostre os documentos", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectMetric(tt.text)
			if ok != tt.wantOK || got != tt.wantMetric {
				t.Errorf("DetectMetric(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.wantMetric, tt.wantOK)
			}
		})
	}
}
