// Package intent classifies chat messages without touching the model:
// whether the user is asking for the current document to be rewritten, and
// whether the message is a simple count question that can be answered
// straight from storage.
package intent

import (
	"github.com/fabi0dev/amby/pkg/utils"
)

// Metric is a count question the assistant answers deterministically.
type Metric string

const (
	MetricWorkspaceCount Metric = "workspace_count"
	MetricDocumentCount  Metric = "document_count"
)

// Keyword tables are matched against normalized (lowercased, accent-stripped)
// text. Tokens with a trailing space anchor imperative conjugations without
// also matching longer unrelated words.
var editVerbs = []string{
	"organize",
	"organiza ",
	"organizar",
	"reescreve",
	"reescrever",
	"reescrita",
	"reescreva",
	"melhora ",
	"melhorar",
	"ajusta ",
	"ajustar",
	"formata",
	"formatar",
	"reformula",
	"reformular",
	"resuma",
	"resumir",
	"estruture",
	"estruturar",
	"aplique no documento",
	"aplica no documento",
	"aplicar no documento",
	"adiciona ",
	"adicionar",
	"adicione ",
}

var documentNouns = []string{
	"documento",
	"pagina",
	"descricao",
	"texto",
}

var quantifiers = []string{
	"quantos ",
	"quantas ",
	"qtd ",
	"qtdade",
	"quantidade ",
}

var documentCountNouns = []string{
	"documento",
	"documentos",
	"pagina",
	"paginas",
}

// IsEditRequest reports whether the message asks for the bound document to
// be rewritten. Both an edit verb and a document-like noun are required: a
// lone "melhore" must not trigger a rewrite. Callers only honor a positive
// result when the chat session has a current document.
func IsEditRequest(text string) bool {
	normalized := utils.NormalizeText(text)

	return utils.ContainsAny(normalized, editVerbs) &&
		utils.ContainsAny(normalized, documentNouns)
}

// DetectMetric reports whether the message is a "how many" question about
// workspaces or documents. Workspace is checked first, so it wins when both
// nouns appear.
func DetectMetric(text string) (Metric, bool) {
	normalized := utils.NormalizeText(text)

	if !utils.ContainsAny(normalized, quantifiers) {
		return "", false
	}

	if utils.ContainsAny(normalized, []string{"workspace"}) {
		return MetricWorkspaceCount, true
	}

	if utils.ContainsAny(normalized, documentCountNouns) {
		return MetricDocumentCount, true
	}

	return "", false
}
