package constant

// Chat message roles as persisted.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Metadata keys stored alongside assistant messages.
const (
	MetadataKeyReason   = "reason"
	MetadataKeyProvider = "provider"
	MetadataKeyModel    = "model"
)

// Reasons recorded on assistant messages answered without the model.
const (
	ReasonMetricQuestion = "metric_question"
)

// Fixed answers for deterministic metric questions.
const (
	WorkspaceCountAnswer = "Atualmente existem **%d workspaces** cadastrados nesta instância do Amby."
	DocumentCountAnswer  = "Este workspace possui **%d documentos** (considerando apenas documentos não excluídos)."
)

// Fallback texts for completion failures.
const (
	EmptyCompletionFallback = "Desculpe, não consegui gerar uma resposta."

	MissingCredentialAnswer = "O assistente de IA ainda não está configurado nesta instância. " +
		"Defina a variável de ambiente GROQ_API_KEY (ou configure outro provedor) e tente novamente."
)

// Generation parameters for completion calls.
const (
	CompletionTemperature float32 = 1
	CompletionMaxTokens           = 8192
	CompletionTopP        float32 = 1
)
