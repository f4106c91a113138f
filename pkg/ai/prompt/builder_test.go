package prompt

import (
	"strings"
	"testing"

	"github.com/fabi0dev/amby/pkg/llm"
)

func TestBuildMessagesEditMode(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "reescreva esse documento"},
	}

	messages := BuildMessages(Input{
		WorkspaceName:    "Engenharia",
		DocumentTitle:    "Guia",
		EditRequest:      true,
		DocumentMarkdown: "# Guia\n\ntexto antigo",
		History:          history,
	})

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}

	persona := messages[0]
	if persona.Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", persona.Role)
	}
	if !strings.Contains(persona.Content, `Workspace atual: "Engenharia".`) {
		t.Error("persona missing workspace line")
	}
	if !strings.Contains(persona.Content, `Documento atual: "Guia".`) {
		t.Error("persona missing document line")
	}
	if !strings.Contains(persona.Content, "NÃO inclua o título do documento") {
		t.Error("persona missing duplicate-title rule")
	}

	editMsg := messages[1]
	if editMsg.Role != llm.RoleSystem {
		t.Errorf("edit message role = %q, want system", editMsg.Role)
	}
	if !strings.Contains(editMsg.Content, "# Guia\n\ntexto antigo") {
		t.Error("edit message missing full document markdown")
	}

	if messages[2] != history[0] {
		t.Errorf("history not preserved: %+v", messages[2])
	}
}

func TestBuildMessagesWithContext(t *testing.T) {
	messages := BuildMessages(Input{
		WorkspaceName: "Engenharia",
		ContextBlock:  "Contexto da documentação do workspace (trechos relevantes):\n\nTítulo: Deploy",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "como fazer deploy?"},
		},
	})

	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(messages))
	}
	if !strings.Contains(messages[1].Content, "Responda APENAS com base") {
		t.Error("missing strict context instruction")
	}
	if !strings.Contains(messages[2].Content, "Título: Deploy") {
		t.Error("missing retrieved context block")
	}
}

func TestBuildMessagesWithoutContext(t *testing.T) {
	messages := BuildMessages(Input{
		WorkspaceName: "Engenharia",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "qual a senha do banco?"},
		},
	})

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if !strings.Contains(messages[1].Content, "NÃO invente valores") {
		t.Error("missing anti-hallucination instruction")
	}
}

func TestBuildMessagesNoDocumentOmitsTitleRule(t *testing.T) {
	messages := BuildMessages(Input{WorkspaceName: "Engenharia"})

	if strings.Contains(messages[0].Content, "NÃO inclua o título") {
		t.Error("duplicate-title rule should only appear with a bound document")
	}
	if strings.Contains(messages[0].Content, "Documento atual") {
		t.Error("document line should only appear with a bound document")
	}
}
