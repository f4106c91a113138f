// Package prompt assembles the ordered system messages for a chat completion
// turn.
package prompt

import (
	"fmt"

	"github.com/fabi0dev/amby/pkg/llm"
)

const (
	personaBase = "Você é um assistente de IA integrado ao Amby, " +
		"uma plataforma de documentação colaborativa. " +
		"Responda sempre em português do Brasil, de forma clara, objetiva e amigável." +
		"\n\nUse o contexto da documentação apenas quando ele for relevante para a pergunta do usuário e evite respostas muito longas." +
		"\n\nIMPORTANTE SOBRE FORMATAÇÃO: o conteúdo que você gerar será convertido para HTML/Tiptap depois. Use apenas Markdown simples e estável (títulos, parágrafos, listas, negrito, itálico e links). Evite tabelas complexas, colunas alinhadas manualmente e formatos que dependam de espaçamento exato, pois podem quebrar na conversão." +
		"\n\nQuando o usuário pedir explicitamente para reorganizar, reescrever ou aplicar mudanças no documento atual (por exemplo: \"organize o texto desse documento\", \"reescreva esse documento\", \"aplique no documento\"), você deve:" +
		"\n1. Responder primeiro com uma explicação curta do que foi feito." +
		"\n2. Em seguida, gerar a VERSÃO COMPLETA do documento em Markdown, dentro de um bloco de código delimitado por ```DOCUMENT_MARKDOWN e ```." +
		"\n3. Não adicione comentários, texto extra ou outro conteúdo fora desse bloco, além da explicação inicial. O bloco DOCUMENT_MARKDOWN deve conter apenas o conteúdo final do documento."

	strictContextInstruction = "Foram encontrados documentos relevantes na base de conhecimento deste workspace. " +
		"Responda APENAS com base nas informações dos documentos abaixo. " +
		"Se alguma informação não estiver nos documentos, diga claramente que ela não está documentada aqui."

	noContextInstruction = "Nenhum documento relevante foi encontrado na base de conhecimento deste workspace " +
		"para a pergunta atual. Você pode dar orientações genéricas, mas NÃO invente valores " +
		"específicos (como usuário, senha, URLs internas, tokens ou credenciais). " +
		"Se precisar citar informações específicas e elas não estiverem documentadas, diga apenas " +
		"que isso não está registrado na documentação deste workspace."
)

// Input carries everything the assembler needs for one turn. DocumentMarkdown
// is the full current document body, set only on edit turns; ContextBlock is
// the retrieved excerpt block, set only on non-edit turns with matches.
type Input struct {
	WorkspaceName    string
	DocumentTitle    string
	EditRequest      bool
	DocumentMarkdown string
	ContextBlock     string
	History          []llm.Message
}

// BuildMessages returns the complete ordered message list: persona first,
// then the branch-specific system messages, then the raw conversation
// history.
func BuildMessages(in Input) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: personaMessage(in.WorkspaceName, in.DocumentTitle)},
	}

	switch {
	case in.EditRequest && in.DocumentMarkdown != "":
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: editModeMessage(in.DocumentTitle, in.DocumentMarkdown),
		})
	case in.ContextBlock != "":
		messages = append(messages,
			llm.Message{Role: llm.RoleSystem, Content: strictContextInstruction},
			llm.Message{Role: llm.RoleSystem, Content: in.ContextBlock},
		)
	default:
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: noContextInstruction})
	}

	return append(messages, in.History...)
}

func personaMessage(workspaceName, documentTitle string) string {
	prompt := personaBase

	if documentTitle != "" {
		prompt += fmt.Sprintf(
			"\n4. NÃO inclua o título do documento (%q) como heading (ex.: # %s) dentro do bloco. O título do documento é armazenado separadamente; o conteúdo do bloco deve começar pelas seções do corpo (ex.: ## Visão geral), sem duplicar o título.",
			documentTitle, documentTitle,
		)
	}

	if workspaceName != "" {
		prompt += fmt.Sprintf("\n\nWorkspace atual: %q.", workspaceName)
	}

	if documentTitle != "" {
		prompt += fmt.Sprintf("\nDocumento atual: %q. Use isso como contexto quando fizer sentido.", documentTitle)
	}

	return prompt
}

func editModeMessage(documentTitle, markdown string) string {
	return "Você tem acesso ao conteúdo COMPLETO do documento atual deste workspace. " +
		"Use esse conteúdo como base principal para aplicar as alterações pedidas pelo usuário." +
		"\n\nTítulo do documento: " + documentTitle +
		"\n\nConteúdo atual em Markdown:\n\n```markdown\n" + markdown + "\n```"
}
