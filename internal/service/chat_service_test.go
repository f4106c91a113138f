package service

import (
	"errors"
	"testing"

	"github.com/fabi0dev/amby/internal/constant"
	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/pkg/serverutils"
	"github.com/fabi0dev/amby/pkg/llm"
)

func TestToLLMMessages(t *testing.T) {
	inputs := []dto.ChatMessageInput{
		{Role: constant.ChatRoleUser, Content: "como funciona o deploy?"},
		{Role: constant.ChatRoleAssistant, Content: "O deploy roda via pipeline."},
		{Role: constant.ChatRoleUser, Content: "e o rollback?"},
	}

	messages := toLLMMessages(inputs)

	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleUser {
		t.Errorf("message 0 role = %q", messages[0].Role)
	}
	if messages[1].Role != llm.RoleAssistant {
		t.Errorf("message 1 role = %q", messages[1].Role)
	}
	if messages[2].Content != "e o rollback?" {
		t.Errorf("message 2 content = %q", messages[2].Content)
	}
}

func TestLatestUserMessageSkipsTrailingAssistant(t *testing.T) {
	history := []dto.ChatMessageInput{
		{Role: constant.ChatRoleUser, Content: "resuma o onboarding"},
		{Role: constant.ChatRoleAssistant, Content: "Segue o resumo."},
	}

	last, ok := latestUserMessage(history)
	if !ok {
		t.Fatal("expected a user message")
	}
	if last.Content != "resuma o onboarding" {
		t.Errorf("content = %q", last.Content)
	}
}

func TestLatestUserMessageIgnoresBlankEntries(t *testing.T) {
	history := []dto.ChatMessageInput{
		{Role: constant.ChatRoleUser, Content: "qual o status do projeto?"},
		{Role: constant.ChatRoleUser, Content: "   "},
	}

	last, ok := latestUserMessage(history)
	if !ok {
		t.Fatal("expected a user message")
	}
	if last.Content != "qual o status do projeto?" {
		t.Errorf("content = %q", last.Content)
	}
}

func TestLatestUserMessageEmptyHistory(t *testing.T) {
	if _, ok := latestUserMessage(nil); ok {
		t.Error("expected no user message for an empty history")
	}

	assistantOnly := []dto.ChatMessageInput{
		{Role: constant.ChatRoleAssistant, Content: "Olá!"},
	}
	if _, ok := latestUserMessage(assistantOnly); ok {
		t.Error("expected no user message for an assistant-only history")
	}
}

func TestMapProviderErrorUnauthorized(t *testing.T) {
	err := mapProviderError(llm.ErrUnauthorized)

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != 401 {
		t.Errorf("status = %d, want 401", appErr.Status)
	}
	if appErr.Hint == "" {
		t.Error("expected a remediation hint")
	}
}

func TestMapProviderErrorUpstream(t *testing.T) {
	upstream := &llm.UpstreamError{StatusCode: 429, Message: "rate limited"}

	err := mapProviderError(upstream)

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != 502 {
		t.Errorf("status = %d, want 502", appErr.Status)
	}
	if appErr.Details != "rate limited" {
		t.Errorf("details = %q", appErr.Details)
	}
}

func TestMapProviderErrorNotConfigured(t *testing.T) {
	err := mapProviderError(llm.ErrNotConfigured)

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != 503 {
		t.Errorf("status = %d, want 503", appErr.Status)
	}
}

func TestMapProviderErrorPassthrough(t *testing.T) {
	plain := errors.New("dial tcp: timeout")

	if got := mapProviderError(plain); !errors.Is(got, plain) {
		t.Errorf("expected the original error back, got %v", got)
	}
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     string
		required string
		want     bool
	}{
		{"owner", "admin", true},
		{"owner", "owner", true},
		{"admin", "admin", true},
		{"admin", "owner", false},
		{"member", "admin", false},
		{"member", "member", true},
		{"", "member", false},
	}

	for _, c := range cases {
		if got := roleAtLeast(c.role, c.required); got != c.want {
			t.Errorf("roleAtLeast(%q, %q) = %v, want %v", c.role, c.required, got, c.want)
		}
	}
}
