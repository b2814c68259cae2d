// Package llm rewrites note headlines into a conversational register for
// the weekly digest, via an OpenAI-compatible endpoint.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/ojoconmipisto/superbot/pkg/config"
)

// Rewriter turns an editorial headline into a warmer conversational one
type Rewriter struct {
	client *openai.Client
	config config.LLMConfig
}

// quoteReplacer drops straight and typographic quotes the model tends to
// wrap results in
var quoteReplacer = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "", "«", "", "»", "")

const rewritePrompt = `Genera un titular nuevo basado en este titular:

"%s"

Requisitos:
- Debe sentirse como que alguien está conversando.
- Debe ser cálido, casual, cercano.
- Sin exagerar y sin sonar a clickbait.
- Mantén la idea original.
- NO menciones que estás reescribiendo.
- Solo regresa el titular, nada más.`

// NewRewriter creates an LLM headline rewriter
func NewRewriter(cfg config.LLMConfig) *Rewriter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Rewriter{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Rewrite returns a conversational version of the title. On any failure
// it returns the original title so a digest run never depends on the
// assistant being up.
func (r *Rewriter) Rewrite(ctx context.Context, title string) string {
	clean := CleanQuotes(title)

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.config.Model,
		Temperature: float32(r.config.Temperature),
		MaxTokens:   r.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(rewritePrompt, clean)},
		},
	})
	if err != nil {
		lgr.Printf("[WARN] headline rewrite failed, keeping original: %v", err)
		return title
	}
	if len(resp.Choices) == 0 {
		lgr.Printf("[WARN] headline rewrite returned no choices, keeping original")
		return title
	}

	rewritten := CleanQuotes(resp.Choices[0].Message.Content)
	if rewritten == "" {
		return title
	}
	return rewritten
}

// CleanQuotes strips quote characters and surrounding whitespace
func CleanQuotes(s string) string {
	return strings.TrimSpace(quoteReplacer.Replace(s))
}
