package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
	"github.com/horo-ai/horo/pkg/logger"
)

// QAPipeline is responsible for generating an answer based on a question and
// retrieved fragments, using a compact synthesis prompt that stuffs all
// fragments into a single LLM call.
type QAPipeline struct {
	llm interfaces.LLM
	log *logger.Logger
}

// NewQAPipeline creates a new QAPipeline.
func NewQAPipeline(llm interfaces.LLM, log *logger.Logger) *QAPipeline {
	return &QAPipeline{
		llm: llm,
		log: log,
	}
}

// Run takes a question and a list of fragments, builds a prompt, and calls
// the LLM to generate an answer.
func (p *QAPipeline) Run(ctx context.Context, question string, fragments []*schema.Result) (string, error) {
	p.log.Info(fmt.Sprintf("Building prompt with %d fragments", len(fragments)))

	prompt := p.buildPrompt(question, fragments)

	p.log.Info("Sending prompt to LLM to generate answer...")
	answer, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		p.log.Error(fmt.Sprintf("LLM failed to generate answer: %v", err))
		return "", err
	}

	p.log.Info("Successfully generated answer from LLM.")
	return answer, nil
}

// buildPrompt constructs a compact prompt from a question and the retrieved
// context fragments. The fallback instruction deliberately uses the phrase
// "don't have information" so downstream gap detection can key on it.
func (p *QAPipeline) buildPrompt(question string, fragments []*schema.Result) string {
	var sb strings.Builder

	sb.WriteString("Based on the following context from the user's business documents, please answer the question.\n\nContext:\n")

	for i, fragment := range fragments {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("Context %d:\n%s\n", i+1, fragment.Document.Text))
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	sb.WriteString("Answer using only the context above. If the context does not contain the answer, reply that you don't have information about this topic.")

	return sb.String()
}
