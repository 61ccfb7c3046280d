// Package gemini implements the sourcing advisor on Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/formul8/sourcing"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// snapshotContextLimit caps how many stored supplier pages are included in
// the prompt.
const snapshotContextLimit = 10

// Ensure Advisor implements sourcing.Advisor at compile time.
var _ sourcing.Advisor = (*Advisor)(nil)

// Advisor implements sourcing.Advisor using Google Gemini, grounding
// answers in the knowledge base and scraped supplier pages.
type Advisor struct {
	client    *genai.Client
	knowledge sourcing.KnowledgeService
	snapshots sourcing.SnapshotService
}

// NewAdvisor creates a new Advisor. The snapshot service may be nil when
// no supplier data has been scraped yet.
func NewAdvisor(client *genai.Client, knowledge sourcing.KnowledgeService, snapshots sourcing.SnapshotService) *Advisor {
	return &Advisor{client: client, knowledge: knowledge, snapshots: snapshots}
}

// Ask answers a natural language sourcing question.
func (a *Advisor) Ask(ctx context.Context, question string) (*sourcing.Answer, error) {
	if question == "" {
		return nil, sourcing.Errorf(sourcing.EINVALID, "question required")
	}

	start := time.Now()

	kbContext, confidence, err := a.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	prompt := BuildUserPrompt(kbContext, question)

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, sourcing.Errorf(sourcing.EINTERNAL, "gemini returned nil result")
	}

	return &sourcing.Answer{
		Text:       result.Text(),
		Confidence: confidence,
		Duration:   time.Since(start),
	}, nil
}

// buildContext assembles the knowledge base and supplier page context and
// estimates answer confidence from how much of it is populated.
func (a *Advisor) buildContext(ctx context.Context) (string, float64, error) {
	var sections []string
	confidence := 0.3

	categories, err := a.knowledge.SupplierCategories(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(categories) > 0 {
		sections = append(sections, "# Supplier categories\n\n"+sourcing.FormatCategories(categories))
		confidence += 0.15
	}

	standards, err := a.knowledge.QualityStandards(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(standards) > 0 {
		sections = append(sections, "# Quality standards\n\n"+sourcing.FormatStandards(standards))
		confidence += 0.15
	}

	strategies, err := a.knowledge.SourcingStrategies(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(strategies) > 0 {
		sections = append(sections, "# Sourcing strategies\n\n"+sourcing.FormatStrategies(strategies))
		confidence += 0.1
	}

	requirements, err := a.knowledge.ComplianceRequirements(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(requirements) > 0 {
		sections = append(sections, "# Compliance requirements\n\n"+sourcing.FormatCompliance(requirements))
		confidence += 0.1
	}

	if a.snapshots != nil {
		snaps, err := a.snapshots.FindSnapshots(ctx, sourcing.SnapshotFilter{Limit: snapshotContextLimit})
		if err != nil {
			return "", 0, err
		}
		if len(snaps) > 0 {
			sections = append(sections, "# Scraped supplier pages\n\n"+sourcing.FormatSnapshots(snaps))
			confidence += 0.15
		}
	}

	if confidence > 0.95 {
		confidence = 0.95
	}

	return strings.Join(sections, "\n\n"), confidence, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a cannabis industry sourcing advisor. Answer questions about supplier selection, quality standards, compliance, and sourcing strategy using only the provided context. Flag regulatory considerations where relevant. If the context does not cover the question, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing context and question.
func BuildUserPrompt(kbContext, question string) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	sb.WriteString(kbContext)
	sb.WriteString("\n</context>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
