package sourcing

import (
	"context"
	"time"
)

// Answer is the advisor's response to a sourcing question.
type Answer struct {
	Text string `json:"response"`

	// Confidence in [0,1], derived from how much of the knowledge base
	// contributed context to the answer.
	Confidence float64 `json:"confidence"`

	// Duration is how long the answer took to produce.
	Duration time.Duration `json:"-"`
}

// Advisor provides natural language question answering over the knowledge
// base and stored supplier data.
type Advisor interface {
	// Ask answers a natural language sourcing question.
	Ask(ctx context.Context, question string) (*Answer, error)
}

// AgentStatus describes the running agent for status reporting.
type AgentStatus struct {
	AgentName    string           `json:"agent_name"`
	Status       string           `json:"status"`
	Knowledge    KnowledgeSummary `json:"knowledge_base"`
	Suppliers    int              `json:"suppliers"`
	LastUpdated  time.Time        `json:"last_updated"`
	Capabilities []string         `json:"capabilities"`
}

// AgentCapabilities lists what the sourcing agent can do.
func AgentCapabilities() []string {
	return []string{
		"Supplier search and evaluation",
		"Quality assessment",
		"Compliance checking",
		"Risk analysis",
		"Cost optimization",
	}
}
