// Package sourcing provides supplier discovery and evaluation for the
// cannabis industry. It loads a seed registry of supplier websites, scrapes
// them for structured profiles, stores suppliers and page snapshots, answers
// natural language sourcing questions against a semantic knowledge base, and
// exposes the results over a CLI and an HTTP API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, turtle/, gemini/).
package sourcing
