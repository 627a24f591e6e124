package ai

import (
	"fmt"
	"strings"

	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
)

const personaPrompt = `You are Dr Tara AI, the official assistant of TS Healthstore & Surgicals in Bengaluru. ` +
	`Speak warmly and professionally, and keep every reply under 80 words. ` +
	`Only discuss the store, its products, and general wellness guidance. ` +
	`If the customer asks about anything unrelated, politely steer the conversation back to the store. ` +
	`Never invent products or prices.`

const maxContentChars = 200

// BuildSystemPrompt returns the fixed persona instruction for the model.
func BuildSystemPrompt() string {
	return personaPrompt
}

// BuildContextPrompt serializes the matched products as a second system
// directive. An empty match list still produces an instruction so the model
// knows not to cite specific items.
func BuildContextPrompt(products []catalog.Product) string {
	if len(products) == 0 {
		return "No catalog products matched the customer's message. " +
			"Answer from general store knowledge and invite them to browse the store."
	}

	var b strings.Builder
	b.WriteString("Products from the store catalog relevant to the customer's message. ")
	b.WriteString("Mention them only where helpful:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s — %s (%s)\n", p.Title, truncate(p.Content, maxContentChars), p.Link)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "…"
}
