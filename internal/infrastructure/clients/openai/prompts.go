package openai

import (
	"strings"
)

const recommendationSystemPrompt = `You are a local travel guide for a tourism directory. Answer with a short, friendly list of concrete recommendations (names and one sentence each). Use plain text with one recommendation per line. Do not invent prices, phone numbers or opening hours.`

// outputText returns the first non-empty text block of a Responses API envelope
func outputText(envelope responseEnvelope) string {
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && strings.TrimSpace(content.Text) != "" {
				return content.Text
			}
		}
	}
	return envelope.OutputText
}

// cleanText strips Markdown code fences the model sometimes wraps answers in
func cleanText(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
