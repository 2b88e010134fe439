package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Assistant personalities. Frontend aliases map onto the canonical four.
var personalityAliases = map[string]string{
	"friendly":   "friendly",
	"gordon":     "ramsay",
	"ramsay":     "ramsay",
	"scientific": "science",
	"science":    "science",
	"grandma":    "grandma",
}

var personalityPrompts = map[string]string{
	"friendly": "You are a helpful and friendly cooking assistant. Give clear, encouraging advice about cooking and recipes. Be warm and supportive.",
	"ramsay":   `You are Gordon Ramsay. Be passionate, direct, and demanding about cooking excellence. Use strong language when appropriate. Be harsh but constructive. Use phrases like "Right, let's get this sorted!" and "Do it properly!"`,
	"science":  "You are a food scientist. Explain the chemistry and science behind cooking techniques. Be precise, educational, and use scientific terminology. Reference molecular gastronomy and food chemistry principles.",
	"grandma":  `You are a warm, caring grandmother sharing cooking wisdom. Be encouraging, share tips from experience, and add personal touches. Use phrases like "Oh dear" and "sweetheart". Be nurturing and patient.`,
}

// ErrUnknownPersonality is returned for personalities outside the alias map.
var ErrUnknownPersonality = errors.New("unknown personality")

// ResolvePersonality maps a requested personality (including frontend
// aliases) to its canonical name.
func ResolvePersonality(name string) (string, error) {
	canonical, ok := personalityAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", ErrUnknownPersonality
	}
	return canonical, nil
}

// chatTemperature picks the sampling temperature per personality.
// Ramsay runs hot, the scientist stays measured.
func chatTemperature(personality string) float64 {
	switch personality {
	case "ramsay":
		return 0.9
	case "science":
		return 0.7
	default:
		return 0.8
	}
}

const chatMaxTokens = 1000

// chatHistoryRuneLimit caps each flattened history turn so a long
// conversation cannot blow the prompt budget. Rune-based: Korean and
// emoji-heavy messages must not be cut mid-character.
const chatHistoryRuneLimit = 2000

// Chat sends a conversation turn to the LLM under the given personality.
// personality must already be canonical (see ResolvePersonality).
// History is flattened into the prompt oldest-first.
func Chat(ctx context.Context, personality string, history []ChatMessage, message string) (string, error) {
	system, ok := personalityPrompts[personality]
	if !ok {
		return "", ErrUnknownPersonality
	}

	IncrChatRequests()

	resp, err := cfg.LLMClient.Complete(ctx, system, flattenHistory(history, message),
		llm.WithChatTemperature(chatTemperature(personality)),
		llm.WithChatMaxTokens(chatMaxTokens),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// flattenHistory renders prior turns and the current message as a single
// prompt, oldest-first. Each prior turn is capped at chatHistoryRuneLimit
// runes.
func flattenHistory(history []ChatMessage, message string) string {
	var sb strings.Builder
	for _, msg := range history {
		content := TruncateRunes(msg.Content, chatHistoryRuneLimit, "...")
		switch msg.Role {
		case "assistant":
			fmt.Fprintf(&sb, "Assistant: %s\n", content)
		default:
			fmt.Fprintf(&sb, "User: %s\n", content)
		}
	}
	fmt.Fprintf(&sb, "User: %s", message)
	return sb.String()
}
