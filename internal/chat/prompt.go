package chat

import (
	"fmt"
	"strings"

	"github.com/tubechat/tubechat/internal/models"
)

// answerTemplate grounds the model in the retrieved transcript context. The
// wording is fixed; only history, context, and question are substituted.
const answerTemplate = `You are a helpful assistant.
You are provided with a transcript of a YouTube video.
Answer ONLY from the provided transcript context.
If the answer is not in the context, say "Please ask related to transcript content"
If unclear, ask a clarification question.

Conversation History:
%s

Context:
%s

Question:
%s`

// renderPrompt fills the answer template. History is rendered one turn per
// line as "role: content".
func renderPrompt(history []models.ConversationTurn, context, question string) string {
	var sb strings.Builder
	for _, turn := range history {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Content)
	}
	return fmt.Sprintf(answerTemplate, strings.TrimRight(sb.String(), "\n"), context, question)
}
