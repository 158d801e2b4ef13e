package ai

import (
	"context"
	"fmt"
	"strings"
)

// MockAssistant returns canned Spanish commentary without any network call.
// Used in dev and tests when no assistant endpoint is configured.
type MockAssistant struct {
	ModelVersion string
}

func (m MockAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines := strings.Count(prompt, "\n") + 1
	return fmt.Sprintf(
		"**Análisis General (%s)**\n\nResumen generado automáticamente a partir de %d líneas de contexto. "+
			"Configure ASSISTANT_BASE_URL para obtener comentarios reales.",
		m.ModelVersion, lines), nil
}
