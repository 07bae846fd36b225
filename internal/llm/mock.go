package llm

import (
	"context"
	"errors"
)

// MockClient is a scripted Client for tests. Answers are returned in order;
// when exhausted, the last answer repeats. Err, when set, is returned instead.
type MockClient struct {
	Answers []string
	Err     error
	Prompts []string // prompts received, in call order
	calls   int
}

// Complete records the prompt and returns the next scripted answer.
func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Answers) == 0 {
		return "", errors.New("mock: no answers scripted")
	}
	i := m.calls
	if i >= len(m.Answers) {
		i = len(m.Answers) - 1
	}
	m.calls++
	return m.Answers[i], nil
}
