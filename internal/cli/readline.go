package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// ReadlinePrompter построчный ввод через readline
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter создает prompter. История ввода не сохраняется: в ней были бы контактные данные.
func NewReadlinePrompter(in io.ReadCloser, out io.Writer) (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:                  in,
		Stdout:                 out,
		InterruptPrompt:        "^C",
		EOFPrompt:              "q",
		DisableAutoSaveHistory: true,
		HistoryLimit:           -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Prompt печатает label и читает строку. Ctrl+C и Ctrl+D возвращают ErrAborted.
func (p *ReadlinePrompter) Prompt(label string) (string, error) {
	p.rl.SetPrompt(label)
	line, err := p.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return line, nil
}

// Close освобождает терминал
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}
