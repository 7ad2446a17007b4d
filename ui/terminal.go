// Package ui is a line-based terminal display for a relay node.
package ui

import (
	"bufio"
	"chat-relay/domain"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// QuitCommand typed on its own line leaves the chat.
const QuitCommand = "/quit"

// Terminal prints delivered envelopes, the sender name in its color tag.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Consume(_ context.Context, envelope domain.Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.out, Render(envelope))
	return err
}

func Render(e domain.Envelope) string {
	name := e.SenderName
	if e.SenderColor != "" {
		name = color.HEX(e.SenderColor).Sprint(e.SenderName)
	}
	if e.IsNotification {
		return fmt.Sprintf("%s %s", name, color.FgGray.Render(e.Body))
	}
	return fmt.Sprintf("%s: %s", name, e.Body)
}

// ReadLines submits every non-empty input line until QuitCommand, the end
// of input, or ctx is done. Submission errors are reported, never fatal.
func ReadLines(ctx context.Context, in io.Reader, errOut io.Writer, submit func(text string) error) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			text := strings.TrimSpace(line)
			if text == QuitCommand {
				return nil
			}
			if text == "" {
				continue
			}
			if err := submit(text); err != nil {
				_, _ = fmt.Fprintln(errOut, color.FgRed.Render(err.Error()))
			}
		}
	}
}
