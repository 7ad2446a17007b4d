package ui

import (
	"bytes"
	"chat-relay/domain"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
)

func TestRender_Content_And_Notification(t *testing.T) {
	req := require.New(t)

	hello := domain.NewEnvelope("Alice", "26A65B", "hello", false)
	joined := domain.NewNotification("Alice", "26A65B", domain.JoinedBody)

	req.Equal("Alice: hello", color.ClearCode(Render(hello)))
	req.Equal("Alice has joined the Server.", color.ClearCode(Render(joined)))
}

func TestTerminal_Consume_Prints_One_Line_Per_Envelope(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	terminal := NewTerminal(&out)

	req.NoError(terminal.Consume(context.Background(), domain.NewEnvelope("Bob", "", "one", false)))
	req.NoError(terminal.Consume(context.Background(), domain.NewEnvelope("Bob", "", "two", false)))

	req.Equal("Bob: one\nBob: two\n", color.ClearCode(out.String()))
}

func TestReadLines_Submits_Until_Quit(t *testing.T) {
	req := require.New(t)
	var submitted []string
	var errOut bytes.Buffer
	in := strings.NewReader("hello\n\n  spaced  \nboom\n/quit\nnever\n")

	err := ReadLines(context.Background(), in, &errOut, func(text string) error {
		submitted = append(submitted, text)
		if text == "boom" {
			return errors.New("not connected")
		}
		return nil
	})

	req.NoError(err)
	req.Equal([]string{"hello", "spaced", "boom"}, submitted)
	req.Contains(color.ClearCode(errOut.String()), "not connected")
}

func TestReadLines_Stops_At_End_Of_Input(t *testing.T) {
	var submitted []string
	err := ReadLines(context.Background(), strings.NewReader("only"), &bytes.Buffer{}, func(text string) error {
		submitted = append(submitted, text)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"only"}, submitted)
}
