package main

import (
	"chat-relay/domain"
	"chat-relay/infrastructure/grpc/client"
	"chat-relay/ui"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run prints the sessions of a running relay, then follows its chat.
func run() error {
	// 1. Load config
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	if !config.Colours {
		color.Disable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to the admin service
	conn, err := grpc.NewClient(config.AdminAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", config.AdminAddr, err)
	}
	defer conn.Close()
	admin := client.NewAdminClient(conn)

	// 3. Sessions table
	sessions, err := admin.ListSessions(ctx)
	switch {
	case status.Code(err) == codes.FailedPrecondition:
		log.Warn("Relay is not authoritative, no sessions to list")
	case err != nil:
		return fmt.Errorf("list sessions: %w", err)
	default:
		renderSessions(sessions)
	}

	if !config.Watch {
		return nil
	}

	// 4. Follow the chat
	terminal := ui.NewTerminal(os.Stdout)
	err = admin.Watch(ctx, func(envelope domain.Envelope) {
		_ = terminal.Consume(ctx, envelope)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func renderSessions(sessions []domain.Session) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Connection", "Name", "Color", "Registered"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, s := range sessions {
		table.Append([]string{
			strconv.Itoa(int(s.ConnectionID)),
			color.HEX(s.ColorTag).Sprint(s.DisplayName),
			s.ColorTag,
			s.RegisteredAt.Local().Format(time.TimeOnly),
		})
	}
	table.Render()
}
