package main

import (
	"chat-relay/domain"
	"chat-relay/infrastructure/grpc/adminpb"
	"chat-relay/infrastructure/grpc/server"
	"chat-relay/node"
	"chat-relay/ui"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the node, the terminal display and the optional admin service,
// then reads chat lines from stdin until /quit, end of input or a signal.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	mode, err := domain.ParseMode(config.Mode)
	if err != nil {
		return err
	}

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Node & display
	n := node.New(log, node.Config{
		PlayerName:           config.PlayerName,
		Mode:                 mode,
		BufferSize:           config.BufferSize,
		ConnectionBufferSize: config.ConnectionBufferSize,
		RestartInterval:      config.RestartInterval,
		MetricInterval:       config.MetricInterval,
		SinkTimeout:          config.SinkTimeout,
	})
	n.Subscribe(ui.NewTerminal(os.Stdout))
	// The node outlives the signal context so Quit can still announce the leave.
	n.Start(context.Background())
	defer n.Stop()

	// 4. Host or join
	switch config.Role {
	case roleHost:
		err = n.RequestHost(ctx, config.Port, config.Capacity)
	case roleJoin:
		err = n.RequestConnect(ctx, config.Address, config.Port)
	default:
		err = fmt.Errorf("unknown ROLE %q, expected %s or %s", config.Role, roleHost, roleJoin)
	}
	if err != nil {
		return err
	}
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(
		fmt.Sprintf("  %s (%s, %s mode), type %s to leave  ", config.PlayerName, config.Role, mode, ui.QuitCommand)))

	// 5. Admin service
	errChan := make(chan error, 1)
	var admin *grpc.Server
	if config.AdminPort > 0 {
		admin, err = startAdmin(log, n, config.AdminPort, config.ConnectionBufferSize, errChan)
		if err != nil {
			return err
		}
	}

	// 6. Chat until quit, signal or error
	inputDone := make(chan error, 1)
	go func() { inputDone <- ui.ReadLines(ctx, os.Stdin, os.Stderr, n.SubmitMessage) }()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-inputDone:
		if err != nil {
			log.Warn("Input closed", "error", err)
		}
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	if err := n.Quit(); err != nil {
		log.Debug("Quit", "error", err)
	}
	if admin != nil {
		// Watch streams only end with their client.
		admin.Stop()
	}
	log.Info("Program stopped cleanly")
	return nil
}

func startAdmin(log *slog.Logger, n *node.Node, port, bufferSize int, errChan chan<- error) (*grpc.Server, error) {
	address := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s := grpc.NewServer()
	adminpb.RegisterAdminServiceServer(s, server.NewAdminServer(log, n, bufferSize))
	go func() {
		log.Info("Starting admin gRPC server", "address", address)
		if err := s.Serve(listener); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	return s, nil
}
