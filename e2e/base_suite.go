package e2e

import (
	"chat-relay/domain"
	"chat-relay/node"
	"chat-relay/projection"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// Participant is a running node plus what its display showed.
type Participant struct {
	*node.Node
	Transcript *projection.Transcript
}

type BaseRelaySuite struct {
	suite.Suite
	Config Config
	nodes  []*node.Node
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseRelaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// TearDownTest stops the nodes of the test, last started first
func (s *BaseRelaySuite) TearDownTest() {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		s.nodes[i].Stop()
	}
	s.nodes = nil
}

// Step prints a colorized header for a scenario step
func (s *BaseRelaySuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Start runs a node for name with a fixed color, so transcripts are predictable
func (s *BaseRelaySuite) Start(name, colorTag string, mode domain.Mode) Participant {
	log := logs.GetLoggerFromString(s.Config.LogLevel).With("test", s.T().Name())
	n := node.New(log, node.Config{
		PlayerName:           name,
		Color:                colorTag,
		Mode:                 mode,
		BufferSize:           128,
		ConnectionBufferSize: 128,
		RestartInterval:      50 * time.Millisecond,
		SinkTimeout:          time.Second,
	})
	transcript := projection.NewTranscript(name)
	n.Subscribe(transcript)
	n.Start(context.Background())
	s.nodes = append(s.nodes, n)
	return Participant{Node: n, Transcript: transcript}
}

// Host starts a node and makes it host on a free port
func (s *BaseRelaySuite) Host(name, colorTag string, mode domain.Mode, capacity int) Participant {
	p := s.Start(name, colorTag, mode)
	s.Require().NoError(p.RequestHost(context.Background(), 0, capacity))
	return p
}

// Join starts a node and connects it to host
func (s *BaseRelaySuite) Join(host Participant, name, colorTag string, mode domain.Mode) Participant {
	p := s.Start(name, colorTag, mode)
	s.Require().NoError(p.RequestConnect(context.Background(), "127.0.0.1", host.Port()))
	return p
}

// RequireLines waits until the display showed exactly lines
func (s *BaseRelaySuite) RequireLines(p Participant, lines ...string) {
	s.Require().Eventuallyf(func() bool {
		return slices.Equal(p.Transcript.Lines(), lines)
	}, s.Config.Timeout, 10*time.Millisecond,
		"%s saw %q, want %q", p.Name(), p.Transcript.Lines(), lines)
}
