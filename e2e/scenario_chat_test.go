package e2e

import (
	"chat-relay/domain"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const tick = 10 * time.Millisecond

type ChatScenarioSuite struct {
	BaseRelaySuite
}

func TestChatScenarioSuite(t *testing.T) {
	suite.Run(t, new(ChatScenarioSuite))
}

// S hosts, A joins, A says hello: every display sees A joined then A hello.
func (s *ChatScenarioSuite) TestForward_Host_Join_Hello() {
	s.Step("Server hosts")
	server := s.Host("Server", "D91E18", domain.ModeRegisterForward, 8)
	s.RequireLines(server, "Server has joined the Server.")

	s.Step("Alice joins and says hello")
	alice := s.Join(server, "Alice", "26A65B", domain.ModeRegisterForward)
	s.Require().NoError(alice.SubmitMessage("hello"))

	s.Step("Both displays show the join then the message")
	s.RequireLines(server, "Server has joined the Server.", "Alice has joined the Server.", "Alice: hello")
	s.RequireLines(alice, "Alice has joined the Server.", "Alice: hello")

	join := alice.Transcript.Envelopes()[0]
	s.Equal("26A65B", join.SenderColor)
	s.True(join.IsNotification)

	// The forwarded envelope is the one Alice sent, untouched
	s.Equal(alice.Transcript.Envelopes()[1], server.Transcript.Envelopes()[2])
}

// Every envelope reaches every display exactly once, the sender's included.
func (s *ChatScenarioSuite) TestForward_Broadcast_Completeness() {
	server := s.Host("Server", "D91E18", domain.ModeRegisterForward, 8)
	names := []string{"Alice", "Bob", "Carol"}
	participants := lo.Map(names, func(name string, i int) Participant {
		p := s.Join(server, name, domain.Palette[(i+1)%len(domain.Palette)], domain.ModeRegisterForward)
		s.RequireEventuallyRegistered(server, i+2)
		return p
	})

	s.Step("Everyone speaks once")
	for _, p := range participants {
		s.Require().NoError(p.SubmitMessage(fmt.Sprintf("hi from %s", p.Name())))
	}
	s.Require().NoError(server.SubmitMessage("hi from Server"))

	s.Step("Every display has every message once")
	all := append(lo.Map(names, func(n string, _ int) string { return fmt.Sprintf("%s: hi from %s", n, n) }),
		"Server: hi from Server")
	for _, p := range append(participants, server) {
		s.Require().Eventuallyf(func() bool {
			lines := p.Transcript.Lines()
			return lo.EveryBy(all, func(line string) bool { return lo.Count(lines, line) == 1 })
		}, s.Config.Timeout, tick, "%s saw %q", p.Name(), p.Transcript.Lines())
	}

	s.Step("Every display shows them in the order the server relayed them")
	chat := func(p Participant) []string {
		return lo.Filter(p.Transcript.Lines(), func(line string, _ int) bool { return strings.Contains(line, ": hi from ") })
	}
	relayed := chat(server)
	for _, p := range participants {
		s.Truef(slices.Equal(relayed, chat(p)), "%s saw %q, server relayed %q", p.Name(), chat(p), relayed)
	}
}

// A client quitting is announced by the server, once.
func (s *ChatScenarioSuite) TestForward_Quit_Is_Announced_Once() {
	server := s.Host("Server", "D91E18", domain.ModeRegisterForward, 8)
	alice := s.Join(server, "Alice", "26A65B", domain.ModeRegisterForward)
	bob := s.Join(server, "Bob", "AEA8D3", domain.ModeRegisterForward)
	s.RequireEventuallyRegistered(server, 3)

	s.Step("Alice quits")
	s.Require().NoError(alice.Quit())

	s.Step("Server and Bob see her leave")
	s.Require().Eventually(func() bool {
		return lo.Count(bob.Transcript.Lines(), "Alice has left the Server.") == 1 &&
			lo.Count(server.Transcript.Lines(), "Alice has left the Server.") == 1
	}, s.Config.Timeout, tick)
	s.NotContains(alice.Transcript.Lines(), "Alice has left the Server.")
}

// In broadcast-all mode a late joiner is replayed the history first.
func (s *ChatScenarioSuite) TestBroadcast_Late_Joiner_Gets_History() {
	s.Step("Server hosts and talks alone")
	server := s.Host("Server", "D91E18", domain.ModeBroadcastAll, 8)
	s.Require().NoError(server.SubmitMessage("anyone?"))
	s.RequireLines(server, "Server has joined the Server.", "Server: anyone?")

	s.Step("Alice joins late")
	alice := s.Join(server, "Alice", "26A65B", domain.ModeBroadcastAll)
	s.RequireLines(alice, "Server has joined the Server.", "Server: anyone?", "Alice has joined the Server.")
	s.RequireLines(server, "Server has joined the Server.", "Server: anyone?", "Alice has joined the Server.")

	s.Step("Alice talks, then quits")
	s.Require().NoError(alice.SubmitMessage("hello"))
	s.Require().NoError(alice.Quit())
	s.RequireLines(server,
		"Server has joined the Server.",
		"Server: anyone?",
		"Alice has joined the Server.",
		"Alice: hello",
		"Alice has left the Server.")

	s.Step("Bob joins later still and is replayed everything")
	bob := s.Join(server, "Bob", "AEA8D3", domain.ModeBroadcastAll)
	s.RequireLines(bob,
		"Server has joined the Server.",
		"Server: anyone?",
		"Alice has joined the Server.",
		"Alice: hello",
		"Alice has left the Server.",
		"Bob has joined the Server.")
}

// RequireEventuallyRegistered waits until the host holds count sessions
func (s *ChatScenarioSuite) RequireEventuallyRegistered(host Participant, count int) {
	s.Require().Eventually(func() bool {
		sessions, err := host.Sessions(s.T().Context())
		return err == nil && len(sessions) == count
	}, s.Config.Timeout, tick)
}
