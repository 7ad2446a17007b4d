package domain

import (
	"chat-relay/errors"
	"fmt"
	"strings"
)

// Role is the capability a node holds in the relay protocol.
type Role int

const (
	RolePeer Role = iota
	RoleAuthoritative
)

func (r Role) String() string {
	switch r {
	case RoleAuthoritative:
		return "authoritative"
	default:
		return "peer"
	}
}

// Mode is fixed per deployment and never mixed within a session.
type Mode int

const (
	// ModeBroadcastAll lets every participant broadcast directly; the transport
	// buffers and replays the history to late joiners.
	ModeBroadcastAll Mode = iota
	// ModeRegisterForward routes every envelope through the authoritative node.
	ModeRegisterForward
)

func (m Mode) String() string {
	switch m {
	case ModeRegisterForward:
		return "forward"
	default:
		return "broadcast"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "broadcast", "legacy", "a":
		return ModeBroadcastAll, nil
	case "forward", "b", "":
		return ModeRegisterForward, nil
	default:
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidMode, s)
	}
}

// RoleFor returns the role a node takes for the given mode.
// Only a hosting node in register-then-forward mode is authoritative.
func RoleFor(mode Mode, hosting bool) Role {
	if hosting && mode == ModeRegisterForward {
		return RoleAuthoritative
	}
	return RolePeer
}

// Palette of color tags a participant picks from once per session.
var Palette = []string{"D91E18", "AEA8D3", "26A65B", "E87E04"}

// PickColor chooses a palette entry; intn is typically rand.IntN.
func PickColor(intn func(n int) int) string {
	return Palette[intn(len(Palette))]
}
