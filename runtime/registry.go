package runtime

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Registry tracks the sessions of the connections that announced themselves.
// It is owned by the relay and only touched from the dispatcher loop,
// hence no locking.
type Registry struct {
	sessions []domain.Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{now: time.Now}
}

// Register records a session for connectionID.
// The first registration wins: a second one for the same connection is refused.
func (r *Registry) Register(connectionID domain.ConnectionID, displayName, colorTag string) (domain.Session, error) {
	if existing, ok := r.Find(connectionID); ok {
		return existing, fmt.Errorf("%w: connection %d is already %q",
			errors.ErrDuplicateConnection, connectionID, existing.DisplayName)
	}
	session := domain.Session{
		ConnectionID: connectionID,
		DisplayName:  displayName,
		ColorTag:     colorTag,
		RegisteredAt: r.now(),
	}
	r.sessions = append(r.sessions, session)
	return session, nil
}

// Remove deletes and returns the session of connectionID.
func (r *Registry) Remove(connectionID domain.ConnectionID) (domain.Session, error) {
	_, index, ok := lo.FindIndexOf(r.sessions, func(s domain.Session) bool {
		return s.ConnectionID == connectionID
	})
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: connection %d", errors.ErrSessionNotFound, connectionID)
	}
	session := r.sessions[index]
	r.sessions = slices.Delete(r.sessions, index, index+1)
	return session, nil
}

func (r *Registry) Find(connectionID domain.ConnectionID) (domain.Session, bool) {
	return lo.Find(r.sessions, func(s domain.Session) bool {
		return s.ConnectionID == connectionID
	})
}

// All returns the sessions in registration order.
func (r *Registry) All() []domain.Session {
	return slices.Clone(r.sessions)
}

func (r *Registry) Len() int {
	return len(r.sessions)
}
