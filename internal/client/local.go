package client

import (
	"context"
	"errors"
	"sync"
)

// ErrActiveCommunitiesUnknown is returned by ActiveCommunityIDs before the
// host has provided the reachable set. Callers must not mistake it for an
// empty set: reconciliation against it would purge every stored community.
var ErrActiveCommunitiesUnknown = errors.New("active communities have not been provided")

// LocalSession is a channel-backed PlatformSession. The host process that
// owns the real platform connection pushes events in with Publish and
// reads replies from Outbox; the engine consumes it like any other
// session. Tests use it the same way.
type LocalSession struct {
	mutex     sync.Mutex
	closed    bool
	events    chan MessageEvent
	outbox    chan OutboundMessage
	seeded    bool
	active    []int64
	activeErr error
}

// OutboundMessage is a reply the engine asked the session to deliver.
type OutboundMessage struct {
	ChannelID int64
	Content   string
}

func NewLocalSession(buffer int) *LocalSession {
	if buffer <= 0 {
		buffer = 64
	}

	return &LocalSession{
		events: make(chan MessageEvent, buffer),
		outbox: make(chan OutboundMessage, buffer),
	}
}

// Publish feeds one message event into the session. It reports false when
// the session is already closed or the buffer is full; it never blocks, so
// a stalled consumer cannot wedge Close behind a pending send.
func (s *LocalSession) Publish(event MessageEvent) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	default:
		return false
	}
}

// SetActiveCommunities replaces the set returned by ActiveCommunityIDs.
// Until the first call the set is unknown, not empty.
func (s *LocalSession) SetActiveCommunities(ids []int64, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.seeded = true
	s.active = append([]int64{}, ids...)
	s.activeErr = err
}

func (s *LocalSession) Events() <-chan MessageEvent {
	return s.events
}

func (s *LocalSession) ActiveCommunityIDs(ctx context.Context) ([]int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.seeded {
		return nil, ErrActiveCommunitiesUnknown
	}

	if s.activeErr != nil {
		return nil, s.activeErr
	}

	return append([]int64{}, s.active...), nil
}

func (s *LocalSession) SendMessage(ctx context.Context, channelID int64, content string) error {
	select {
	case s.outbox <- OutboundMessage{ChannelID: channelID, Content: content}:
	default:
		// A full outbox drops the reply rather than blocking the engine.
	}

	return nil
}

// Outbox exposes replies for the host process to deliver.
func (s *LocalSession) Outbox() <-chan OutboundMessage {
	return s.outbox
}

func (s *LocalSession) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}

	return nil
}
