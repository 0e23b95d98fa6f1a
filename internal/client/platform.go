package client

import "context"

// MessageEvent is one chat message delivered by the platform connection.
// CommunityID is 0 when the message arrived outside any community (direct
// messages); such events are never counted.
type MessageEvent struct {
	CommunityID       int64
	ChannelID         int64
	AuthorID          string
	AuthorDisplayName string
	PlatformMessageID int64
	Content           string
	IsBotAuthor       bool
}

// PlatformSession is the chat-platform connection. The engine consumes its
// ordered event stream and uses it to discover which communities are still
// reachable and to send replies; connecting and authenticating are the
// session's own concern.
type PlatformSession interface {
	// Events returns the ordered message stream. The channel closes when
	// the session shuts down.
	Events() <-chan MessageEvent

	// ActiveCommunityIDs returns the communities currently reachable via
	// this session. Used by startup reconciliation, which purges every
	// stored community absent from the result, so implementations must
	// return an error while the set is not yet known rather than an
	// empty slice.
	ActiveCommunityIDs(ctx context.Context) ([]int64, error)

	// SendMessage delivers reply text to a channel.
	SendMessage(ctx context.Context, channelID int64, content string) error

	Close() error
}
