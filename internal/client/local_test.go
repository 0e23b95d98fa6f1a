package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LocalSession_ActiveCommunityIDs_unknownUntilSeeded(t *testing.T) {
	session := NewLocalSession(4)

	_, err := session.ActiveCommunityIDs(context.Background())
	require.ErrorIs(t, err, ErrActiveCommunitiesUnknown)

	session.SetActiveCommunities([]int64{7, 9}, nil)
	ids, err := session.ActiveCommunityIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{7, 9}, ids)

	// An explicitly empty set is a valid answer, unlike no answer.
	session.SetActiveCommunities(nil, nil)
	ids, err = session.ActiveCommunityIDs(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func Test_LocalSession_Publish_neverBlocks(t *testing.T) {
	session := NewLocalSession(1)

	require.True(t, session.Publish(MessageEvent{PlatformMessageID: 1}))

	// A full buffer drops instead of blocking, so Close stays reachable
	// even with no consumer.
	require.False(t, session.Publish(MessageEvent{PlatformMessageID: 2}))
	require.NoError(t, session.Close())

	require.False(t, session.Publish(MessageEvent{PlatformMessageID: 3}))

	event, ok := <-session.Events()
	require.True(t, ok)
	require.Equal(t, int64(1), event.PlatformMessageID)

	_, ok = <-session.Events()
	require.False(t, ok)
}
