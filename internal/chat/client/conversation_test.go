package client

import (
	"testing"
	"time"

	"alumni_network_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func TestGroupByPartner(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []domain.Message{
		{ID: 3, SenderID: 1, ReceiverID: 2, Content: "to bob", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 1, SenderID: 2, ReceiverID: 1, Content: "from bob", CreatedAt: base},
		{ID: 2, SenderID: 3, ReceiverID: 1, Content: "from carol", CreatedAt: base.Add(time.Minute)},
		{ID: 4, SenderID: 1, ReceiverID: 1, Content: "note to self", CreatedAt: base.Add(3 * time.Minute)},
	}

	conv := GroupByPartner(1, msgs)

	assert.Len(t, conv, 3)
	bob := conv.Thread(2)
	assert.Len(t, bob, 2)
	// threads are ordered oldest first regardless of input order
	assert.Equal(t, int64(1), bob[0].ID)
	assert.Equal(t, int64(3), bob[1].ID)

	assert.Len(t, conv.Thread(3), 1)
	// a self message files under the user's own id
	assert.Len(t, conv.Thread(1), 1)
}

func TestConversationsMergeDeduplicatesByID(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := domain.Message{ID: 7, SenderID: 2, ReceiverID: 1, Content: "hi", CreatedAt: base}

	conv := GroupByPartner(1, []domain.Message{msg})

	// live delivery of a message already replayed in history
	assert.False(t, conv.Merge(1, msg))
	assert.Len(t, conv.Thread(2), 1)

	next := domain.Message{ID: 8, SenderID: 2, ReceiverID: 1, Content: "again", CreatedAt: base.Add(time.Minute)}
	assert.True(t, conv.Merge(1, next))
	assert.Len(t, conv.Thread(2), 2)
}

func TestConversationsMergeKeepsOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	conv := make(Conversations)

	// frames can arrive out of order across a reconnect
	assert.True(t, conv.Merge(1, domain.Message{ID: 2, SenderID: 2, ReceiverID: 1, CreatedAt: base.Add(time.Minute)}))
	assert.True(t, conv.Merge(1, domain.Message{ID: 1, SenderID: 1, ReceiverID: 2, CreatedAt: base}))

	thread := conv.Thread(2)
	assert.Equal(t, int64(1), thread[0].ID)
	assert.Equal(t, int64(2), thread[1].ID)
}
