package client

import (
	"sort"

	"alumni_network_service/internal/chat/domain"
)

// Conversations is the client-side projection of the message history: one
// ordered slice per conversation partner. A message sent to oneself files
// under the user's own id.
type Conversations map[int64][]domain.Message

// GroupByPartner splits the history replay into per-partner threads, each
// ordered oldest first.
func GroupByPartner(selfID int64, msgs []domain.Message) Conversations {
	conv := make(Conversations)
	for _, m := range msgs {
		partner := m.PartnerID(selfID)
		conv[partner] = append(conv[partner], m)
	}
	for partner := range conv {
		sortThread(conv[partner])
	}
	return conv
}

// Merge folds one live message into the projection. A message whose id is
// already present in the partner's thread is dropped, which absorbs the
// overlap between the history replay and live delivery as well as the
// echo of a self-addressed message.
func (c Conversations) Merge(selfID int64, msg domain.Message) bool {
	partner := msg.PartnerID(selfID)
	for _, existing := range c[partner] {
		if existing.ID == msg.ID {
			return false
		}
	}
	c[partner] = append(c[partner], msg)
	sortThread(c[partner])
	return true
}

// Thread returns the conversation with one partner, oldest first.
func (c Conversations) Thread(partnerID int64) []domain.Message {
	return c[partnerID]
}

func sortThread(msgs []domain.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
}
