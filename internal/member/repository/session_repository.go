package repository

import (
	"context"
	"strconv"

	"alumni_network_service/internal/member/domain"
	"alumni_network_service/pkg/database"
)

// SessionRepository checks login sessions kept in redis by the web
// application. The chat service only ever reads them.
type SessionRepository struct {
	sessions database.RedisRepository[domain.MemberSession]
}

// NewSessionRepository create a SessionRepository
func NewSessionRepository(sessions database.RedisRepository[domain.MemberSession]) *SessionRepository {
	return &SessionRepository{sessions: sessions}
}

// Alive reports whether userID still has a live session matching token.
// Satisfies middlewares.SessionChecker.
func (r *SessionRepository) Alive(ctx context.Context, userID int64, token string) bool {
	session, err := r.sessions.Get(ctx, sessionKey(userID))
	if err != nil {
		return false
	}
	return session.Token == token
}

func sessionKey(userID int64) string {
	return "session:user:" + strconv.FormatInt(userID, 10)
}
