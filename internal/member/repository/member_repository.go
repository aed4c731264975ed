package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"alumni_network_service/internal/member/domain"
	errprocess "alumni_network_service/pkg/err"
)

// ErrMemberNotFound returned when no user matches the query.
var ErrMemberNotFound = errors.New("no member found with given criteria")

// MemberRepository definition get platform user info
type MemberRepository interface {
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
}

type memberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository create a MemberRepository
func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	queryStr := "SELECT id, username, first_name, last_name, is_alumni, is_student FROM users WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if memberQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *memberQuery.ID)
		paramCount++
	}
	if memberQuery.Username != nil {
		queryStr += fmt.Sprintf(" AND username = $%d", paramCount)
		params = append(params, *memberQuery.Username)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var member domain.Member
	err := row.Scan(&member.ID, &member.Username, &member.FirstName, &member.LastName, &member.IsAlumni, &member.IsStudent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, errprocess.Set(fmt.Sprintf("query users failed: %v", err))
	}

	return &member, nil
}
