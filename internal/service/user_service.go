package service

import (
	"context"

	"github.com/campuskit/campus-auth/internal/domain"
	"github.com/campuskit/campus-auth/internal/listing"
	"github.com/campuskit/campus-auth/internal/repository"
	apperrors "github.com/campuskit/campus-auth/pkg/util"
)

// UserService serves user listings for administrative callers.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List executes a validated listing query, returning the page of users and
// the total matching count before pagination.
func (s *UserService) List(ctx context.Context, query listing.Query) ([]domain.User, int, error) {
	users, total, err := s.users.List(ctx, query)
	if err != nil {
		return nil, 0, apperrors.NewUpstream(err)
	}
	return users, total, nil
}
