package service

import (
	"context"
	"time"

	"github.com/mhoudali/interim_app/internal/hash"
	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

type UpdateUserInput struct {
	LastName   *string
	FirstName  *string
	Phone      *string
	Skills     *[]string
	Experience *string
	CVURL      *string
	Password   *string
}

func (s *UserService) List(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetUser(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "user_id", id)

	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Skills != nil {
		user.Skills = *in.Skills
	}
	if in.Experience != nil {
		user.Experience = *in.Experience
	}
	if in.CVURL != nil {
		user.CVURL = *in.CVURL
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		pwHash, err := hash.HashPassword(*in.Password)
		if err != nil {
			l.Error("update_failed", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		user.PasswordHash = pwHash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		l.Error("update_failed", "error", err)
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteUser(ctx, id)
}

// Profile returns the user plus their application count.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, int64, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.Repo.CountApplications(ctx, repo.ApplicationFilter{UserID: id})
	if err != nil {
		return nil, 0, err
	}

	return user, count, nil
}
