package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
)

// ProfileService bridges the external user-management collaborator and
// the coach registry.
type ProfileService struct {
	users   repository.UserRepository
	coaches repository.CoachRepository
	logger  *zap.Logger
}

func NewProfileService(users repository.UserRepository, coaches repository.CoachRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{users: users, coaches: coaches, logger: logger}
}

// EnsureCoachProfile creates a Coach record for a user whose role is
// coach, with default rate and specialty, and returns the existing one
// when already present. This is the explicit, synchronous replacement
// for reactive profile creation: the role-change operation in the user
// management collaborator calls it directly.
func (s *ProfileService) EnsureCoachProfile(ctx context.Context, userID uuid.UUID) (*model.Coach, error) {
	user, err := s.users.GetByID(ctx, userID.String())
	if err != nil {
		if isNotFound(err) {
			return nil, booking.NotFound("user", userID.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role != booking.RoleCoach {
		return nil, booking.Validationf("user %s does not have the coach role", userID)
	}

	coach, err := s.coaches.GetByUserID(ctx, userID)
	if err == nil {
		return coach, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("get coach by user: %w", err)
	}

	uid := userID
	coach = &model.Coach{
		UserID:          &uid,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Specialty:       "General Tennis Coaching",
		ExperienceYears: 1,
		HourlyRate:      decimal.NewFromInt(50),
		Active:          true,
	}
	if err := s.coaches.Create(ctx, coach); err != nil {
		return nil, fmt.Errorf("create coach profile: %w", err)
	}

	s.logger.Info("coach profile created",
		zap.String("user_id", userID.String()),
		zap.String("coach_id", coach.ID.String()))
	return coach, nil
}
