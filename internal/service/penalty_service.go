package service

import (
	"context"
	"fmt"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const sanctionCacheTTL = time.Minute

// PenaltyService computes effective time windows and owns the
// active/inactive penalty lifecycle. There is no expiry sweep: an
// active penalty with a past end date keeps its stored status and is
// excluded from "currently sanctioned" at read time.
type PenaltyService struct {
	repo        repository.PenaltyRepository
	redisClient *redis.Client
}

// NewPenaltyService creates a new PenaltyService
func NewPenaltyService(repo repository.PenaltyRepository) *PenaltyService {
	return &PenaltyService{repo: repo}
}

// SetRedisClient enables the sanction-verdict cache (optional dependency)
func (s *PenaltyService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ComputeWindow derives a penalty's effective window from a duration
// code. Finite codes add the corresponding days to the reference
// instant; permanent yields a nil end date and never expires.
func (s *PenaltyService) ComputeWindow(durationCode string, reference time.Time) (domain.PenaltyWindow, error) {
	if durationCode == domain.DurationPermanent {
		return domain.PenaltyWindow{StartDate: reference, EndDate: nil}, nil
	}
	days, ok := domain.DurationDays[durationCode]
	if !ok {
		return domain.PenaltyWindow{}, common.ErrInvalidStatus
	}
	end := reference.AddDate(0, 0, days)
	return domain.PenaltyWindow{StartDate: reference, EndDate: &end}, nil
}

// Issue creates a new active penalty. Existing active penalties for the
// same user are neither checked nor merged: overlapping penalties are
// permitted and all count toward "currently sanctioned".
func (s *PenaltyService) Issue(userID uint64, reason, category, durationCode string, issuedBy uint64) (uint64, error) {
	window, err := s.ComputeWindow(durationCode, time.Now())
	if err != nil {
		return 0, err
	}

	penalty := &domain.Penalty{
		UserID:       userID,
		Reason:       reason,
		Category:     category,
		DurationCode: durationCode,
		StartDate:    window.StartDate,
		EndDate:      window.EndDate,
		Status:       domain.PenaltyStatusActive,
		IssuedBy:     issuedBy,
	}
	if err := s.repo.Create(penalty); err != nil {
		return 0, err
	}

	s.invalidateSanctionCache(userID)
	logger.GetLogger().Info().
		Uint64("penalty_id", penalty.ID).
		Uint64("user_id", userID).
		Str("duration_code", durationCode).
		Uint64("issued_by", issuedBy).
		Msg("penalty issued")
	return penalty.ID, nil
}

// SetStatus is the only external mutation path for a penalty, used for
// manual early lifting or reinstatement. Only active and inactive are
// accepted.
func (s *PenaltyService) SetStatus(id uint64, status string) error {
	if status != domain.PenaltyStatusActive && status != domain.PenaltyStatusInactive {
		return common.ErrInvalidStatus
	}

	penalty, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return err
	}

	s.invalidateSanctionCache(penalty.UserID)
	return nil
}

// IsCurrentlySanctioned reports whether the user has at least one
// penalty whose effective window includes now. The verdict is derived
// from (status, end_date) jointly, never from status alone, and is
// cached briefly in Redis when a client is configured.
func (s *PenaltyService) IsCurrentlySanctioned(ctx context.Context, userID uint64) (bool, error) {
	key := sanctionCacheKey(userID)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, key).Result(); err == nil {
			return cached == "1", nil
		}
	}

	count, err := s.repo.CountEffective(userID, time.Now())
	if err != nil {
		return false, err
	}
	sanctioned := count > 0

	if s.redisClient != nil {
		val := "0"
		if sanctioned {
			val = "1"
		}
		if err := s.redisClient.Set(ctx, key, val, sanctionCacheTTL).Err(); err != nil {
			logger.GetLogger().Warn().Err(err).Uint64("user_id", userID).
				Msg("failed to cache sanction verdict")
		}
	}
	return sanctioned, nil
}

// ListByUser returns a user's penalty history with the derived
// effective flag alongside the stored status
func (s *PenaltyService) ListByUser(userID uint64, page, limit int) ([]domain.PenaltyResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var (
		penalties []*domain.Penalty
		total     int64
		err       error
	)
	if userID != 0 {
		penalties, total, err = s.repo.FindByUserID(userID, page, limit)
	} else {
		penalties, total, err = s.repo.FindAll(page, limit)
	}
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	responses := make([]domain.PenaltyResponse, len(penalties))
	for i, p := range penalties {
		responses[i] = p.ToResponse(now)
	}

	meta := &common.Meta{Page: page, Limit: limit, Total: total}
	return responses, meta, nil
}

func (s *PenaltyService) invalidateSanctionCache(userID uint64) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(context.Background(), sanctionCacheKey(userID)).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("user_id", userID).
			Msg("failed to invalidate sanction cache")
	}
}

func sanctionCacheKey(userID uint64) string {
	return fmt.Sprintf("sanction:%d", userID)
}
