package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/plangen"
	"thryveiq/coaching-app/internal/repository"
	"thryveiq/coaching-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("no plan found, generate one first")
	ErrWeekNotFound      = errors.New("no sessions found for that week")
	ErrExportUnavailable = errors.New("plan export storage is not configured")
)

// PlanGenerator is the LLM-backed plan generation collaborator.
// *llm.Client satisfies it.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile *domain.AthleteProfile, today time.Time) (*domain.GeneratedPlan, error)
}

// PlanService creates and serves training plans. Generation prefers the LLM
// path and falls back to the deterministic rule engine whenever the LLM is
// unavailable or its output is unusable.
type PlanService interface {
	Generate(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	GetCurrent(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	GetWeek(ctx context.Context, userID primitive.ObjectID, week int) ([]domain.Session, error)
	Export(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type planService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	generator   PlanGenerator         // nil when the LLM is disabled
	exports     storage.ExportStorage // nil when exports are disabled
	now         func() time.Time
}

// NewPlanService creates a new instance of planService. generator and exports
// may be nil to disable the LLM path and plan exports respectively.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	generator PlanGenerator,
	exports storage.ExportStorage,
) PlanService {
	return &planService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		generator:   generator,
		exports:     exports,
		now:         time.Now,
	}
}

// Generate builds a fresh plan for the athlete and stores it, superseding any
// prior plan.
func (s *planService) Generate(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	today := s.now().UTC()

	generated, err := s.generateWithFallback(ctx, profile, today)
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		UserID:         userID,
		WeeksUntilRace: generated.WeeksUntilRace,
		Sessions:       generated.Sessions,
	}
	return s.planRepo.Replace(ctx, plan)
}

// generateWithFallback tries the LLM first and the rule engine second. The
// returned error is the rule engine's, i.e. a profile validation failure.
func (s *planService) generateWithFallback(ctx context.Context, profile *domain.AthleteProfile, today time.Time) (*domain.GeneratedPlan, error) {
	if s.generator != nil {
		generated, err := s.generator.GeneratePlan(ctx, profile, today)
		if err == nil && generated != nil && len(generated.Sessions) > 0 {
			return generated, nil
		}
		log.Printf("LLM plan generation failed (%v), using rule engine fallback", err)
	}

	return plangen.GeneratePlan(profile, today)
}

// GetCurrent retrieves the athlete's active plan.
func (s *planService) GetCurrent(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetWeek retrieves one week's sessions from the current plan.
func (s *planService) GetWeek(ctx context.Context, userID primitive.ObjectID, week int) ([]domain.Session, error) {
	plan, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	var sessions []domain.Session
	for _, session := range plan.Sessions {
		if session.Week == week {
			sessions = append(sessions, session)
		}
	}
	if len(sessions) == 0 {
		return nil, ErrWeekNotFound
	}
	return sessions, nil
}

// Export snapshots the current plan to object storage and returns a temporary
// download URL.
func (s *planService) Export(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if s.exports == nil {
		return "", ErrExportUnavailable
	}

	plan, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return "", err
	}

	snapshot := domain.GeneratedPlan{
		WeeksUntilRace: plan.WeeksUntilRace,
		Sessions:       plan.Sessions,
	}
	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.exports.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return "", err
	}

	return s.exports.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}
