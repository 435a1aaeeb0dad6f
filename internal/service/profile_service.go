package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/plangen"
	"thryveiq/coaching-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound  = errors.New("athlete profile not found")
	ErrInvalidProfile   = errors.New("invalid profile")
	ErrInvalidBenchmark = errors.New("invalid benchmark value")
)

// ProfileInput carries the onboarding guide rails for an athlete.
type ProfileInput struct {
	Goal                string
	Experience          string
	RaceDate            time.Time
	CurrentBackground   string
	WeeklyHours         float64
	DaysAvailable       int
	StrongestDiscipline domain.Discipline
	WeakestDiscipline   domain.Discipline
	FTP                 int    // watts, 0 = unknown
	LTHR                int    // bpm, 0 = unknown
	CSS                 string // "MM:SS" per km, empty = unknown
}

// ProfileService manages athlete profiles. Saving a profile recomputes the
// athlete's zone tables from the supplied benchmarks.
type ProfileService interface {
	SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.AthleteProfile, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.AthleteProfile, error)
}

// --- Service Implementation ---

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// SaveProfile validates the guide rails, derives the zone tables, and upserts
// the profile. A second save for the same athlete replaces the first.
func (s *profileService) SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.AthleteProfile, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Benchmarks feed the zone calculator; absent ones get defaults there,
	// malformed ones are rejected here.
	zones, err := plangen.ComputeZones(input.FTP, input.LTHR, input.CSS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBenchmark, err)
	}

	profile := &domain.AthleteProfile{
		UserID:              userID,
		Goal:                input.Goal,
		Experience:          input.Experience,
		RaceDate:            input.RaceDate,
		CurrentBackground:   input.CurrentBackground,
		WeeklyHours:         input.WeeklyHours,
		DaysAvailable:       input.DaysAvailable,
		StrongestDiscipline: input.StrongestDiscipline,
		WeakestDiscipline:   input.WeakestDiscipline,
		FTP:                 input.FTP,
		LTHR:                input.LTHR,
		CSS:                 input.CSS,
		Zones:               zones,
	}

	return s.profileRepo.Upsert(ctx, profile)
}

// GetProfile retrieves the athlete's profile.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.AthleteProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func validateInput(input ProfileInput) error {
	if input.DaysAvailable < 1 || input.DaysAvailable > 7 {
		return fmt.Errorf("%w: days available must be between 1 and 7", ErrInvalidProfile)
	}
	if input.WeeklyHours <= 0 || input.WeeklyHours > 40 {
		return fmt.Errorf("%w: weekly hours must be greater than 0 and at most 40", ErrInvalidProfile)
	}
	if !input.StrongestDiscipline.IsValid() || !input.WeakestDiscipline.IsValid() {
		return fmt.Errorf("%w: disciplines must be one of swim, bike, run", ErrInvalidProfile)
	}
	if input.StrongestDiscipline == input.WeakestDiscipline {
		return fmt.Errorf("%w: strongest and weakest discipline must differ", ErrInvalidProfile)
	}
	if input.RaceDate.IsZero() {
		return fmt.Errorf("%w: race date is required", ErrInvalidProfile)
	}
	return nil
}
