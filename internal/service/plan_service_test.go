package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/repository"
)

// --- In-Memory Fakes ---

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.AthleteProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*domain.AthleteProfile{}}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.AthleteProfile) (*domain.AthleteProfile, error) {
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.AthleteProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return profile, nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]*domain.Plan{}}
}

func (r *fakePlanRepo) Replace(_ context.Context, plan *domain.Plan) (*domain.Plan, error) {
	stored := *plan
	stored.ID = primitive.NewObjectID()
	stored.GeneratedAt = time.Now().UTC()
	r.plans[plan.UserID] = &stored
	return &stored, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	plan, ok := r.plans[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return plan, nil
}

func (r *fakePlanRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	if _, ok := r.plans[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, userID)
	return nil
}

type stubGenerator struct {
	plan  *domain.GeneratedPlan
	err   error
	calls int
}

func (g *stubGenerator) GeneratePlan(_ context.Context, _ *domain.AthleteProfile, _ time.Time) (*domain.GeneratedPlan, error) {
	g.calls++
	return g.plan, g.err
}

type fakeExports struct {
	objects map[string][]byte
}

func newFakeExports() *fakeExports {
	return &fakeExports{objects: map[string][]byte{}}
}

func (s *fakeExports) PutObject(_ context.Context, objectKey, _ string, body []byte) error {
	s.objects[objectKey] = body
	return nil
}

func (s *fakeExports) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if _, ok := s.objects[objectKey]; !ok {
		return "", errors.New("object not found")
	}
	return "https://exports.example.com/" + objectKey + "?signed=1", nil
}

func (s *fakeExports) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func storedProfile(t *testing.T, repo *fakeProfileRepo) (*domain.AthleteProfile, primitive.ObjectID) {
	t.Helper()
	userID := primitive.NewObjectID()
	profile := &domain.AthleteProfile{
		UserID:              userID,
		Goal:                "Finish my first olympic triathlon",
		Experience:          domain.LevelRecreational,
		RaceDate:            time.Now().UTC().Add(10 * 7 * 24 * time.Hour),
		WeeklyHours:         8,
		DaysAvailable:       5,
		StrongestDiscipline: domain.DisciplineBike,
		WeakestDiscipline:   domain.DisciplineSwim,
	}
	_, err := repo.Upsert(context.Background(), profile)
	require.NoError(t, err)
	return profile, userID
}

// --- Tests ---

func TestGenerateUsesRuleEngineWhenLLMDisabled(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	svc := NewPlanService(profileRepo, planRepo, nil, nil)

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, plan.UserID)
	assert.False(t, plan.ID.IsZero())
	assert.False(t, plan.GeneratedAt.IsZero())
	assert.GreaterOrEqual(t, plan.WeeksUntilRace, 1)
	assert.Equal(t, plan.WeeksUntilRace*5, len(plan.Sessions))
}

func TestGenerateFallsBackWhenLLMFails(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	gen := &stubGenerator{err: errors.New("connection refused")}
	svc := NewPlanService(profileRepo, planRepo, gen, nil)

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	require.NotEmpty(t, plan.Sessions)
	// Rule engine output, recognizable by its deterministic session ids.
	assert.Equal(t, "w1_d1_swim", plan.Sessions[0].ID)
}

func TestGeneratePrefersUsableLLMOutput(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	gen := &stubGenerator{plan: &domain.GeneratedPlan{
		WeeksUntilRace: 10,
		Sessions: []domain.Session{
			{ID: "w1_d1_bike", Week: 1, Day: "Monday", Sport: domain.DisciplineBike, DurationMinutes: 60, Zone: 2, ZoneLabel: "Endurance", Description: "Steady ride."},
		},
	}}
	svc := NewPlanService(profileRepo, planRepo, gen, nil)

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, "w1_d1_bike", plan.Sessions[0].ID)
}

func TestGenerateIgnoresEmptyLLMOutput(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	gen := &stubGenerator{plan: &domain.GeneratedPlan{WeeksUntilRace: 10}}
	svc := NewPlanService(profileRepo, planRepo, gen, nil)

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Sessions)
}

func TestGenerateWithoutProfile(t *testing.T) {
	svc := NewPlanService(newFakeProfileRepo(), newFakePlanRepo(), nil, nil)

	_, err := svc.Generate(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGenerateReplacesPriorPlan(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	svc := NewPlanService(profileRepo, planRepo, nil, nil)

	first, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	current, err := svc.GetCurrent(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.NotEqual(t, first.ID, current.ID)
}

func TestGetCurrentWithoutPlan(t *testing.T) {
	svc := NewPlanService(newFakeProfileRepo(), newFakePlanRepo(), nil, nil)

	_, err := svc.GetCurrent(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGetWeekFiltersSessions(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	svc := NewPlanService(profileRepo, planRepo, nil, nil)
	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	sessions, err := svc.GetWeek(context.Background(), userID, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 5)
	for _, session := range sessions {
		assert.Equal(t, 1, session.Week)
	}

	_, err = svc.GetWeek(context.Background(), userID, plan.WeeksUntilRace+1)
	assert.ErrorIs(t, err, ErrWeekNotFound)
}

func TestExportSnapshotsPlan(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	exports := newFakeExports()
	svc := NewPlanService(profileRepo, planRepo, nil, exports)

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	url, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)
	assert.Contains(t, url, "exports/"+userID.Hex()+"/")

	require.Len(t, exports.objects, 1)
	for key, body := range exports.objects {
		assert.True(t, strings.HasSuffix(key, ".json"))

		var snapshot domain.GeneratedPlan
		require.NoError(t, json.Unmarshal(body, &snapshot))
		assert.Equal(t, plan.WeeksUntilRace, snapshot.WeeksUntilRace)
		assert.Len(t, snapshot.Sessions, len(plan.Sessions))
	}
}

func TestExportUnavailableWithoutStorage(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	planRepo := newFakePlanRepo()
	_, userID := storedProfile(t, profileRepo)

	svc := NewPlanService(profileRepo, planRepo, nil, nil)
	_, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.Export(context.Background(), userID)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
