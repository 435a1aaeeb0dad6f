package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/repository"
)

// --- Service Errors ---
var ErrStravaNotConnected = errors.New("strava account not connected")
var ErrStravaExchangeFailed = errors.New("strava token exchange failed")

const stravaAPIBase = "https://www.strava.com/api/v3"

// Tokens expiring within this window are refreshed before use.
const tokenRefreshLeeway = 5 * time.Minute

// StravaEndpoint is Strava's OAuth2 provider endpoint.
var StravaEndpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/oauth/authorize",
	TokenURL: "https://www.strava.com/oauth/token",
}

// StravaStatus reports whether and how an athlete's Strava account is linked.
type StravaStatus struct {
	Connected   bool      `json:"connected"`
	AthleteID   int64     `json:"athlete_id,omitempty"`
	AthleteName string    `json:"athlete_name,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// StravaActivity is the subset of Strava's activity model the coach surfaces.
type StravaActivity struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	SportType      string  `json:"sport_type"`
	Distance       float64 `json:"distance"`
	MovingTime     int     `json:"moving_time"`
	StartDateLocal string  `json:"start_date_local"`
}

// StravaService links athlete accounts to Strava and reads their activities.
type StravaService interface {
	Exchange(ctx context.Context, userID primitive.ObjectID, code string) (*StravaStatus, error)
	Status(ctx context.Context, userID primitive.ObjectID) (*StravaStatus, error)
	Disconnect(ctx context.Context, userID primitive.ObjectID) error
	GetRecentActivities(ctx context.Context, userID primitive.ObjectID, perPage int) ([]StravaActivity, error)
}

// --- Service Implementation ---

type stravaService struct {
	repo       repository.StravaRepository
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewStravaService creates a new instance of stravaService.
func NewStravaService(repo repository.StravaRepository, clientID, clientSecret string) StravaService {
	return &stravaService{
		repo: repo,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"read", "activity:read_all"},
			Endpoint:     StravaEndpoint,
		},
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Exchange trades an authorization code for tokens and stores the connection.
func (s *stravaService) Exchange(ctx context.Context, userID primitive.ObjectID, code string) (*StravaStatus, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStravaExchangeFailed, err)
	}

	conn := &domain.StravaConnection{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}

	// Strava includes the athlete summary in the token response.
	if athlete, ok := token.Extra("athlete").(map[string]interface{}); ok {
		if id, ok := athlete["id"].(float64); ok {
			conn.AthleteID = int64(id)
		}
		first, _ := athlete["firstname"].(string)
		last, _ := athlete["lastname"].(string)
		conn.AthleteName = strings.TrimSpace(first + " " + last)
	}

	if _, err := s.repo.Upsert(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to save strava connection: %w", err)
	}

	return &StravaStatus{
		Connected:   true,
		AthleteID:   conn.AthleteID,
		AthleteName: conn.AthleteName,
		ExpiresAt:   conn.ExpiresAt,
	}, nil
}

// Status reports the stored connection, if any.
func (s *stravaService) Status(ctx context.Context, userID primitive.ObjectID) (*StravaStatus, error) {
	conn, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &StravaStatus{Connected: false}, nil
		}
		return nil, fmt.Errorf("failed to load strava connection: %w", err)
	}
	return &StravaStatus{
		Connected:   true,
		AthleteID:   conn.AthleteID,
		AthleteName: conn.AthleteName,
		ExpiresAt:   conn.ExpiresAt,
	}, nil
}

// Disconnect removes the stored tokens.
func (s *stravaService) Disconnect(ctx context.Context, userID primitive.ObjectID) error {
	err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStravaNotConnected
		}
		return fmt.Errorf("failed to disconnect strava: %w", err)
	}
	return nil
}

// GetRecentActivities lists the athlete's latest activities from Strava.
func (s *stravaService) GetRecentActivities(ctx context.Context, userID primitive.ObjectID, perPage int) ([]StravaActivity, error) {
	accessToken, err := s.validAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	if perPage <= 0 || perPage > 50 {
		perPage = 10
	}
	url := fmt.Sprintf("%s/athlete/activities?per_page=%d", stravaAPIBase, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strava activities request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("strava activities request returned %s: %s", resp.Status, snippet)
	}

	var activities []StravaActivity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode strava activities: %w", err)
	}
	return activities, nil
}

// validAccessToken returns a usable access token, refreshing and re-saving
// the connection when it is close to expiry.
func (s *stravaService) validAccessToken(ctx context.Context, userID primitive.ObjectID) (string, error) {
	conn, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrStravaNotConnected
		}
		return "", fmt.Errorf("failed to load strava connection: %w", err)
	}

	if time.Until(conn.ExpiresAt) > tokenRefreshLeeway {
		return conn.AccessToken, nil
	}

	stale := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.ExpiresAt,
	}
	fresh, err := s.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return "", fmt.Errorf("strava token refresh failed: %w", err)
	}

	conn.AccessToken = fresh.AccessToken
	if fresh.RefreshToken != "" {
		conn.RefreshToken = fresh.RefreshToken
	}
	conn.ExpiresAt = fresh.Expiry
	if _, err := s.repo.Upsert(ctx, conn); err != nil {
		return "", fmt.Errorf("failed to save refreshed strava tokens: %w", err)
	}
	return conn.AccessToken, nil
}
