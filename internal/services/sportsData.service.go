package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"betsmith/config"
	"betsmith/internal/models"

	"context"

	logger "github.com/Bparsons0904/goLogger"
)

// DataSourceError wraps any upstream fetch or parse failure for one league.
// Callers treat it as "no games available for this league right now" and
// continue with the other leagues.
type DataSourceError struct {
	League models.League
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("sports data unavailable for %s: %v", e.League, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// GameSource supplies raw upstream payloads for one league. Implemented by
// SportsDataService; faked in tests.
type GameSource interface {
	RecentGames(ctx context.Context, league models.League) (json.RawMessage, error)
}

type SportsDataService struct {
	client  *http.Client
	baseURL string
	log     logger.Logger
}

func NewSportsDataService(config config.Config) *SportsDataService {
	return &SportsDataService{
		client: &http.Client{
			Timeout: time.Duration(config.SportsAPITimeoutSecs) * time.Second,
		},
		baseURL: config.SportsAPIURL,
		log:     logger.New("sportsDataService"),
	}
}

// RecentGames fetches the raw recent-games payload for one league. The
// upstream offers no shape guarantee beyond "JSON-shaped"; decoding is the
// normalizer's job.
func (s *SportsDataService) RecentGames(
	ctx context.Context,
	league models.League,
) (json.RawMessage, error) {
	log := s.log.Function("RecentGames")

	endpoint := fmt.Sprintf(
		"%s/games/recent?league=%s",
		s.baseURL,
		url.QueryEscape(string(league)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &DataSourceError{League: league, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn("sports data fetch failed", "league", league, "error", err)
		return nil, &DataSourceError{League: league, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream returned status %d", resp.StatusCode)
		log.Warn("sports data fetch rejected", "league", league, "status", resp.StatusCode)
		return nil, &DataSourceError{League: league, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &DataSourceError{League: league, Err: err}
	}

	return json.RawMessage(body), nil
}
