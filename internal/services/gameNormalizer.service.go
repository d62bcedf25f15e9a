package services

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"betsmith/internal/models"
	"betsmith/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

// OneOrMany decodes a JSON value that upstreams sometimes serialize as a
// single object instead of an array, always yielding a list downstream.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}

	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*o = OneOrMany[T]{one}
	return nil
}

// flexInt tolerates scores arriving as numbers, numeric strings, or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(trimmed, &n); err != nil {
		// Some feeds send scores as floats.
		var fl float64
		if err := json.Unmarshal(trimmed, &fl); err != nil {
			return err
		}
		n = int(fl)
	}
	*f = flexInt(n)
	return nil
}

type rawTeam struct {
	Name  string  `json:"name"`
	Score flexInt `json:"score"`
}

type rawSides struct {
	Home rawTeam `json:"home"`
	Away rawTeam `json:"away"`
}

type rawEvent struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`
	Time   string   `json:"time"`
	Status string   `json:"status"`
	Home   rawTeam  `json:"home"`
	Away   rawTeam  `json:"away"`
	Teams  *rawSides `json:"teams"`
	Scores *struct {
		Home flexInt `json:"home"`
		Away flexInt `json:"away"`
	} `json:"scores"`
}

type rawPayload struct {
	Events OneOrMany[rawEvent] `json:"events"`
	Games  OneOrMany[rawEvent] `json:"games"`
}

type GameNormalizerService struct {
	log logger.Logger
}

func NewGameNormalizerService() *GameNormalizerService {
	return &GameNormalizerService{
		log: logger.New("gameNormalizerService"),
	}
}

// Normalize converts one league's raw payload into GameRecords ordered
// most-recent-first. A partial or empty result is valid; only an
// undecodable top-level payload is an error, and even that surfaces as a
// DataSourceError the caller treats as "no games right now".
func (s *GameNormalizerService) Normalize(
	league models.League,
	raw json.RawMessage,
) ([]models.GameRecord, error) {
	log := s.log.Function("Normalize")

	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.GameRecord{}, nil
	}

	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &DataSourceError{League: league, Err: err}
	}

	events := payload.Events
	if len(events) == 0 {
		events = payload.Games
	}

	records := make([]models.GameRecord, 0, len(events))
	for _, event := range events {
		record := s.normalizeEvent(league, event)
		if record.HomeTeam == "" || record.AwayTeam == "" || record.HomeTeam == record.AwayTeam {
			log.Debug("skipping event with unusable teams", "league", league, "gameID", event.ID)
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.After(records[j].StartDate)
		}
		return records[i].StartTime > records[j].StartTime
	})

	return records, nil
}

func (s *GameNormalizerService) normalizeEvent(
	league models.League,
	event rawEvent,
) models.GameRecord {
	home := event.Home
	away := event.Away
	if event.Teams != nil {
		if home.Name == "" {
			home = event.Teams.Home
		}
		if away.Name == "" {
			away = event.Teams.Away
		}
	}

	homeScore := int(home.Score)
	awayScore := int(away.Score)
	if event.Scores != nil {
		homeScore = int(event.Scores.Home)
		awayScore = int(event.Scores.Away)
	}

	// Absent scores are treated as 0, never null, so comparisons stay total.
	if homeScore < 0 {
		homeScore = 0
	}
	if awayScore < 0 {
		awayScore = 0
	}

	startDate, _ := utils.ParseDate(event.Date)

	return models.GameRecord{
		League:    league,
		GameID:    event.ID,
		StartDate: startDate,
		StartTime: event.Time,
		HomeTeam:  strings.TrimSpace(home.Name),
		AwayTeam:  strings.TrimSpace(away.Name),
		HomeScore: homeScore,
		AwayScore: awayScore,
		Status:    event.Status,
	}
}
