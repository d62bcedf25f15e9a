package services

import (
	"encoding/json"
	"errors"
	"testing"

	"betsmith/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyPayload(t *testing.T) {
	service := NewGameNormalizerService()

	records, err := service.Normalize(models.LeagueNBA, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = service.Normalize(models.LeagueNBA, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = service.Normalize(models.LeagueNBA, json.RawMessage(`{"events": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeMalformedPayload(t *testing.T) {
	service := NewGameNormalizerService()

	_, err := service.Normalize(models.LeagueNHL, json.RawMessage(`{"events": "not valid`))
	require.Error(t, err)

	var sourceErr *DataSourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, models.LeagueNHL, sourceErr.League)
}

func TestNormalizeFlatEvents(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "g1", "date": "2026-03-01", "status": "final",
		 "home": {"name": "Celtics", "score": 112}, "away": {"name": "Lakers", "score": 104}}
	]}`)

	records, err := service.Normalize(models.LeagueNBA, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, models.LeagueNBA, record.League)
	assert.Equal(t, "g1", record.GameID)
	assert.Equal(t, "Celtics", record.HomeTeam)
	assert.Equal(t, "Lakers", record.AwayTeam)
	assert.Equal(t, 112, record.HomeScore)
	assert.Equal(t, 104, record.AwayScore)
	assert.Equal(t, "2026-03-01", record.StartDate.Format("2006-01-02"))
}

func TestNormalizeSingleObjectCollapsedToArray(t *testing.T) {
	service := NewGameNormalizerService()

	// Some upstreams collapse a one-element list into a bare object
	raw := json.RawMessage(`{"games":
		{"id": "g2", "date": "2026-03-01",
		 "home": {"name": "Oilers", "score": 3}, "away": {"name": "Flames", "score": 2}}
	}`)

	records, err := service.Normalize(models.LeagueNHL, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Oilers", records[0].HomeTeam)
}

func TestNormalizeNestedTeamsAndScores(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "g3", "date": "2026-03-01",
		 "teams": {"home": {"name": "Alouettes"}, "away": {"name": "Argonauts"}},
		 "scores": {"home": 28, "away": 21}}
	]}`)

	records, err := service.Normalize(models.LeagueCFL, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alouettes", records[0].HomeTeam)
	assert.Equal(t, 28, records[0].HomeScore)
	assert.Equal(t, 21, records[0].AwayScore)
}

func TestNormalizeStringAndNullScores(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "g4", "date": "2026-03-01",
		 "home": {"name": "Galaxy", "score": "2"}, "away": {"name": "Sounders", "score": null}}
	]}`)

	records, err := service.Normalize(models.LeagueMLS, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].HomeScore)
	assert.Equal(t, 0, records[0].AwayScore)
}

func TestNormalizeSkipsUnusableEvents(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "missing-away", "date": "2026-03-01", "home": {"name": "Jets", "score": 1}},
		{"id": "same-team", "date": "2026-03-01",
		 "home": {"name": "Jets", "score": 1}, "away": {"name": "Jets", "score": 0}},
		{"id": "ok", "date": "2026-03-01",
		 "home": {"name": "Jets", "score": 4}, "away": {"name": "Canucks", "score": 1}}
	]}`)

	records, err := service.Normalize(models.LeagueNHL, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].GameID)
}

func TestNormalizeOrdersMostRecentFirst(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "oldest", "date": "2026-02-27",
		 "home": {"name": "A", "score": 1}, "away": {"name": "B", "score": 0}},
		{"id": "newest", "date": "2026-03-01",
		 "home": {"name": "C", "score": 1}, "away": {"name": "D", "score": 0}},
		{"id": "late-same-day", "date": "2026-02-28", "time": "22:00",
		 "home": {"name": "E", "score": 1}, "away": {"name": "F", "score": 0}},
		{"id": "early-same-day", "date": "2026-02-28", "time": "18:00",
		 "home": {"name": "G", "score": 1}, "away": {"name": "H", "score": 0}}
	]}`)

	records, err := service.Normalize(models.LeagueMLB, raw)
	require.NoError(t, err)
	require.Len(t, records, 4)

	order := make([]string, 0, len(records))
	for _, record := range records {
		order = append(order, record.GameID)
	}
	assert.Equal(t, []string{"newest", "late-same-day", "early-same-day", "oldest"}, order)
}

func TestNormalizeTimestampDates(t *testing.T) {
	service := NewGameNormalizerService()

	raw := json.RawMessage(`{"events": [
		{"id": "g5", "date": "2026-03-01T19:30:00Z",
		 "home": {"name": "Raptors", "score": 99}, "away": {"name": "Knicks", "score": 95}}
	]}`)

	records, err := service.Normalize(models.LeagueNBA, raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-01", records[0].StartDate.Format("2006-01-02"))
}
