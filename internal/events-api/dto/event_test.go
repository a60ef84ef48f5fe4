package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2025-05-01T18:00:00Z", "2025-05-01T18:00:00.123+03:00", "2025-05-01T18:00:00", "2025-05-01T18:00:00.1234567", "2025-05-01T18:00"} {
		_, ok := ParseTimestamp(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestSortByStartDesc(t *testing.T) {
	events := []Event{
		{ID: "old", EventStartDate: "2024-01-01T10:00:00"},
		{ID: "broken", EventStartDate: "n/a"},
		{ID: "new", EventStartDate: "2025-06-01T10:00:00Z"},
		{ID: "mid", EventStartDate: "2024-12-31T23:59:59"},
	}
	SortByStartDesc(events)

	var ids []string
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old", "broken"}, ids)
}

func TestPatchRequestOmitsAbsentScores(t *testing.T) {
	b, err := json.Marshal(EventDetailPatchRequest{RoundNumber: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roundNumber":3}`, string(b))

	zero := 0
	b, err = json.Marshal(EventDetailPatchRequest{RoundNumber: 3, AwayTeamScore: &zero})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roundNumber":3,"awayTeamScore":0}`, string(b))
}

func TestEventDetailsDecodesEmbeddedEvent(t *testing.T) {
	var d EventDetails
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","eventName":"Final","type":1,"eventRounds":[{"roundNumber":1,"homeTeamScore":2,"awayTeamScore":0}]}`), &d))
	assert.Equal(t, "Final", d.EventName)
	assert.Equal(t, float64(1), d.Type)
	require.Len(t, d.EventRounds, 1)
	assert.Equal(t, 2, d.EventRounds[0].HomeTeamScore)
}
