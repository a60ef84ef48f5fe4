package eventsapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/event-betting-console/internal/shared/apierr"
	"github.com/radieske/event-betting-console/internal/shared/upstream"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// fakeEvents é um upstream em memória que responde sempre com status/body fixos
type fakeEvents struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeEvents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(b)})
	status, body := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeEvents) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeEvents) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var fixedNow = time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC)

func setup(t *testing.T, status int, body string) (*Client, *fakeEvents) {
	t.Helper()
	fake := &fakeEvents{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c := New(upstream.Config{Name: "events-api", BaseURL: srv.URL, Timeout: time.Second}, zaptest.NewLogger(t),
		WithClock(func() time.Time { return fixedNow }))
	return c, fake
}

func requireAPIError(t *testing.T, err error, kind apierr.Kind, status int) *apierr.Error {
	t.Helper()
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %T", err)
	assert.Equal(t, kind, e.Kind)
	assert.Equal(t, status, e.Status)
	return e
}

func TestListEventsReturnsBodyVerbatim(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `[{"id":"b"},{"id":"a"}]`)

	body, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b"},{"id":"a"}]`, body.String())
	assert.Equal(t, recordedRequest{Method: http.MethodGet, Path: "/Events/all"}, fake.last(t))
}

func TestCreateEventAppliesEveryDefault(t *testing.T) {
	c, fake := setup(t, http.StatusCreated, `{"id":"e1","eventName":"Unnamed Event"}`)

	body, err := c.CreateEvent(context.Background(), EventInput{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"e1","eventName":"Unnamed Event"}`, body.String())

	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/Events/create", req.Path)
	assert.JSONEq(t, `{
		"eventName": "Unnamed Event",
		"type": 0,
		"homeTeam": "Home Team",
		"awayTeam": "Away Team",
		"eventStartDate": "2025-05-01T12:30:00.000Z",
		"eventEndDate": "2025-05-01T12:30:00.000Z"
	}`, req.Body)
}

func TestCreateEventCoercesType(t *testing.T) {
	c, fake := setup(t, http.StatusCreated, `{}`)

	_, err := c.CreateEvent(context.Background(), EventInput{
		EventName: "Final", Type: " 2 ", HomeTeam: "Lions", AwayTeam: "Tigers",
		EventStartDate: "2025-06-01T18:00", EventEndDate: "2025-06-01T20:00",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventName":"Final","type":2,"homeTeam":"Lions","awayTeam":"Tigers","eventStartDate":"2025-06-01T18:00","eventEndDate":"2025-06-01T20:00"}`, fake.last(t).Body)

	_, err = c.CreateEvent(context.Background(), EventInput{Type: "football"})
	requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
	assert.Equal(t, 1, fake.count())
}

func TestGetEventNotFoundNamesID(t *testing.T) {
	c, _ := setup(t, http.StatusNotFound, `{"message":"nope"}`)

	_, err := c.GetEvent(context.Background(), "evt-42")
	e := requireAPIError(t, err, apierr.KindNotFound, http.StatusNotFound)
	assert.Contains(t, e.Message, "evt-42")
}

func TestGetEventDetailsNotFoundNamesID(t *testing.T) {
	c, fake := setup(t, http.StatusNotFound, "")

	_, err := c.GetEventDetails(context.Background(), "3f1c")
	e := requireAPIError(t, err, apierr.KindNotFound, http.StatusNotFound)
	assert.Equal(t, "Event details not found for ID 3f1c", e.Message)
	assert.Equal(t, "/Events/3f1c/details", fake.last(t).Path)
}

func TestGetEventDetailsOtherErrorsUseNormalizer(t *testing.T) {
	c, _ := setup(t, http.StatusInternalServerError, `{"title":"Server Error","message":"db down"}`)

	_, err := c.GetEventDetails(context.Background(), "3f1c")
	e := requireAPIError(t, err, apierr.KindUpstream, http.StatusInternalServerError)
	assert.Equal(t, "Server Error", e.Message)
	assert.False(t, e.HasDetails(), "events client keeps message only")
}

func TestLifecycleTransitions(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `{"result":"HomeWin"}`)

	body, err := c.EndEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"HomeWin"}`, body.String())
	assert.Equal(t, recordedRequest{Method: http.MethodPost, Path: "/Events/e1/end"}, fake.last(t))

	fake.respond(http.StatusOK, "")
	body, err = c.CancelEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, body.IsEmpty())
	assert.Equal(t, recordedRequest{Method: http.MethodPost, Path: "/Events/e1/cancel"}, fake.last(t))
}

func TestSubscribeSendsCallbackURL(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `"Subscribed"`)

	body, err := c.SubscribeToEvent(context.Background(), "e1", "http://hooks.local/cb")
	require.NoError(t, err)
	assert.Equal(t, `"Subscribed"`, body.String())
	req := fake.last(t)
	assert.Equal(t, "/Events/e1/subscribe", req.Path)
	assert.JSONEq(t, `{"callbackUrl":"http://hooks.local/cb"}`, req.Body)
}

func TestDeleteEventSynthesizesAck(t *testing.T) {
	c, fake := setup(t, http.StatusNoContent, "")

	body, err := c.DeleteEvent(context.Background(), "e-77")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Event e-77 deleted successfully."}`, body.String())
	assert.Equal(t, recordedRequest{Method: http.MethodDelete, Path: "/Events/e-77/delete"}, fake.last(t))
}

func TestDeleteEventEmptyErrorIsNotSuccess(t *testing.T) {
	c, _ := setup(t, http.StatusBadRequest, "")

	_, err := c.DeleteEvent(context.Background(), "e-77")
	e := requireAPIError(t, err, apierr.KindUpstream, http.StatusBadRequest)
	assert.Equal(t, "request failed with status code 400", e.Message)
}

func TestCreateEventDetailDefaults(t *testing.T) {
	c, fake := setup(t, http.StatusCreated, `{"roundNumber":1}`)

	_, err := c.CreateEventDetail(context.Background(), "e1", DetailInput{})
	require.NoError(t, err)
	req := fake.last(t)
	assert.Equal(t, "/Events/e1/details/create", req.Path)
	assert.JSONEq(t, `{"roundNumber":1,"homeTeamScore":0,"awayTeamScore":0}`, req.Body)

	_, err = c.CreateEventDetail(context.Background(), "e1", DetailInput{RoundNumber: "2", HomeTeamScore: "3", AwayTeamScore: "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roundNumber":2,"homeTeamScore":3,"awayTeamScore":1}`, fake.last(t).Body)
}

func TestUpdateEventDetailOmitsAbsentScores(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `{}`)

	_, err := c.UpdateEventDetail(context.Background(), "e1", DetailInput{RoundNumber: "3"})
	require.NoError(t, err)
	req := fake.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/Events/e1/details", req.Path)
	assert.JSONEq(t, `{"roundNumber":3}`, req.Body)
	assert.NotContains(t, req.Body, "homeTeamScore")
	assert.NotContains(t, req.Body, "null")

	_, err = c.UpdateEventDetail(context.Background(), "e1", DetailInput{RoundNumber: "3", HomeTeamScore: "0"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roundNumber":3,"homeTeamScore":0}`, fake.last(t).Body)
}

func TestUpdateEventDetailRequiresRoundLocally(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `{}`)

	_, err := c.UpdateEventDetail(context.Background(), "e1", DetailInput{HomeTeamScore: "2"})
	e := requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
	assert.Contains(t, e.Message, "Round number is required")
	assert.Zero(t, fake.count())
}

func TestDetailInputValidation(t *testing.T) {
	tests := []struct {
		name string
		in   DetailInput
	}{
		{"round not a number", DetailInput{RoundNumber: "two"}},
		{"round zero", DetailInput{RoundNumber: "0"}},
		{"negative score", DetailInput{RoundNumber: "1", HomeTeamScore: "-1"}},
		{"score not a number", DetailInput{RoundNumber: "1", AwayTeamScore: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDetailPatchRequest(tt.in)
			requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
			_, err = BuildDetailCreateRequest(tt.in)
			requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
		})
	}
}

func TestBlankIDFailsLocally(t *testing.T) {
	c, fake := setup(t, http.StatusOK, `{}`)

	_, err := c.EndEvent(context.Background(), " ")
	requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
	_, err = c.DeleteEvent(context.Background(), "")
	requireAPIError(t, err, apierr.KindValidation, http.StatusBadRequest)
	assert.Zero(t, fake.count())
}

func TestObserverReceivesOperation(t *testing.T) {
	fake := &fakeEvents{status: http.StatusOK, body: `[]`}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	var ops []string
	c := New(upstream.Config{Name: "events-api", BaseURL: srv.URL, Timeout: time.Second}, zaptest.NewLogger(t),
		WithObserver(func(service, op, outcome string, _ time.Duration) { ops = append(ops, service+"/"+op+"/"+outcome) }))

	_, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"events-api/listEvents/success"}, ops)
}
