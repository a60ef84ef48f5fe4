package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	eventsapi "github.com/radieske/event-betting-console/internal/events-api"
	eventsdto "github.com/radieske/event-betting-console/internal/events-api/dto"
	"github.com/radieske/event-betting-console/internal/shared/apierr"
	"github.com/radieske/event-betting-console/pkg/contracts/events"
)

// listEvents mostra todos os eventos, do início mais recente para o mais antigo
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	body, err := s.events.ListEvents(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Could not fetch events from the API.")
		return
	}
	var list []eventsdto.Event
	if !body.IsEmpty() {
		if err := body.Decode(&list); err != nil {
			s.renderError(w, r, err, "Could not fetch events from the API.")
			return
		}
	}
	eventsdto.SortByStartDesc(list)
	s.render(w, r, http.StatusOK, pageIndex, "Events", list)
}

func (s *Server) newEventForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageCreateEvent, "Create Event", nil)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	in := eventsapi.EventInput{
		EventName:      r.PostForm.Get("eventName"),
		Type:           r.PostForm.Get("type"),
		HomeTeam:       r.PostForm.Get("homeTeam"),
		AwayTeam:       r.PostForm.Get("awayTeam"),
		EventStartDate: r.PostForm.Get("eventStartDate"),
		EventEndDate:   r.PostForm.Get("eventEndDate"),
	}
	body, err := s.events.CreateEvent(r.Context(), in)
	if err != nil {
		s.renderError(w, r, err, "Failed to create event.")
		return
	}

	var created eventsdto.Event
	s.decodeSuccess(r, body, &created)
	name := created.EventName
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSpace(in.EventName)
	}
	if name == "" {
		name = eventsapi.DefaultEventName
	}
	msg := fmt.Sprintf("Event '%s' created successfully", name)
	s.audit.Record(r.Context(), events.ActionEventCreated, created.ID, msg)
	redirect(w, r, "/", "success", msg)
}

// showEvent usa o endpoint de details (evento + rounds)
func (s *Server) showEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := s.events.GetEventDetails(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err, "Could not fetch event details.")
		return
	}
	if body.IsEmpty() {
		s.renderError(w, r, apierr.NotFound(fmt.Sprintf("Event with ID %s not found.", id)), "")
		return
	}
	var ev eventsdto.EventDetails
	if err := body.Decode(&ev); err != nil {
		s.renderError(w, r, err, "Could not fetch event details.")
		return
	}
	if ev.ID == "" {
		ev.ID = id
	}
	s.render(w, r, http.StatusOK, pageEventDetail, ev.EventName, ev)
}

func (s *Server) endEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/events/" + id
	body, err := s.events.EndEvent(r.Context(), id)
	if err != nil {
		redirect(w, r, back, "error", "Error ending event: "+err.Error())
		return
	}
	var res eventsdto.EndResult
	s.decodeSuccess(r, body, &res)
	msg := fmt.Sprintf("Event ended. Result: %v", res.Result)
	s.audit.Record(r.Context(), events.ActionEventEnded, id, msg)
	redirect(w, r, back, "success", msg)
}

func (s *Server) cancelEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/events/" + id
	if _, err := s.events.CancelEvent(r.Context(), id); err != nil {
		redirect(w, r, back, "error", "Error cancelling event: "+err.Error())
		return
	}
	msg := "Event successfully cancelled."
	s.audit.Record(r.Context(), events.ActionEventCancelled, id, msg)
	redirect(w, r, back, "success", msg)
}

// subscribe exige callbackUrl antes de chamar o upstream
func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/events/" + id
	_ = r.ParseForm()
	cb := strings.TrimSpace(r.PostForm.Get("callbackUrl"))
	if cb == "" {
		redirect(w, r, back, "error", "Callback URL is required.")
		return
	}
	if _, err := s.events.SubscribeToEvent(r.Context(), id, cb); err != nil {
		redirect(w, r, back, "error", "Subscription failed: "+err.Error())
		return
	}
	msg := "Successfully subscribed with URL: " + cb
	s.audit.Record(r.Context(), events.ActionEventSubscribed, id, msg)
	redirect(w, r, back, "success", msg)
}

// deleteEvent volta para a lista; a página do evento deixa de existir
func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.events.DeleteEvent(r.Context(), id); err != nil {
		redirect(w, r, "/", "error", "Error deleting event: "+err.Error())
		return
	}
	msg := "Event successfully deleted."
	s.audit.Record(r.Context(), events.ActionEventDeleted, id, msg)
	redirect(w, r, "/", "success", msg)
}

type detailForm struct {
	EventID   string
	EventName string
}

func (s *Server) newDetailForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err, "Could not fetch event.")
		return
	}
	var ev eventsdto.Event
	s.decodeSuccess(r, body, &ev)
	s.render(w, r, http.StatusOK, pageCreateDetail, "Add Round", detailForm{EventID: id, EventName: ev.EventName})
}

func detailInput(r *http.Request) eventsapi.DetailInput {
	_ = r.ParseForm()
	return eventsapi.DetailInput{
		RoundNumber:   r.PostForm.Get("roundNumber"),
		HomeTeamScore: r.PostForm.Get("homeTeamScore"),
		AwayTeamScore: r.PostForm.Get("awayTeamScore"),
	}
}

func (s *Server) createDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/events/" + id
	if _, err := s.events.CreateEventDetail(r.Context(), id, detailInput(r)); err != nil {
		redirect(w, r, back, "error", "Error adding round: "+err.Error())
		return
	}
	msg := "New round/detail added successfully."
	s.audit.Record(r.Context(), events.ActionDetailCreated, id, msg)
	redirect(w, r, back, "success", msg)
}

// updateDetail chega via POST + _method=PATCH
func (s *Server) updateDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/events/" + id
	in := detailInput(r)
	round := strings.TrimSpace(in.RoundNumber)
	if round == "" {
		redirect(w, r, back, "error", "Error updating round : Round number is required for update.")
		return
	}
	if _, err := s.events.UpdateEventDetail(r.Context(), id, in); err != nil {
		redirect(w, r, back, "error", fmt.Sprintf("Error updating round %s: %s", round, err.Error()))
		return
	}
	msg := fmt.Sprintf("Round %s updated successfully.", round)
	s.audit.Record(r.Context(), events.ActionDetailUpdated, id, msg)
	redirect(w, r, back, "success", msg)
}
