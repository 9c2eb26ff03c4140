package internal

import (
	"net/http"

	"itorg-api/internal/models"
)

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.Repo.ListTickets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var in models.TicketInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateTicketInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.Repo.CreateTicket(r.Context(), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("ticket", "create")
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	var in models.TicketInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateTicketInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.Repo.UpdateTicket(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("ticket", "update")
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Repo.DeleteTicket(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("ticket", "delete")
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
