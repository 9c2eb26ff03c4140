package internal

import (
	"net/http"

	"itorg-api/internal/models"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.Repo.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateProjectInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.Repo.CreateProject(r.Context(), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("project", "create")
	writeJSON(w, http.StatusOK, p)
}

// updateProject replaces every mutable field; omitted optional fields are
// reset to their defaults.
func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateProjectInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.Repo.UpdateProject(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("project", "update")
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Repo.DeleteProject(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("project", "delete")
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
