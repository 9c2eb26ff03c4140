package internal

import (
	"net/http"

	"itorg-api/internal/models"
)

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.Repo.ListAssets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateAssetInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.Repo.CreateAsset(r.Context(), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("asset", "create")
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := models.ValidateAssetInput(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.Repo.UpdateAsset(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("asset", "update")
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Repo.DeleteAsset(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.mutated("asset", "delete")
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
