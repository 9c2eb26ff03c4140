package internal

import (
	"net/http"

	"itorg-api/internal/auth"
)

// login issues the demo token for ?email=. The email may also arrive as a
// form field.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	token, err := auth.DemoToken(r.FormValue("email"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, auth.LoginResponse{Token: token})
}
