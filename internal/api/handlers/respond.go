package handlers

import (
	"encoding/json"
	"net/http"
)

// Wire error kinds. "not_valid" covers every rejected input and failed
// authentication; "user_exists" is the one conflict the client can tell
// apart.
const (
	errNotValid   = "not_valid"
	errUserExists = "user_exists"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorKind(w http.ResponseWriter, status int, kind string) {
	writeJSON(w, status, map[string]string{"error": kind})
}
