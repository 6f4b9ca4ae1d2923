package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/rogerio-castellano/kiosco-pos/internal/auth"
)

func GetRoleFromContext(r *http.Request) (string, error) {
	authorization := r.Header.Get("Authorization")

	_, claims, err := auth.TokenClaims(authorization)
	if err != nil {
		return "", err
	}

	if role, ok := claims["role"].(string); ok {
		return role, nil
	}
	return "", nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// writeError writes the {"error": msg} body every failure path uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	if err := writeJSON(w, status, ErrorResult{Error: msg}); err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}
