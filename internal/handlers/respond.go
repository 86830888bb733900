package handlers

import (
	"encoding/json"
	"net/http"
)

// Every response uses one envelope: {"success":true,...} on success,
// {"success":false,"msg":...} on failure. Clients branch on the flag, not
// the HTTP status.

func respondOK(w http.ResponseWriter, status int, msg string, extra map[string]interface{}) {
	body := map[string]interface{}{
		"success": true,
		"msg":     msg,
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"msg":     msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
