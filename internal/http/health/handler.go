// Package health serves the liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the health payload.
type Response struct {
	Status      string `json:"status"`
	ActiveForms int    `json:"activeForms"`
}

// Counter reports how many forms are held in memory.
type Counter interface {
	Count() int
}

// Handler returns the health endpoint. A nil counter reports zero forms.
func Handler(forms Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := Response{Status: "healthy"}
		if forms != nil {
			resp.ActiveForms = forms.Count()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
