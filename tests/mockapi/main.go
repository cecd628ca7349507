// Standalone mock of the LinguaXYZ backend for local development and manual
// testing of the client. Serves canned data; any login succeeds, the magic
// token is "tok-dev".
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const devToken = "tok-dev"

var knownInvites = map[string]map[string]interface{}{
	"ABC123": {
		"name":         "Team Chat",
		"ownerName":    "Anna",
		"members":      12,
		"telegramLink": "https://t.me/+devAbc123",
	},
}

type state struct {
	mu     sync.Mutex
	groups []map[string]interface{}
}

func newState() *state {
	return &state{
		groups: []map[string]interface{}{
			{
				"chatId":      "-1001234567890",
				"name":        "Team Chat",
				"active":      true,
				"inviteCode":  "ABC123",
				"members":     12,
				"messages":    340,
				"hoursEarned": 3,
				"languagePairs": []map[string]string{
					{"from": "en", "to": "vi"},
				},
			},
		},
	}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:18090", "listen address")
	flag.Parse()

	st := newState()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/me", authed(st.handleMe))
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/signup", handleSignup)
	mux.HandleFunc("GET /api/groups/invite/{code}", handleInviteLookup)
	mux.HandleFunc("POST /api/groups/link", authed(st.handleLink))
	mux.HandleFunc("POST /api/groups/toggle", authed(st.handleToggle))
	mux.HandleFunc("POST /api/groups/set-languages", authed(st.handleSetLanguages))
	mux.HandleFunc("POST /api/create-checkout", authed(handleCheckout))

	log.Printf("mock LinguaXYZ API on http://%s (token: %s)", *addr, devToken)
	log.Fatal(http.ListenAndServe(*addr, logged(mux)))
}

func logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != devToken {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

func (s *state) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"user": map[string]interface{}{
			"id":         "u-dev",
			"name":       "Dev User",
			"email":      "dev@example.com",
			"inviteCode": "DEV42",
			"createdAt":  "2026-01-15T09:00:00Z",
			"balance":    5200,
			"tokensUsed": 1800,
		},
		"inviteStats": map[string]int{"totalInvites": 3, "totalTokensEarned": 1500},
		"usageStats":  map[string]int{"totalMessages": 340, "totalTokens": 1800},
		"pricing": []map[string]string{
			{"id": "small", "label": "100k tokens", "priceLabel": "$5"},
			{"id": "medium", "label": "500k tokens", "priceLabel": "$20"},
			{"id": "large", "label": "2M tokens", "priceLabel": "$60"},
		},
		"purchases": []map[string]interface{}{
			{"amount": 5, "tokens": 100000, "date": "2026-08-01T10:00:00Z"},
		},
		"groups": s.groups,
	})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	writeJSON(w, map[string]interface{}{
		"token": devToken,
		"user":  map[string]string{"id": "u-dev", "name": "Dev User"},
	})
}

func handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid signup payload")
		return
	}

	resp := map[string]interface{}{
		"token": devToken,
		"user":  map[string]string{"id": "u-new", "name": req.Name},
	}
	if invite, ok := knownInvites[req.InviteCode]; ok {
		resp["invitedGroup"] = map[string]interface{}{
			"name":         invite["name"],
			"telegramLink": invite["telegramLink"],
		}
	}
	writeJSON(w, resp)
}

func handleInviteLookup(w http.ResponseWriter, r *http.Request) {
	invite, ok := knownInvites[r.PathValue("code")]
	if !ok {
		writeError(w, http.StatusNotFound, "invite not found")
		return
	}
	writeJSON(w, invite)
}

func (s *state) handleLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	if _, ok := knownInvites[req.Code]; !ok {
		writeError(w, http.StatusNotFound, "invite not found")
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (s *state) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatId string `json:"chatId"`
		Active bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g["chatId"] == req.ChatId {
			g["active"] = req.Active
			writeJSON(w, map[string]bool{"ok": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown group")
}

func (s *state) handleSetLanguages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatId        string `json:"chatId"`
		LanguagePairs []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"languagePairs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.LanguagePairs) < 1 || len(req.LanguagePairs) > 10 {
		writeError(w, http.StatusBadRequest, "between 1 and 10 language pairs are required")
		return
	}

	pairs := make([]map[string]string, 0, len(req.LanguagePairs))
	for _, p := range req.LanguagePairs {
		pairs = append(pairs, map[string]string{"from": p.From, "to": p.To})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g["chatId"] == req.ChatId {
			g["languagePairs"] = pairs
			writeJSON(w, map[string]bool{"ok": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown group")
}

func handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TierId string `json:"tierId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TierId == "" {
		writeError(w, http.StatusBadRequest, "tier is required")
		return
	}
	writeJSON(w, map[string]string{
		"url": fmt.Sprintf("https://pay.example/checkout/%s?purchased=1", req.TierId),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
