// Smoke test for the click flow: drives the interaction state machine through
// one full traversal against a running server. Expects APP_URL, and either a
// TOKEN or credentials to log in with.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"adclick_webapp/internal/adflow"
)

func main() {
	baseURL := os.Getenv("APP_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	token := os.Getenv("TOKEN")
	if token == "" {
		token = login(baseURL)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	// which ad is up in the rotation
	var current struct {
		Ad *struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"ad"`
		AllCompleted bool `json:"all_completed"`
	}
	getJSON(client, baseURL+"/api/v1/ads/current", token, &current)
	if current.AllCompleted || current.Ad == nil {
		log.Fatal("no active ads to click")
	}
	log.Printf("current ad: id=%d title=%q", current.Ad.ID, current.Ad.Title)

	// drive the machine through one traversal, honoring the dwell
	var view struct {
		MinDwellSec int `json:"min_dwell_sec"`
	}

	m := adflow.New(5 * time.Second)
	if err := m.Open(current.Ad.ID); err != nil {
		log.Fatalf("open: %v", err)
	}
	postJSON(client, fmt.Sprintf("%s/api/v1/ads/%d/view", baseURL, current.Ad.ID), token, nil, &view)
	log.Printf("viewing; server minimum dwell %ds", view.MinDwellSec)

	if err := m.Engage(); err != nil {
		log.Fatalf("engage: %v", err)
	}
	for {
		remaining := m.DwellRemaining()
		if remaining == 0 {
			break
		}
		time.Sleep(remaining)
	}
	if err := m.Confirm(); err != nil {
		log.Fatalf("confirm: %v", err)
	}

	adID, err := m.Submit()
	if err != nil {
		log.Fatalf("submit: %v", err)
	}

	var outcome map[string]any
	postJSON(client, fmt.Sprintf("%s/api/v1/ads/%d/click", baseURL, adID), token, nil, &outcome)
	if err := m.Resolve(); err != nil {
		log.Fatalf("resolve: %v", err)
	}

	out, _ := json.MarshalIndent(outcome, "", "  ")
	log.Printf("click outcome:\n%s", out)
	log.Printf("machine back in state %q", m.State())
}

func login(baseURL string) string {
	username := os.Getenv("SMOKE_USERNAME")
	password := os.Getenv("SMOKE_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("set TOKEN or SMOKE_USERNAME/SMOKE_PASSWORD")
	}

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(baseURL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
		log.Fatalf("login failed: status=%d err=%v", resp.StatusCode, err)
	}
	return result.Token
}

func getJSON(client *http.Client, url, token string, out any) {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	doJSON(client, req, out)
}

func postJSON(client *http.Client, url, token string, body, out any) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) {
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&e)
		log.Fatalf("%s %s: status=%d body=%v", req.Method, req.URL, resp.StatusCode, e)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", req.Method, req.URL, err)
		}
	}
}
