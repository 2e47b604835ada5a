package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

// RestGateway implements Gateway against a remote agendx REST server (see
// internal/server). All records live server-side; this client is stateless.
type RestGateway struct {
	baseURL string
	client  *http.Client
}

func NewRestGateway(baseURL string) *RestGateway {
	return &RestGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *RestGateway) Init() error { return g.Load() }

// Load verifies the server is reachable.
func (g *RestGateway) Load() error {
	resp, err := g.client.Get(g.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("agendx server unreachable at %s: %w", g.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agendx server unhealthy: %s", resp.Status)
	}
	return nil
}

func (g *RestGateway) Close() error { return nil }

func (g *RestGateway) AddEvent(event models.Event) error {
	return g.do(http.MethodPost, "/api/events", event, nil)
}

func (g *RestGateway) GetEvent(id string) (models.Event, error) {
	var event models.Event
	err := g.do(http.MethodGet, "/api/events/"+url.PathEscape(id), nil, &event)
	return event, err
}

func (g *RestGateway) GetAllEvents() ([]models.Event, error) {
	var events []models.Event
	err := g.do(http.MethodGet, "/api/events", nil, &events)
	return events, err
}

func (g *RestGateway) UpdateEvent(event models.Event) error {
	return g.do(http.MethodPut, "/api/events/"+url.PathEscape(event.ID), event, nil)
}

func (g *RestGateway) DeleteEvent(id string) error {
	return g.do(http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil)
}

func (g *RestGateway) CreateSession(rec models.SessionRecord) (models.SessionRecord, error) {
	var created models.SessionRecord
	err := g.do(http.MethodPost, "/api/sessions", rec, &created)
	return created, err
}

func (g *RestGateway) UpdateSession(rec models.SessionRecord) error {
	return g.do(http.MethodPut, "/api/sessions/"+url.PathEscape(rec.ID), rec, nil)
}

func (g *RestGateway) GetSessions() ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	err := g.do(http.MethodGet, "/api/sessions", nil, &records)
	return records, err
}

func (g *RestGateway) DeleteSession(id string) error {
	return g.do(http.MethodDelete, "/api/sessions/"+url.PathEscape(id), nil, nil)
}

func (g *RestGateway) GetConfigPath() string {
	return g.baseURL
}

func (g *RestGateway) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s -> %s: %s", method, path, resp.Status, strings.TrimSpace(string(text)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
