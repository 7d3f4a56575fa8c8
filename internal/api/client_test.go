package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"recall/internal/config"
	"recall/internal/gateway"
	"recall/internal/services"
	"recall/internal/session"
)

type fixture struct {
	client *Client
	store  *session.Store
}

func newFixture(t *testing.T, serverURL string, sess session.Session) fixture {
	t.Helper()
	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if sess.Authenticated() {
		if err := store.SetSession(sess); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	cfg := config.Default()
	cfg.Server.BaseURL = serverURL
	return fixture{client: NewClient(gateway.New(&cfg, store)), store: store}
}

func respond(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"code": 0, "message": "ok", "data": data}); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["username"] != "hedy" || creds["password"] != "s3cret" {
			t.Fatalf("unexpected credentials %v", creds)
		}
		respond(t, w, map[string]any{
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
			"user":         map[string]any{"id": 7, "username": "hedy"},
		})
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{})
	result, err := fx.client.Login(context.Background(), "hedy", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.ID != 7 {
		t.Fatalf("unexpected user %+v", result.User)
	}

	stored := fx.store.Session()
	if stored.AccessToken != "access-1" || stored.RefreshToken != "refresh-1" {
		t.Fatalf("session not persisted: %+v", stored)
	}
	if stored.User == nil || stored.User.Username != "hedy" {
		t.Fatalf("identity not cached: %+v", stored.User)
	}
}

func TestLoginRejectsEmptyCredentialsLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{})
	if _, err := fx.client.Login(context.Background(), "  ", ""); !services.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	err := fx.client.Logout(context.Background())
	if !services.IsTransient(err) {
		t.Fatalf("expected surfaced server error, got %v", err)
	}
	if fx.store.Authenticated() {
		t.Fatal("session must be cleared regardless of server failure")
	}
}

func TestUploadStatusDecodesFailedDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dictionaries/upload/status/task-9" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		respond(t, w, map[string]any{
			"taskId":      "task-9",
			"status":      "completed",
			"progress":    100,
			"total":       120,
			"processed":   120,
			"failedWords": []string{"ubiquitous"},
			"failedDetails": []map[string]any{
				{"word": "ubiquitous", "stage": "translate", "reason": "timeout", "at": "2026-08-30T10:00:00Z"},
			},
		})
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{AccessToken: "access-1"})
	status, err := fx.client.UploadStatus(context.Background(), "task-9")
	if err != nil {
		t.Fatalf("upload status: %v", err)
	}
	if !status.Status.Terminal() {
		t.Fatalf("completed should be terminal: %+v", status)
	}
	if len(status.FailedDetails) != 1 || status.FailedDetails[0].Stage != "translate" {
		t.Fatalf("failed details not decoded: %+v", status.FailedDetails)
	}
}

func TestTodayTasksBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/learning/today-tasks" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("dictId") != "3" || query.Get("limit") != "20" {
			t.Fatalf("unexpected query %v", query)
		}
		respond(t, w, map[string]any{
			"words": []map[string]any{
				{"id": 1, "word": "ephemeral", "meaning": map[string]any{
					"definitions": []map[string]any{{"pos": "adj", "text": "lasting a very short time"}},
				}},
			},
			"reviewCount": 1,
			"newCount":    0,
		})
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{AccessToken: "access-1"})
	tasks, err := fx.client.TodayTasks(context.Background(), 3, 20)
	if err != nil {
		t.Fatalf("today tasks: %v", err)
	}
	if len(tasks.Words) != 1 || tasks.Words[0].Text != "ephemeral" {
		t.Fatalf("words not decoded: %+v", tasks.Words)
	}
	if tasks.Words[0].Meaning.Definitions[0].PartOfSpeech != "adj" {
		t.Fatalf("definitions not decoded: %+v", tasks.Words[0].Meaning)
	}
}

func TestSubmitOutcomeSendsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/learning/submit" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var sub map[string]any
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Fatalf("decode submission: %v", err)
		}
		if sub["wordId"] != float64(42) || sub["quality"] != float64(5) || sub["dictId"] != float64(3) {
			t.Fatalf("unexpected submission %v", sub)
		}
		respond(t, w, nil)
	}))
	defer server.Close()

	fx := newFixture(t, server.URL, session.Session{AccessToken: "access-1"})
	err := fx.client.SubmitOutcome(context.Background(), Submission{WordID: 42, Quality: 5, DictionaryID: 3})
	if err != nil {
		t.Fatalf("submit outcome: %v", err)
	}
}
