package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/PierrickDossin/portfolio/internal/db"
)

func setupTestStore(t *testing.T, hub *Hub) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, hub)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"valid", Message{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, false},
		{"trims", Message{Name: " Ada ", Email: " ada@example.com ", Message: " Hi "}, false},
		{"missing name", Message{Email: "ada@example.com", Message: "Hi"}, true},
		{"missing email", Message{Name: "Ada", Message: "Hi"}, true},
		{"bad email", Message{Name: "Ada", Email: "not-an-email", Message: "Hi"}, true},
		{"display name form", Message{Name: "Ada", Email: "Ada <ada@example.com>", Message: "Hi"}, true},
		{"missing message", Message{Name: "Ada", Email: "ada@example.com", Message: "   "}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.msg
			if err := m.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateListAndMarkRead(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	first, err := store.Create(ctx, Message{Name: "A", Email: "a@example.com", Message: "first"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, _ := store.Create(ctx, Message{Name: "B", Email: "b@example.com", Message: "second"})

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID {
		t.Errorf("expected newest first, got %+v", all)
	}

	read, err := store.MarkRead(ctx, first.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !read.IsRead {
		t.Error("expected message marked read")
	}

	unread, _ := store.Unread(ctx)
	if len(unread) != 1 || unread[0].ID != second.ID {
		t.Errorf("Unread = %+v", unread)
	}

	if _, err := store.MarkRead(ctx, 999); err != ErrNotFound {
		t.Errorf("MarkRead missing: %v", err)
	}
	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, first.ID); err != ErrNotFound {
		t.Errorf("second Delete: %v", err)
	}
}

func TestHubPublishAndCancel(t *testing.T) {
	hub := NewHub()
	_, ch, cancel := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", hub.Subscribers())
	}

	hub.Publish(Message{ID: 7, Name: "A"})
	select {
	case m := <-ch:
		if m.ID != 7 {
			t.Errorf("received id %d, want 7", m.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for publish")
	}

	cancel()
	cancel()
	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() after cancel = %d", hub.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after cancel")
	}
	hub.Publish(Message{ID: 8})
}

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub()
	_, ch, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(Message{ID: int64(i)})
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered %d messages, want %d", len(ch), subscriberBuffer)
	}
}

func TestRoutes(t *testing.T) {
	store := setupTestStore(t, nil)
	r := chi.NewRouter()
	RegisterRoutes(r, store, nil)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello"}`, http.StatusCreated},
		{http.MethodPost, "/api/contact", `{"name":"Ada","email":"nope","message":"Hello"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/contact", `not json`, http.StatusBadRequest},
		{http.MethodGet, "/api/contact", "", http.StatusOK},
		{http.MethodGet, "/api/contact/unread", "", http.StatusOK},
		{http.MethodGet, "/api/contact/1", "", http.StatusOK},
		{http.MethodGet, "/api/contact/2", "", http.StatusNotFound},
		{http.MethodGet, "/api/contact/stream", "", http.StatusBadRequest},
		{http.MethodPatch, "/api/contact/1/read", "", http.StatusOK},
		{http.MethodPatch, "/api/contact/2/read", "", http.StatusNotFound},
		{http.MethodDelete, "/api/contact/1", "", http.StatusNoContent},
		{http.MethodDelete, "/api/contact/1", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d (body %s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestStreamPushesNewMessages(t *testing.T) {
	hub := NewHub()
	store := setupTestStore(t, hub)
	r := chi.NewRouter()
	RegisterRoutes(r, store, hub)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/contact/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	body := `{"name":"Grace","email":"grace@example.com","message":"Nice pipeline"}`
	post, err := http.Post(server.URL+"/api/contact", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	post.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev streamEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != "message" || ev.Message.Name != "Grace" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestListEncodesEmptyArray(t *testing.T) {
	store := setupTestStore(t, nil)
	r := chi.NewRouter()
	RegisterRoutes(r, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contact/unread", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var list []Message
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list == nil {
		t.Error("expected [] not null")
	}
}
