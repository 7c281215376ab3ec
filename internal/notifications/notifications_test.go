package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/PierrickDossin/portfolio/internal/contact"
)

type recorder struct {
	mu   sync.Mutex
	got  []Notification
	seen chan struct{}
}

func newRecorder(t *testing.T, status int) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{seen: make(chan struct{}, 8)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		var n Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			t.Errorf("decode: %v", err)
		}
		rec.mu.Lock()
		rec.got = append(rec.got, n)
		rec.mu.Unlock()
		w.WriteHeader(status)
		rec.seen <- struct{}{}
	}))
	t.Cleanup(srv.Close)
	return rec, srv
}

func TestDispatch(t *testing.T) {
	rec, ok := newRecorder(t, http.StatusOK)
	_, failing := newRecorder(t, http.StatusInternalServerError)

	d := NewDispatcher([]string{failing.URL, ok.URL})
	err := d.Dispatch(context.Background(), FromMessage(contact.Message{ID: 1, Name: "Sam", Email: "sam@example.com", Message: "Hello"}))
	if err == nil {
		t.Fatal("expected error from failing webhook")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got) != 1 {
		t.Fatalf("healthy webhook got %d notifications, want 1", len(rec.got))
	}
	n := rec.got[0]
	if n.Type != TypeContactMessage || n.Title != "New contact message from Sam" || n.Message.Email != "sam@example.com" {
		t.Errorf("notification = %+v", n)
	}
}

func TestDispatchNoWebhooks(t *testing.T) {
	if err := NewDispatcher(nil).Dispatch(context.Background(), Notification{}); err != nil {
		t.Errorf("Dispatch: %v", err)
	}
}

func TestWatch(t *testing.T) {
	rec, srv := newRecorder(t, http.StatusNoContent)
	hub := contact.NewHub()

	stop := NewDispatcher([]string{srv.URL}).Watch(hub)
	if hub.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", hub.Subscribers())
	}
	hub.Publish(contact.Message{ID: 7, Name: "Ada", Email: "ada@example.com", Message: "Hi"})

	select {
	case <-rec.seen:
	case <-time.After(5 * time.Second):
		t.Fatal("webhook not called")
	}

	stop()
	if hub.Subscribers() != 0 {
		t.Errorf("subscribers after stop = %d, want 0", hub.Subscribers())
	}
}
