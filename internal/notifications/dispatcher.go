package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PierrickDossin/portfolio/internal/contact"
)

// Dispatcher delivers notifications to webhook URLs.
type Dispatcher struct {
	urls   []string
	client *http.Client
}

// NewDispatcher creates a Dispatcher for the given webhook URLs.
func NewDispatcher(urls []string) *Dispatcher {
	return &Dispatcher{
		urls: urls,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Dispatch sends n to every webhook. A failing webhook does not stop
// delivery to the others; all failures are returned joined.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshalling notification: %w", err)
	}
	var errs []error
	for _, url := range d.urls {
		if err := d.SendWebhook(ctx, url, payload); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
		}
	}
	return errors.Join(errs...)
}

// Watch subscribes to hub and dispatches every published message until the
// returned stop function is called.
func (d *Dispatcher) Watch(hub *contact.Hub) (stop func()) {
	_, ch, cancel := hub.Subscribe()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		for m := range ch {
			if err := d.Dispatch(ctx, FromMessage(m)); err != nil {
				log.Printf("notifications: message %d: %v", m.ID, err)
			}
		}
	}()

	return func() {
		cancelCtx()
		cancel()
		<-done
	}
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
