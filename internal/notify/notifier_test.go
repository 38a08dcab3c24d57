package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "Tracker/internal/domain"
)

var complainant = dom.Complainant{PhoneNumber: "+15550001111", Email: "c@x.com"}

func newTwilioTestServer(t *testing.T, status int) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		sid, token, ok := r.BasicAuth()
		if !ok || sid != "AC123" || token != "tok" {
			t.Errorf("basic auth mismatch: %q %q", sid, token)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("To"); got != complainant.PhoneNumber {
			t.Errorf("To mismatch: %q", got)
		}
		if got := r.PostForm.Get("From"); got != "+15559990000" {
			t.Errorf("From mismatch: %q", got)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newSendgridTestServer(t *testing.T, status int) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if got := r.Header.Get("Authorization"); got != "Bearer sg-key" {
			t.Errorf("authorization mismatch: %q", got)
		}
		var payload struct {
			Personalizations []struct {
				To []struct {
					Email string `json:"email"`
				} `json:"to"`
			} `json:"personalizations"`
			Subject string `json:"subject"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload.Personalizations) != 1 || len(payload.Personalizations[0].To) != 1 {
			t.Errorf("unexpected personalizations: %+v", payload.Personalizations)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newTestChannels(t *testing.T, twilioStatus, sendgridStatus int) (Channel, Channel) {
	twilioSrv, _ := newTwilioTestServer(t, twilioStatus)
	sms := NewTwilioChannel("AC123", "tok", "+15559990000")
	sms.baseURL = twilioSrv.URL

	sendgridSrv, _ := newSendgridTestServer(t, sendgridStatus)
	email := NewSendgridChannel("sg-key", "noreply@yourdomain.com")
	email.baseURL = sendgridSrv.URL

	return sms, email
}

func TestNotify_BothChannelsSucceed(t *testing.T) {
	sms, email := newTestChannels(t, http.StatusCreated, http.StatusAccepted)
	d := NewDispatcher(sms, email, time.Second)

	res := d.Notify(context.Background(), 17, complainant)
	if res.SMS != StatusSent || res.Email != StatusSent {
		t.Fatalf("expected sent/sent, got %+v", res)
	}
}

func TestNotify_OneChannelFailingDoesNotAffectTheOther(t *testing.T) {
	sms, email := newTestChannels(t, http.StatusInternalServerError, http.StatusAccepted)
	d := NewDispatcher(sms, email, time.Second)

	res := d.Notify(context.Background(), 17, complainant)
	if res.SMS != StatusFailed {
		t.Fatalf("expected sms failed, got %q", res.SMS)
	}
	if res.Email != StatusSent {
		t.Fatalf("expected email sent despite sms failure, got %q", res.Email)
	}
}

func TestNotify_TimeoutIsFailedNotFatal(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	sms := NewTwilioChannel("AC123", "tok", "+15559990000")
	sms.baseURL = slow.URL
	d := NewDispatcher(sms, nil, 50*time.Millisecond)

	res := d.Notify(context.Background(), 17, complainant)
	if res.SMS != StatusFailed {
		t.Fatalf("expected sms failed on timeout, got %q", res.SMS)
	}
}

func TestNotify_SkippedChannels(t *testing.T) {
	d := NewDispatcher(nil, nil, time.Second)
	res := d.Notify(context.Background(), 17, complainant)
	if res.SMS != StatusSkipped || res.Email != StatusSkipped {
		t.Fatalf("expected skipped/skipped without channels, got %+v", res)
	}

	sms, email := newTestChannels(t, http.StatusCreated, http.StatusAccepted)
	d = NewDispatcher(sms, email, time.Second)
	res = d.Notify(context.Background(), 17, dom.Complainant{})
	if res.SMS != StatusSkipped || res.Email != StatusSkipped {
		t.Fatalf("expected skipped/skipped without recipients, got %+v", res)
	}
}

func TestSendPasswordReset(t *testing.T) {
	srv, calls := newSendgridTestServer(t, http.StatusAccepted)
	email := NewSendgridChannel("sg-key", "noreply@yourdomain.com")
	email.baseURL = srv.URL
	d := NewDispatcher(nil, email, time.Second)

	if err := d.SendPasswordReset(context.Background(), "a@x.com", "http://localhost:3000/update-password/tok"); err != nil {
		t.Fatalf("SendPasswordReset error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("expected 1 email call, got %d", *calls)
	}

	d = NewDispatcher(nil, nil, time.Second)
	if err := d.SendPasswordReset(context.Background(), "a@x.com", "link"); err != ErrNoEmailChannel {
		t.Fatalf("expected ErrNoEmailChannel, got %v", err)
	}
}
