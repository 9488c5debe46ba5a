package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admission-portal/config"
)

func TestSendPostsForm(t *testing.T) {
	var gotPath, gotTo, gotBody, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotTo = r.PostForm.Get("To")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(config.TwilioConfig{
		AccountSID: "AC1",
		AuthToken:  "secret",
		FromNumber: "+15550000000",
		BaseURL:    srv.URL,
	})

	if err := client.Send(context.Background(), "+15551234", "", "Your code is 123456"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/2010-04-01/Accounts/AC1/Messages.json" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotUser != "AC1" || gotTo != "+15551234" || !strings.Contains(gotBody, "123456") {
		t.Fatalf("unexpected request user=%q to=%q body=%q", gotUser, gotTo, gotBody)
	}
}

func TestSendReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()

	client := NewClient(config.TwilioConfig{AccountSID: "AC1", AuthToken: "secret", FromNumber: "+1555", BaseURL: srv.URL})
	err := client.Send(context.Background(), "bad", "", "x")
	if err == nil || !strings.Contains(err.Error(), "Invalid 'To' Phone Number") {
		t.Fatalf("err = %v", err)
	}
}

func TestSendWithoutCredentials(t *testing.T) {
	client := NewClient(config.TwilioConfig{})
	if err := client.Send(context.Background(), "+15551234", "", "x"); !errors.Is(err, ErrSMSDisabled) {
		t.Fatalf("err = %v, want ErrSMSDisabled", err)
	}
}
