package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgaunet/gitci/pkg/github"
)

func TestCreateWebhook(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/owner/repo/hooks" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		if request.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", request.Method)
		}
		json.NewDecoder(request.Body).Decode(&body)
		writer.WriteHeader(http.StatusCreated)
		writer.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	err := client.CreateWebhook(context.Background(), "owner", "repo",
		"https://ci.example.com/hook", "shared-secret", github.WebhookOptions{})
	if err != nil {
		t.Fatalf("CreateWebhook: %v", err)
	}

	if body["name"] != "web" || body["active"] != true {
		t.Errorf("payload = %v", body)
	}
	events, _ := body["events"].([]any)
	if len(events) != 1 || events[0] != "push" {
		t.Errorf("events = %v, want [push]", events)
	}
	config, _ := body["config"].(map[string]any)
	if config["url"] != "https://ci.example.com/hook" {
		t.Errorf("config url = %v", config["url"])
	}
	if config["content_type"] != "json" {
		t.Errorf("config content_type = %v, want json", config["content_type"])
	}
	if config["secret"] != "shared-secret" {
		t.Errorf("config secret = %v", config["secret"])
	}
	if config["insecure_ssl"] != "1" {
		t.Errorf("config insecure_ssl = %v, want \"1\" by default", config["insecure_ssl"])
	}
}

func TestCreateWebhookVerifySSLOmitsInsecureFlag(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		json.NewDecoder(request.Body).Decode(&body)
		writer.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	err := client.CreateWebhook(context.Background(), "owner", "repo",
		"https://ci.example.com/hook", "shared-secret",
		github.WebhookOptions{VerifySSL: true, Events: []string{"push", "pull_request"}})
	if err != nil {
		t.Fatalf("CreateWebhook: %v", err)
	}

	config, _ := body["config"].(map[string]any)
	if _, present := config["insecure_ssl"]; present {
		t.Error("insecure_ssl should be omitted when VerifySSL is set")
	}
	events, _ := body["events"].([]any)
	if len(events) != 2 {
		t.Errorf("events = %v, want the caller's two events", events)
	}
}

func TestCreateWebhookUnexpectedStatusRaises(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		writer.Write([]byte(`{"message":"Validation Failed"}`))
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	err := client.CreateWebhook(context.Background(), "owner", "repo",
		"https://ci.example.com/hook", "shared-secret", github.WebhookOptions{})
	if err == nil {
		t.Fatal("CreateWebhook should fail on non-201 status")
	}
}
