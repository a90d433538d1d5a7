package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Generate(t *testing.T) {
	var gotPath string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"completion": "9:00 AM - Breakfast at Marine Drive"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	completion, err := client.Generate(context.Background(), []Message{
		{Role: "system", Content: "plan outings"},
		{Role: "user", Content: "plan one"},
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if completion != "9:00 AM - Breakfast at Marine Drive" {
		t.Fatalf("unexpected completion: %q", completion)
	}
	if gotPath != "/text/llm/" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
}

func TestClient_GenerateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Generate(context.Background(), []Message{{Role: "user", Content: "plan"}}); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestClient_GenerateRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	if _, err := client.Generate(ctx, []Message{{Role: "user", Content: "plan"}}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestClient_BuildPlanSendsSystemPrompt(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"completion": "plan"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	a := personality("budget", "introvert", "low")
	b := personality("budget", "introvert", "low")
	if _, err := client.BuildPlan(context.Background(), a, b, "Pune", nil, nil); err != nil {
		t.Fatalf("BuildPlan returned error: %v", err)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected message roles: %+v", gotReq.Messages)
	}
}
