package endpoint_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

type repoPayload struct {
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

func TestFutureResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"full_name":"owner/repo","private":false}`))
	}))
	defer server.Close()

	client := endpoint.New(server.URL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/repos/owner/repo", endpoint.Options{})

	repo, ok := future.Resolve()
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if repo.FullName != "owner/repo" {
		t.Errorf("FullName = %q, want owner/repo", repo.FullName)
	}
	if response := future.Response(); response == nil || response.StatusCode != http.StatusOK {
		t.Errorf("Response() = %+v, want status 200", response)
	}
}

func TestFutureResolveIsIdempotent(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writer.Write([]byte(`{"full_name":"owner/repo"}`))
	}))
	defer server.Close()

	client := endpoint.New(server.URL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/repos/owner/repo", endpoint.Options{})

	first, ok1 := future.Resolve()
	second, ok2 := future.Resolve()

	if !ok1 || !ok2 {
		t.Fatalf("Resolve() ok = %v, %v, want true twice", ok1, ok2)
	}
	if first != second {
		t.Errorf("repeated Resolve() results differ: %+v vs %+v", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want exactly 1", hits.Load())
	}
}

func TestFutureResolveConcurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"full_name":"owner/repo"}`))
	}))
	defer server.Close()

	client := endpoint.New(server.URL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/repos/owner/repo", endpoint.Options{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := future.Resolve(); !ok {
				t.Error("concurrent Resolve() ok = false")
			}
		}()
	}
	wg.Wait()
}

func TestFutureTransportFailureYieldsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serverURL := server.URL
	server.Close() // connection refused from here on

	client := endpoint.New(serverURL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/repos/owner/repo", endpoint.Options{})

	repo, ok := future.Resolve()
	if ok {
		t.Error("Resolve() ok = true after transport failure")
	}
	if repo != (repoPayload{}) {
		t.Errorf("Resolve() value = %+v, want zero value", repo)
	}
	if future.Response() != nil {
		t.Error("Response() should stay nil after transport failure")
	}
}

func TestFutureUnexpectedStatusStillDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		writer.Write([]byte(`{"full_name":"owner/repo"}`))
	}))
	defer server.Close()

	client := endpoint.New(server.URL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/repos/owner/repo", endpoint.Options{})

	repo, ok := future.Resolve()
	if !ok {
		t.Fatal("Resolve() ok = false; unexpected status should not discard the body")
	}
	if repo.FullName != "owner/repo" {
		t.Errorf("FullName = %q", repo.FullName)
	}
	if future.Response().StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", future.Response().StatusCode)
	}
}

func TestFutureBadJSONYieldsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := endpoint.New(server.URL, "")
	future := endpoint.Fetch[repoPayload](context.Background(), client, "/", endpoint.Options{})

	if _, ok := future.Resolve(); ok {
		t.Error("Resolve() ok = true for undecodable body")
	}
	// The raw response stays inspectable even when decoding failed.
	if future.Response() == nil {
		t.Error("Response() = nil, want raw response")
	}
}
