package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgaunet/gitci/pkg/endpoint"
	"github.com/sgaunet/gitci/pkg/github"
)

func TestGetHead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/owner/repo/git/refs/heads/master" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		json.NewEncoder(writer).Encode(map[string]any{
			"ref":    "refs/heads/master",
			"object": map[string]string{"sha": "deadbeef", "type": "commit"},
		})
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	sha, err := client.GetHead(context.Background(), "owner", "repo", "master")
	if err != nil {
		t.Fatalf("GetHead: %v", err)
	}
	if sha != "deadbeef" {
		t.Errorf("sha = %q, want deadbeef", sha)
	}
}

func TestGetHeadMissingBranchIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	sha, err := client.GetHead(context.Background(), "owner", "repo", "no-such-branch")
	if err != nil {
		t.Fatalf("GetHead should swallow a 404: %v", err)
	}
	if sha != "" {
		t.Errorf("sha = %q, want empty", sha)
	}
}

func TestCherryPick(t *testing.T) {
	var patchBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", request.Method)
		}
		json.NewDecoder(request.Body).Decode(&patchBody)
		json.NewEncoder(writer).Encode(map[string]string{"ref": "refs/heads/master"})
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	sha, err := client.CherryPick(context.Background(), "owner", "repo", "cafebabe", "master", true)
	if err != nil {
		t.Fatalf("CherryPick: %v", err)
	}
	if sha != "cafebabe" {
		t.Errorf("sha = %q, want cafebabe", sha)
	}
	if patchBody["sha"] != "cafebabe" || patchBody["force"] != true {
		t.Errorf("payload = %v, want sha+force", patchBody)
	}
}

func TestCherryPickFailureRaises(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		writer.Write([]byte(`{"message":"Update is not a fast forward"}`))
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	_, err := client.CherryPick(context.Background(), "owner", "repo", "cafebabe", "master", false)
	if err == nil {
		t.Fatal("CherryPick should fail on non-200 status")
	}
	if endpoint.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Errorf("StatusOf(err) = %d, want 422", endpoint.StatusOf(err))
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSHA string
		wantErr bool
	}{
		{
			name:    "successful merge returns commit sha",
			status:  http.StatusCreated,
			body:    `{"sha":"mergedsha"}`,
			wantSHA: "mergedsha",
		},
		{
			name:    "accepted merge",
			status:  http.StatusAccepted,
			body:    `{"sha":"acceptedsha"}`,
			wantSHA: "acceptedsha",
		},
		{
			name:    "no-op merge with sha in body",
			status:  http.StatusNoContent,
			body:    `{"sha":"noopsha"}`,
			wantSHA: "noopsha",
		},
		{
			name:    "no-op merge with empty body yields empty sha without raising",
			status:  http.StatusNoContent,
			body:    "",
			wantSHA: "",
		},
		{
			name:    "conflict raises",
			status:  http.StatusConflict,
			body:    `{"message":"Merge conflict"}`,
			wantErr: true,
		},
		{
			name:    "missing base or head raises",
			status:  http.StatusNotFound,
			body:    `{"message":"Base does not exist"}`,
			wantErr: true,
		},
		{
			name:    "unknown status raises",
			status:  http.StatusInternalServerError,
			body:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mergeBody map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if request.URL.Path != "/repos/owner/repo/merges" {
					t.Errorf("unexpected path: %s", request.URL.Path)
				}
				json.NewDecoder(request.Body).Decode(&mergeBody)
				writer.WriteHeader(tt.status)
				writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := github.NewClient(server.URL, "test-token")
			sha, err := client.Merge(context.Background(), "owner", "repo", "headsha", "master")

			if tt.wantErr {
				if err == nil {
					t.Fatal("Merge should fail")
				}
				if endpoint.StatusOf(err) != tt.status {
					t.Errorf("StatusOf(err) = %d, want %d", endpoint.StatusOf(err), tt.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}
			if sha != tt.wantSHA {
				t.Errorf("sha = %q, want %q", sha, tt.wantSHA)
			}
			if mergeBody["base"] != "master" || mergeBody["head"] != "headsha" {
				t.Errorf("payload = %v", mergeBody)
			}
		})
	}
}
