package github_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgaunet/gitci/pkg/github"
)

func TestGetFile(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("language: go\n"))
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/owner/repo/contents/.travis.yml" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		json.NewEncoder(writer).Encode(map[string]string{
			"encoding": "base64",
			"content":  content,
			"sha":      "abc123",
		})
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	raw, err := client.GetFile(context.Background(), "owner", "repo", ".travis.yml")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(raw) != "language: go\n" {
		t.Errorf("content = %q", raw)
	}
}

func TestGetFileRejectsNonBase64Encoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(writer).Encode(map[string]string{
			"encoding": "utf-8",
			"content":  "plain text",
		})
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	_, err := client.GetFile(context.Background(), "owner", "repo", "README")
	if !errors.Is(err, github.ErrBadEncoding) {
		t.Errorf("err = %v, want ErrBadEncoding", err)
	}
}

func TestGetFileErrorsOnNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	if _, err := client.GetFile(context.Background(), "owner", "repo", "missing.txt"); err == nil {
		t.Fatal("GetFile should fail on 404")
	}
}

// commitServer fakes the contents endpoint: a GET lookup followed by a PUT.
func commitServer(t *testing.T, lookupStatus int, lookupSHA string, putStatus int, putBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.URL.Path == "/user":
			json.NewEncoder(writer).Encode(github.User{Login: "octocat", Name: "The Octocat", Email: "octo@cat.dev"})
		case request.Method == http.MethodGet:
			writer.WriteHeader(lookupStatus)
			if lookupStatus == http.StatusOK {
				json.NewEncoder(writer).Encode(map[string]string{"sha": lookupSHA})
			} else {
				writer.Write([]byte(`{"message":"Not Found"}`))
			}
		case request.Method == http.MethodPut:
			json.NewDecoder(request.Body).Decode(putBody)
			writer.WriteHeader(putStatus)
			writer.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
	}))
}

func TestCommitFileCreatesWhenMissing(t *testing.T) {
	var putBody map[string]any
	server := commitServer(t, http.StatusNotFound, "", http.StatusCreated, &putBody)
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	ok, err := client.CommitFile(context.Background(), "owner", "repo", ".travis.yml",
		[]byte("language: go\n"), "add travis config", "master")
	if err != nil {
		t.Fatalf("CommitFile: %v", err)
	}
	if !ok {
		t.Error("CommitFile = false, want true for 201 on a new file")
	}

	if _, present := putBody["sha"]; present {
		t.Error("PUT payload contains sha for a new file")
	}
	committer, _ := putBody["committer"].(map[string]any)
	if committer["name"] != "The Octocat" || committer["email"] != "octo@cat.dev" {
		t.Errorf("committer = %v, want cached current user identity", committer)
	}
	wantContent := base64.StdEncoding.EncodeToString([]byte("language: go\n"))
	if putBody["content"] != wantContent {
		t.Errorf("content = %v, want base64 %q", putBody["content"], wantContent)
	}
}

func TestCommitFileCreateWrongStatus(t *testing.T) {
	var putBody map[string]any
	server := commitServer(t, http.StatusNotFound, "", http.StatusOK, &putBody)
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	ok, err := client.CommitFile(context.Background(), "owner", "repo", "file",
		[]byte("x"), "msg", "master")
	if err != nil {
		t.Fatalf("CommitFile: %v", err)
	}
	if ok {
		t.Error("CommitFile = true, want false when a create returns 200")
	}
}

func TestCommitFileUpdatesExisting(t *testing.T) {
	var putBody map[string]any
	server := commitServer(t, http.StatusOK, "abc", http.StatusOK, &putBody)
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	ok, err := client.CommitFile(context.Background(), "owner", "repo", ".travis.yml",
		[]byte("language: go\n"), "update travis config", "master")
	if err != nil {
		t.Fatalf("CommitFile: %v", err)
	}
	if !ok {
		t.Error("CommitFile = false, want true for 200 on an update")
	}
	if putBody["sha"] != "abc" {
		t.Errorf(`PUT payload sha = %v, want "abc"`, putBody["sha"])
	}
}

func TestCommitFileUpdateWrongStatus(t *testing.T) {
	var putBody map[string]any
	server := commitServer(t, http.StatusOK, "abc", http.StatusCreated, &putBody)
	defer server.Close()

	client := github.NewClient(server.URL, "test-token")
	ok, err := client.CommitFile(context.Background(), "owner", "repo", "file",
		[]byte("x"), "msg", "master")
	if err != nil {
		t.Fatalf("CommitFile: %v", err)
	}
	if ok {
		t.Error("CommitFile = true, want false when an update returns 201")
	}
}
