package travis_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sgaunet/gitci/pkg/travis"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshalling public key: %v", err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemKey)
}

func keyServer(t *testing.T, pemKey string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/owner/repo/key" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		hits.Add(1)
		json.NewEncoder(writer).Encode(map[string]string{"key": pemKey})
	}))
	return server, &hits
}

func TestRepositoryKeyIsCached(t *testing.T) {
	_, pemKey := testKeyPair(t)
	server, hits := keyServer(t, pemKey)
	defer server.Close()

	client := travis.NewClient(server.URL, "test-token")

	first, err := client.RepositoryKey(context.Background(), "owner/repo")
	if err != nil {
		t.Fatalf("RepositoryKey: %v", err)
	}
	second, err := client.RepositoryKey(context.Background(), "owner/repo")
	if err != nil {
		t.Fatalf("RepositoryKey (cached): %v", err)
	}
	if first != pemKey || second != pemKey {
		t.Error("RepositoryKey returned an unexpected key")
	}
	if hits.Load() != 1 {
		t.Errorf("key fetched %d times, want exactly 1", hits.Load())
	}
}

func TestEncryptRoundTrip(t *testing.T) {
	privateKey, pemKey := testKeyPair(t)
	server, _ := keyServer(t, pemKey)
	defer server.Close()

	client := travis.NewClient(server.URL, "test-token")
	sealed, err := client.Encrypt(context.Background(), "owner/repo", "DEPLOY_TOKEN=hunter2")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("decoding sealed value: %v", err)
	}
	plain, err := rsa.DecryptPKCS1v15(nil, privateKey, raw)
	if err != nil {
		t.Fatalf("decrypting sealed value: %v", err)
	}
	if string(plain) != "DEPLOY_TOKEN=hunter2" {
		t.Errorf("decrypted = %q", plain)
	}
}

func TestEncryptAcceptsPKCS1Keys(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	der := x509.MarshalPKCS1PublicKey(&privateKey.PublicKey)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: der}))

	server, _ := keyServer(t, pemKey)
	defer server.Close()

	client := travis.NewClient(server.URL, "test-token")
	sealed, err := client.Encrypt(context.Background(), "owner/repo", "secret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("decoding sealed value: %v", err)
	}
	if _, err := rsa.DecryptPKCS1v15(nil, privateKey, raw); err != nil {
		t.Errorf("decrypting sealed value: %v", err)
	}
}

func TestEncryptRejectsNonPEMKeys(t *testing.T) {
	server, _ := keyServer(t, "not a pem block")
	defer server.Close()

	client := travis.NewClient(server.URL, "test-token")
	_, err := client.Encrypt(context.Background(), "owner/repo", "secret")
	if !errors.Is(err, travis.ErrNotPEM) {
		t.Fatalf("err = %v, want ErrNotPEM", err)
	}
}

func TestRepositoryKeyErrorsOnNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := travis.NewClient(server.URL, "test-token")
	if _, err := client.RepositoryKey(context.Background(), "owner/repo"); err == nil {
		t.Fatal("RepositoryKey should fail on 404")
	}
}
