package travis

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// RepositoryKey fetches the PEM encoded RSA public key Travis publishes
// for a repository. Keys are cached per slug for the client's lifetime.
func (c *Client) RepositoryKey(ctx context.Context, slug string) (string, error) {
	if err := c.ensureAuthenticated(); err != nil {
		return "", err
	}

	if key, ok := c.keys[slug]; ok {
		return key, nil
	}

	resource := fmt.Sprintf("/repos/%s/key", slug)
	response, err := c.endpoint.Do(ctx, resource, endpoint.Options{})
	if err != nil {
		return "", fmt.Errorf("fetching repository key: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return "", endpoint.NewStatusError("repository key", resource, response)
	}

	var wrapped keyResponse
	if err := response.Decode(&wrapped); err != nil {
		return "", fmt.Errorf("decoding repository key: %w", err)
	}

	c.keys[slug] = wrapped.Key
	return wrapped.Key, nil
}

// Encrypt seals value with the repository's public key the way the
// `travis encrypt` tool does: RSA PKCS#1 v1.5 then base64. The result is
// what a .travis.yml `secure:` entry expects.
func (c *Client) Encrypt(ctx context.Context, slug, value string) (string, error) {
	pemKey, err := c.RepositoryKey(ctx, slug)
	if err != nil {
		return "", err
	}

	publicKey, err := parsePublicKey(pemKey)
	if err != nil {
		return "", fmt.Errorf("parsing key for %s: %w", slug, err)
	}

	sealed, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, []byte(value))
	if err != nil {
		return "", fmt.Errorf("encrypting for %s: %w", slug, err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// parsePublicKey handles both encodings Travis has served over time:
// PKIX ("BEGIN PUBLIC KEY") and the older PKCS#1 ("BEGIN RSA PUBLIC KEY").
func parsePublicKey(pemKey string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errNotPEM
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		key, pkcs1Err := x509.ParsePKCS1PublicKey(block.Bytes)
		if pkcs1Err != nil {
			return nil, fmt.Errorf("unsupported public key: %w", err)
		}
		return key, nil
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errNotRSA, parsed)
	}
	return key, nil
}
