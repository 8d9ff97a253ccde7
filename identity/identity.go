// Package identity verifies bearer credentials issued by the external identity provider and, where the
// provider allows it, manages accounts on it.
package identity

import (
	"context"
	"strings"
)

// Identity is what a verified credential tells us about the caller.
type Identity struct {
	Subject string
	Email   string
	Phone   string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// BearerToken extracts the credential from an Authorization header value. ok=false when the header
// is missing or not a bearer credential.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
