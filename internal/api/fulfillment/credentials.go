package fulfillment

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"coursemarket-app/internal/apperr"
	fulfillmentdomain "coursemarket-app/internal/domain/fulfillment"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxLoginAttempts bounds the collision probe for generated login emails.
const maxLoginAttempts = 10

// loginCandidate derives "<local>_emp_<suffix>@<domain>" from the company
// contact address, e.g. acme@co.com -> acme_emp_1a2b3c@co.com.
func loginCandidate(contactEmail string) string {
	local, domain := splitEmail(contactEmail)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s_emp_%s@%s", local, suffix, domain)
}

func splitEmail(email string) (local, domain string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, "invalid.local"
	}
	return email[:at], email[at+1:]
}

func generatePassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// generateCredential probes candidate login emails until a free one is found,
// then hashes a fresh random password. The plaintext is returned once for the
// credential email and never persisted.
func generateCredential(ctx context.Context, contactEmail string, purchaseItemID uint, taken func(context.Context, string) (bool, error)) (*fulfillmentdomain.EmployeeCredential, string, error) {
	var loginEmail string
	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		candidate := loginCandidate(contactEmail)
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return nil, "", apperr.Wrap(apperr.Internal, "failed to check login email", err)
		}
		if !inUse {
			loginEmail = candidate
			break
		}
	}
	if loginEmail == "" {
		return nil, "", apperr.New(apperr.ResourceExhausted, "could not generate a free login email")
	}

	plaintext, err := generatePassword()
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "failed to generate password", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	cred := &fulfillmentdomain.EmployeeCredential{
		PurchaseItemID: purchaseItemID,
		LoginEmail:     loginEmail,
		PasswordHash:   string(hash),
	}
	return cred, plaintext, nil
}
