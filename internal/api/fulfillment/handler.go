package fulfillment

import (
	"context"
	"net/http"
	"time"

	fulfillmentdomain "coursemarket-app/internal/domain/fulfillment"

	"github.com/gin-gonic/gin"
)

// Lister serves the read-side endpoints.
type Lister interface {
	ListEnrollmentsForUser(ctx context.Context, userID uint) ([]fulfillmentdomain.Enrollment, error)
	ListCredentialsForCompany(ctx context.Context, companyID uint) ([]fulfillmentdomain.EmployeeCredential, error)
}

type Handler struct {
	lister Lister
}

func NewHandler(lister Lister) *Handler {
	return &Handler{lister: lister}
}

func (h *Handler) ListEnrollments(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	list, err := h.lister.ListEnrollmentsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrollments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type credentialDTO struct {
	ID         uint       `json:"id"`
	LoginEmail string     `json:"login_email"`
	IsSent     bool       `json:"is_sent"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListCredentials exposes the company's issued seats. Password hashes stay
// server-side; the plaintext was only ever in the credential email.
func (h *Handler) ListCredentials(c *gin.Context) {
	companyID := c.GetUint("user_id")
	if companyID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	creds, err := h.lister.ListCredentialsForCompany(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credentials"})
		return
	}

	out := make([]credentialDTO, 0, len(creds))
	for _, cr := range creds {
		out = append(out, credentialDTO{
			ID:         cr.ID,
			LoginEmail: cr.LoginEmail,
			IsSent:     cr.IsSent,
			SentAt:     cr.SentAt,
			CreatedAt:  cr.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
