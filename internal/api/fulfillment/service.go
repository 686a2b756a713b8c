package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	fulfillmentdomain "coursemarket-app/internal/domain/fulfillment"
	outboxdomain "coursemarket-app/internal/domain/outbox"
	usersdomain "coursemarket-app/internal/domain/users"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	// InTransaction runs fn against a transaction-bound copy of the
	// repository; any error rolls everything back.
	InTransaction(ctx context.Context, fn func(Repository) error) error

	CheckoutWithCart(ctx context.Context, checkoutID uint) (*checkoutdomain.Checkout, *cartdomain.Cart, error)
	SetCheckoutPaid(ctx context.Context, checkoutID uint, paymentID string) error
	GetUser(ctx context.Context, id uint) (*usersdomain.User, error)

	EnrollmentExists(ctx context.Context, userID, courseID uint) (bool, error)
	CreateEnrollment(ctx context.Context, e *fulfillmentdomain.Enrollment) error

	CreateCompanyPurchase(ctx context.Context, p *fulfillmentdomain.CompanyPurchase) error
	CreatePurchaseItem(ctx context.Context, pi *fulfillmentdomain.PurchaseItem) error
	CreateCredential(ctx context.Context, cr *fulfillmentdomain.EmployeeCredential) error
	LoginEmailTaken(ctx context.Context, email string) (bool, error)

	ClearCart(ctx context.Context, cartID uint) error
	EnqueueEmail(ctx context.Context, m *outboxdomain.EmailMessage) error
}

type Service struct {
	repo Repository

	// nudges the email outbox dispatcher after a commit; may be nil.
	notify func()
}

func NewService(repo Repository, notify func()) *Service {
	return &Service{repo: repo, notify: notify}
}

// MarkPaid transitions a checkout PENDING→PAID exactly once and runs the
// owner-specific fulfillment branch inside one transaction. Redelivered
// webhooks hit the Conflict guard and change nothing.
func (s *Service) MarkPaid(ctx context.Context, checkoutID uint, paymentID string) error {
	ck, crt, err := s.repo.CheckoutWithCart(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "checkout not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to load checkout", err)
	}

	if ck.Status == checkoutdomain.StatusPaid {
		return apperr.New(apperr.Conflict, "checkout is already paid")
	}

	// Both or neither owner set means corrupted data; refuse loudly.
	if (ck.BuyerID == nil) == (ck.CompanyID == nil) {
		log.Printf("❌ checkout %d has ambiguous owner (buyer=%v company=%v)", ck.ID, ck.BuyerID, ck.CompanyID)
		return apperr.New(apperr.InvalidState, "checkout owner is ambiguous")
	}

	txErr := s.repo.InTransaction(ctx, func(tx Repository) error {
		if err := tx.SetCheckoutPaid(ctx, ck.ID, paymentID); err != nil {
			return fmt.Errorf("set checkout paid: %w", err)
		}

		if ck.IsCompany() {
			if err := s.fulfillCompany(ctx, tx, ck, crt, paymentID); err != nil {
				return err
			}
		} else {
			if err := s.fulfillIndividual(ctx, tx, ck, crt); err != nil {
				return err
			}
		}

		return tx.ClearCart(ctx, crt.ID)
	})
	if txErr != nil {
		var appErr *apperr.Error
		if errors.As(txErr, &appErr) {
			return appErr
		}
		return apperr.Wrap(apperr.Internal, "fulfillment failed", txErr)
	}

	if s.notify != nil {
		s.notify()
	}
	return nil
}

// fulfillIndividual grants one enrollment per cart item's course. Already
// existing enrollments are skipped so redelivery never double-enrolls.
func (s *Service) fulfillIndividual(ctx context.Context, tx Repository, ck *checkoutdomain.Checkout, crt *cartdomain.Cart) error {
	buyerID := *ck.BuyerID
	for _, item := range crt.Items {
		if item.Product == nil || item.Product.CourseID == nil {
			continue
		}
		courseID := *item.Product.CourseID

		exists, err := tx.EnrollmentExists(ctx, buyerID, courseID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if exists {
			continue
		}
		if err := tx.CreateEnrollment(ctx, &fulfillmentdomain.Enrollment{UserID: buyerID, CourseID: courseID}); err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}
	}
	return nil
}

// fulfillCompany records the purchase and issues one employee credential per
// purchased seat, enqueueing the credential emails in the same transaction.
func (s *Service) fulfillCompany(ctx context.Context, tx Repository, ck *checkoutdomain.Checkout, crt *cartdomain.Cart, paymentID string) error {
	companyID := *ck.CompanyID

	company, err := tx.GetUser(ctx, companyID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "company not found", err)
	}

	purchase := &fulfillmentdomain.CompanyPurchase{
		CompanyID:  companyID,
		CheckoutID: ck.ID,
		PaymentID:  paymentID,
	}
	if err := tx.CreateCompanyPurchase(ctx, purchase); err != nil {
		return fmt.Errorf("create company purchase: %w", err)
	}

	contact := company.Email
	if company.ContactEmail != nil && *company.ContactEmail != "" {
		contact = *company.ContactEmail
	}

	for _, item := range crt.Items {
		line := &fulfillmentdomain.PurchaseItem{
			CompanyPurchaseID: purchase.ID,
			ProductID:         item.ProductID,
			Seats:             item.Quantity,
		}
		if err := tx.CreatePurchaseItem(ctx, line); err != nil {
			return fmt.Errorf("create purchase item: %w", err)
		}

		productName := ""
		if item.Product != nil {
			productName = item.Product.Name
		}

		for seat := 0; seat < item.Quantity; seat++ {
			cred, plaintext, err := generateCredential(ctx, contact, line.ID, tx.LoginEmailTaken)
			if err != nil {
				return err
			}
			if err := tx.CreateCredential(ctx, cred); err != nil {
				return fmt.Errorf("create credential: %w", err)
			}

			msg := &outboxdomain.EmailMessage{
				Recipient:    contact,
				Subject:      "Your employee access credentials",
				Body:         credentialEmailBody(productName, cred.LoginEmail, plaintext),
				CredentialID: &cred.ID,
			}
			if err := tx.EnqueueEmail(ctx, msg); err != nil {
				return fmt.Errorf("enqueue credential email: %w", err)
			}
		}
	}
	return nil
}

func credentialEmailBody(productName, loginEmail, password string) string {
	return fmt.Sprintf(
		"<p>A seat for <b>%s</b> has been purchased for your team.</p>"+
			"<p>Login: <b>%s</b><br>Password: <b>%s</b></p>"+
			"<p>Please change the password after the first login.</p>",
		productName, loginEmail, password,
	)
}
