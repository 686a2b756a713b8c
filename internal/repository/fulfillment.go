package repository

import (
	"context"

	fulfillmentapi "coursemarket-app/internal/api/fulfillment"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	fulfillmentdomain "coursemarket-app/internal/domain/fulfillment"
	outboxdomain "coursemarket-app/internal/domain/outbox"
	usersdomain "coursemarket-app/internal/domain/users"

	"gorm.io/gorm"
)

type FulfillmentRepository struct {
	db *gorm.DB
}

func NewFulfillmentRepository(db *gorm.DB) *FulfillmentRepository {
	return &FulfillmentRepository{db: db}
}

// InTransaction hands fn a repository bound to a transaction; an error from
// fn rolls back every write it made.
func (r *FulfillmentRepository) InTransaction(ctx context.Context, fn func(fulfillmentapi.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FulfillmentRepository{db: tx})
	})
}

func (r *FulfillmentRepository) CheckoutWithCart(ctx context.Context, checkoutID uint) (*checkoutdomain.Checkout, *cartdomain.Cart, error) {
	var ck checkoutdomain.Checkout
	if err := r.db.WithContext(ctx).First(&ck, checkoutID).Error; err != nil {
		if isNotFound(err) {
			return nil, nil, fulfillmentapi.ErrNotFound
		}
		return nil, nil, err
	}

	var crt cartdomain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.ShippingOptions").
		First(&crt, ck.CartID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil, fulfillmentapi.ErrNotFound
		}
		return nil, nil, err
	}
	return &ck, &crt, nil
}

func (r *FulfillmentRepository) SetCheckoutPaid(ctx context.Context, checkoutID uint, paymentID string) error {
	return r.db.WithContext(ctx).Model(&checkoutdomain.Checkout{}).
		Where("id = ?", checkoutID).
		Updates(map[string]interface{}{
			"status":     checkoutdomain.StatusPaid,
			"payment_id": paymentID,
		}).Error
}

func (r *FulfillmentRepository) GetUser(ctx context.Context, id uint) (*usersdomain.User, error) {
	var u usersdomain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fulfillmentapi.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *FulfillmentRepository) EnrollmentExists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&fulfillmentdomain.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *FulfillmentRepository) CreateEnrollment(ctx context.Context, e *fulfillmentdomain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *FulfillmentRepository) CreateCompanyPurchase(ctx context.Context, p *fulfillmentdomain.CompanyPurchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *FulfillmentRepository) CreatePurchaseItem(ctx context.Context, pi *fulfillmentdomain.PurchaseItem) error {
	return r.db.WithContext(ctx).Create(pi).Error
}

func (r *FulfillmentRepository) CreateCredential(ctx context.Context, cr *fulfillmentdomain.EmployeeCredential) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

// LoginEmailTaken probes both real users and previously issued credentials.
func (r *FulfillmentRepository) LoginEmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&usersdomain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&fulfillmentdomain.EmployeeCredential{}).Where("login_email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FulfillmentRepository) ClearCart(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cartdomain.Item{}).Error
}

func (r *FulfillmentRepository) EnqueueEmail(ctx context.Context, m *outboxdomain.EmailMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListCredentialsForCompany serves the company credential listing; the
// password hash never leaves the API layer in responses.
func (r *FulfillmentRepository) ListCredentialsForCompany(ctx context.Context, companyID uint) ([]fulfillmentdomain.EmployeeCredential, error) {
	var creds []fulfillmentdomain.EmployeeCredential
	err := r.db.WithContext(ctx).
		Joins("JOIN purchase_items ON purchase_items.id = employee_credentials.purchase_item_id").
		Joins("JOIN company_purchases ON company_purchases.id = purchase_items.company_purchase_id").
		Where("company_purchases.company_id = ?", companyID).
		Find(&creds).Error
	return creds, err
}

// ListEnrollmentsForUser serves the buyer's enrollment listing.
func (r *FulfillmentRepository) ListEnrollmentsForUser(ctx context.Context, userID uint) ([]fulfillmentdomain.Enrollment, error) {
	var list []fulfillmentdomain.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}
