package routes

import (
	adminapi "coursemarket-app/internal/api/admin"
	authapi "coursemarket-app/internal/api/auth"
	billingapi "coursemarket-app/internal/api/billing"
	cartapi "coursemarket-app/internal/api/cart"
	checkoutapi "coursemarket-app/internal/api/checkout"
	coursesapi "coursemarket-app/internal/api/courses"
	fulfillmentapi "coursemarket-app/internal/api/fulfillment"
	productsapi "coursemarket-app/internal/api/products"
	reviewsapi "coursemarket-app/internal/api/reviews"
	stripewebhooks "coursemarket-app/internal/api/stripewebhook"
	usersapi "coursemarket-app/internal/api/users"
	"coursemarket-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps collects the constructed handlers; main wires them once at startup.
type Deps struct {
	DB *gorm.DB

	Auth        *authapi.Handler
	Users       *usersapi.Handler
	Products    *productsapi.Handler
	Courses     *coursesapi.Handler
	Reviews     *reviewsapi.Handler
	Cart        *cartapi.Handler
	Checkout    *checkoutapi.Handler
	Billing     *billingapi.Handler
	Fulfillment *fulfillmentapi.Handler
	Webhook     *stripewebhooks.Handler
	Admin       *adminapi.Handler
	MarkPaid    *adminapi.MarkPaidHandler
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.POST("/payment-webhook", d.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/products", d.Products.ListProducts)
	r.GET("/products/:id", d.Products.GetProduct)
	r.GET("/products/:id/reviews", d.Reviews.ListProductReviews)
	r.GET("/courses", d.Courses.ListCourses)
	r.GET("/courses/:id", d.Courses.GetCourse)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", d.Auth.Register)
	public.POST("/login", d.Auth.Login)
	public.GET("/verify", d.Users.VerifyEmail)

	public.GET("/auth/google", d.Auth.GoogleStart)
	public.GET("/auth/google/callback", d.Auth.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.RequireActiveUser(d.DB))
	auth.GET("/me", d.Users.GetCurrentUser)
	auth.POST("/change-password", d.Auth.ChangePassword)

	auth.GET("/cart", d.Cart.GetCart)
	auth.POST("/cart/items", d.Cart.AddItem)
	auth.DELETE("/cart/items/:productId", d.Cart.RemoveItem)

	auth.POST("/checkouts", d.Checkout.CreateCheckout)
	auth.GET("/checkouts", d.Checkout.ListCheckouts)
	auth.GET("/checkouts/:id", d.Checkout.GetCheckout)
	auth.POST("/checkouts/:id/pay", d.Billing.BeginPayment)

	auth.GET("/payments", d.Billing.GetPaymentHistory)
	auth.GET("/enrollments", d.Fulfillment.ListEnrollments)
	auth.POST("/products/:id/reviews", d.Reviews.CreateReview)
	auth.DELETE("/reviews/:reviewId", d.Reviews.DeleteReview)

	// Companies
	company := auth.Group("/")
	company.Use(middleware.RequireRole("company"))
	company.GET("/credentials", d.Fulfillment.ListCredentials)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", d.Admin.AdminDashboard)
	admin.GET("/users", d.Admin.ListAllUsers)
	admin.GET("/payments", d.Admin.ListAllPayments)
	admin.GET("/user/:id", d.Admin.GetUserDetails)
	admin.POST("/users/:id/status", d.Admin.UpdateUserStatus)

	admin.POST("/checkouts/:id/mark-paid", d.MarkPaid.MarkPaid)

	admin.POST("/products", d.Products.CreateProduct)
	admin.PUT("/products/:id", d.Products.UpdateProduct)
	admin.DELETE("/products/:id", d.Products.DeleteProduct)

	admin.POST("/courses", d.Courses.CreateCourse)
	admin.PUT("/courses/:id", d.Courses.UpdateCourse)
	admin.POST("/courses/:id/publish", d.Courses.PublishCourse)
	admin.POST("/courses/:id/unpublish", d.Courses.UnpublishCourse)
	admin.DELETE("/courses/:id", d.Courses.DeleteCourse)
}
