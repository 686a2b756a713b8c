package main

import (
	"context"
	"log"
	"os"
	"time"

	"coursemarket-app/config"
	"coursemarket-app/database"
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
	routes "coursemarket-app/internal/app/http"
	"coursemarket-app/internal/email"
	"coursemarket-app/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer database.Close(db)

	// repositories
	cartRepo := repository.NewCartRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	fulfillmentRepo := repository.NewFulfillmentRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// email outbox dispatcher
	dispatcher := email.NewDispatcher(outboxRepo, email.NewSMTPSender(), 30*time.Second)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Run(dispatcherCtx)

	// services
	cartSvc := cartapi.NewService(cartRepo)
	checkoutSvc := checkoutapi.NewService(checkoutRepo)
	fulfillmentSvc := fulfillmentapi.NewService(fulfillmentRepo, dispatcher.Notify)

	deps := &routes.Deps{
		DB: db,

		Auth:        authapi.NewHandler(db, fulfillmentRepo, dispatcher.Notify),
		Users:       usersapi.NewHandler(db),
		Products:    productsapi.NewHandler(db),
		Courses:     coursesapi.NewHandler(db),
		Reviews:     reviewsapi.NewHandler(db),
		Cart:        cartapi.NewHandler(cartSvc),
		Checkout:    checkoutapi.NewHandler(checkoutSvc),
		Billing:     billingapi.NewHandler(billingRepo, paymentRepo),
		Fulfillment: fulfillmentapi.NewHandler(fulfillmentRepo),
		Webhook: stripewebhooks.NewHandler(
			config.STRIPE_WEBHOOK_SECRET,
			paymentRepo,
			billingRepo,
			fulfillmentRepo,
			fulfillmentSvc,
			dispatcher.Notify,
		),
		Admin:    adminapi.NewHandler(db),
		MarkPaid: adminapi.NewMarkPaidHandler(paymentRepo, fulfillmentSvc),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	r.Run(":" + config.PORT)
}
