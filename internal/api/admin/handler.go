package admin

import (
	"net/http"
	"time"

	billingdomain "coursemarket-app/internal/domain/billing"
	usersdomain "coursemarket-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type AdminUser struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	IsVerified  bool    `json:"is_verified"`
	CompanyName *string `json:"company_name,omitempty"`
}

type AdminPayment struct {
	ID         uint    `json:"id"`
	CheckoutID uint    `json:"checkout_id"`
	UserID     uint    `json:"user_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalRevenue  float64 `json:"total_revenue"`
	RecentRevenue float64 `json:"recent_revenue"`
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue float64
	var recentRevenue float64

	ctx := c.Request.Context()
	h.db.WithContext(ctx).Model(&usersdomain.User{}).Count(&totalUsers)
	h.db.WithContext(ctx).Model(&billingdomain.Payment{}).
		Where("status = ?", billingdomain.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	h.db.WithContext(ctx).Model(&billingdomain.Payment{}).
		Where("status = ? AND created_at >= ?", billingdomain.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var list []usersdomain.User
	if err := h.db.WithContext(c.Request.Context()).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var out []AdminUser
	for _, u := range list {
		out = append(out, AdminUser{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Role:        u.Role,
			Status:      u.Status,
			IsVerified:  u.IsVerified,
			CompanyName: u.CompanyName,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	var payments []billingdomain.Payment
	if err := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var out []AdminPayment
	for _, p := range payments {
		out = append(out, AdminPayment{
			ID:         p.ID,
			CheckoutID: p.CheckoutID,
			UserID:     p.UserID,
			Amount:     p.Amount,
			Status:     p.Status,
			ReceiptURL: p.ReceiptURL,
			CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user usersdomain.User
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var payments []billingdomain.Payment
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"payments": payments,
	})
}

// UpdateUserStatus toggles ACTIVE/BLOCKED. No history is kept.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}
	if input.Status != usersdomain.StatusActive && input.Status != usersdomain.StatusBlocked {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be ACTIVE or BLOCKED"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&usersdomain.User{}).
		Where("id = ?", c.Param("id")).
		Update("status", input.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}
