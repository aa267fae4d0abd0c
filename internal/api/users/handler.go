package users

import (
	"net/http"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	User  UserDTO  `json:"user"`
	Plan  PlanDTO  `json:"plan"`
	Usage UsageDTO `json:"usage"`
}

type UserDTO struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type PlanDTO struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

type UsageDTO struct {
	ItemsToday int64  `json:"items_today"`
	DailyLimit *int64 `json:"daily_limit,omitempty"`
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Preload("Plan").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	itemsToday, err := usage.ItemsToday(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage"})
		return
	}

	tier := user.Tier()
	planName := "Free"
	if user.Plan != nil {
		planName = user.Plan.Name
	}

	usageDTO := UsageDTO{ItemsToday: itemsToday}
	if tier == plans.TierFree {
		limit := int64(plans.FreeDailyItemLimit)
		usageDTO.DailyLimit = &limit
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Role:       user.Role,
			Status:     user.Status,
			IsVerified: user.IsVerified,
			CreatedAt:  user.CreatedAt,
		},
		Plan:  PlanDTO{Name: planName, Tier: tier},
		Usage: usageDTO,
	})
}
