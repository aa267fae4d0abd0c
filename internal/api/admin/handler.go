package admin

import (
	"net/http"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/contact"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	PlanName   *string   `json:"plan_name,omitempty"`
	Tier       string    `json:"tier"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers       int            `json:"total_users"`
	TasksToday       int            `json:"tasks_today"`
	ItemsToday       int            `json:"items_today"`
	UsagePerPlatform map[string]int `json:"usage_per_platform"`
	UsersPerPlan     map[string]int `json:"users_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	stats.TotalUsers = int(totalUsers)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var tasksToday int64
	database.DB.Model(&conversion.Task{}).Where("created_at >= ?", midnight).Count(&tasksToday)
	stats.TasksToday = int(tasksToday)

	var itemsToday int64
	database.DB.Model(&usage.Log{}).
		Where("created_at >= ?", midnight).
		Select("COALESCE(SUM(item_count), 0)").
		Scan(&itemsToday)
	stats.ItemsToday = int(itemsToday)

	type platformCount struct {
		Platform string
		Count    int
	}
	var perPlatform []platformCount
	database.DB.Model(&usage.Log{}).
		Select("platform, COUNT(id) as count").
		Group("platform").
		Scan(&perPlatform)

	stats.UsagePerPlatform = map[string]int{}
	for _, pc := range perPlatform {
		stats.UsagePerPlatform[pc.Platform] = pc.Count
	}

	type planCount struct {
		Name  *string
		Count int
	}
	var perPlan []planCount
	database.DB.
		Table("users").
		Select("plans.name, COUNT(users.id) as count").
		Joins("LEFT JOIN plans ON users.plan_id = plans.id").
		Group("plans.name").
		Scan(&perPlan)

	stats.UsersPerPlan = map[string]int{}
	for _, pc := range perPlan {
		name := "Free"
		if pc.Name != nil {
			name = *pc.Name
		}
		stats.UsersPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Preload("Plan").Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		var planName *string
		if u.Plan != nil {
			planName = &u.Plan.Name
		}
		out = append(out, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       u.Role,
			Status:     u.Status,
			IsVerified: u.IsVerified,
			PlanName:   planName,
			Tier:       u.Tier(),
			CreatedAt:  u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Plan").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var tasks []conversion.Task
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	var logs []usage.Log
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"tasks": tasks,
		"usage": logs,
	})
}

// UpdateUser lets an admin change a user's plan tier, status or role. Users
// are never hard-deleted; status=deleted is the terminal flag.
func UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		Tier   *string `json:"tier"`
		Status *string `json:"status"`
		Role   *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}

	if body.Tier != nil {
		switch *body.Tier {
		case plans.TierFree:
			updates["plan_id"] = nil
		case plans.TierPro, plans.TierBiz:
			var plan plans.Plan
			if err := database.DB.Where("tier = ?", *body.Tier).First(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan not found"})
				return
			}
			updates["plan_id"] = plan.ID
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tier"})
			return
		}
	}

	if body.Status != nil {
		switch *body.Status {
		case users.StatusActive, users.StatusSuspended, users.StatusDeleted:
			updates["status"] = *body.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
	}

	if body.Role != nil {
		switch *body.Role {
		case "user", "admin":
			updates["role"] = *body.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func ListAllTasks(c *gin.Context) {
	var tasks []conversion.Task
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListAllUsage(c *gin.Context) {
	var logs []usage.Log
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func ListContactSubmissions(c *gin.Context) {
	var subs []contact.Submission
	if err := database.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}
