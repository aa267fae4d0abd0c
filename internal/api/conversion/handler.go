package conversion

import (
	"net/http"
	"net/url"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/converter"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	fetcher scraper.ProductFetcher
	log     = zerolog.Nop()
)

// Init wires the fetcher and logger. Called once from main; tests swap in a
// stub fetcher.
func Init(f scraper.ProductFetcher, l zerolog.Logger) {
	fetcher = f
	log = l.With().Str("component", "conversion").Logger()
}

type convertRequest struct {
	URL      string `json:"url" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

type taskDTO struct {
	ID          string     `json:"id"`
	SourceURL   string     `json:"source_url"`
	Platform    string     `json:"platform"`
	Status      string     `json:"status"`
	DownloadURL *string    `json:"download_url,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Convert is POST /conversion/convert. Entitlement checks run in order; the
// first failing check wins and nothing is persisted on rejection.
func Convert(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input convertRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := url.ParseRequestURI(input.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product URL"})
		return
	}

	platform, err := converter.ParsePlatform(input.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported platform: " + input.Platform})
		return
	}

	var user users.User
	if err := database.DB.Preload("Plan").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.Status != users.StatusActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is " + user.Status})
		return
	}

	tier := user.Tier()

	if tier == plans.TierFree {
		items, err := usage.ItemsToday(database.DB, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check quota"})
			return
		}
		if items >= plans.FreeDailyItemLimit {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Daily free quota reached. Upgrade to Pro for unlimited conversions.",
				"upgrade": true,
			})
			return
		}
	}

	if !plans.TierAllows(tier, string(platform)) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "The " + string(platform) + " marketplace requires the " + plans.RequiredTier(string(platform)) + " plan. Upgrade to unlock it.",
			"upgrade": true,
		})
		return
	}

	// Request accepted: from here on exactly one usage row gets written.
	started := time.Now()

	task := conversion.Task{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		SourceURL: input.URL,
		Platform:  string(platform),
		Status:    conversion.StatusPending,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	database.DB.Model(&task).Update("status", conversion.StatusProcessing)

	product, resultPath, err := runPipeline(c.Request.Context(), &task, platform)
	latency := time.Since(started).Milliseconds()

	if err != nil {
		markFailed(&task, err)
		writeUsage(user.ID, 1, usagePlatform(input.Platform), usage.StatusFailed, latency, errorCode(err))
		log.Error().Err(err).Str("task_id", task.ID).Str("platform", string(platform)).Msg("conversion failed")
		c.JSON(statusForPipelineError(err), gin.H{"error": err.Error(), "task_id": task.ID})
		return
	}

	markCompleted(&task, resultPath)
	writeUsage(user.ID, 1, string(platform), usage.StatusSuccess, latency, nil)
	log.Info().Str("task_id", task.ID).Str("platform", string(platform)).Int64("latency_ms", latency).Msg("conversion completed")

	c.JSON(http.StatusOK, gin.H{
		"task_id":      task.ID,
		"download_url": downloadURL(task.ID),
		"product": gin.H{
			"title": product.Title,
			"price": product.Price,
		},
	})
}

// Download is GET /conversion/download/:taskId. Non-owners get the same
// generic 404 as a missing task.
func Download(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID := c.Param("taskId")

	var task conversion.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil || task.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if task.Status != conversion.StatusCompleted || task.ResultPath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No result available for this task"})
		return
	}

	c.FileAttachment(*task.ResultPath, task.ID+".xlsx")
}

// History is GET /conversion/history.
func History(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var tasks []conversion.Task
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		dto := taskDTO{
			ID:          t.ID,
			SourceURL:   t.SourceURL,
			Platform:    t.Platform,
			Status:      t.Status,
			Error:       t.ErrorMessage,
			CreatedAt:   t.CreatedAt,
			CompletedAt: t.CompletedAt,
		}
		if t.Status == conversion.StatusCompleted {
			u := downloadURL(t.ID)
			dto.DownloadURL = &u
		}
		out = append(out, dto)
	}

	c.JSON(http.StatusOK, out)
}

func downloadURL(taskID string) string {
	return "/conversion/download/" + taskID
}

// usagePlatform keeps metering rows meaningful even when the request carried
// an unparseable platform value.
func usagePlatform(raw string) string {
	if raw == "" {
		return "unknown"
	}
	return raw
}
