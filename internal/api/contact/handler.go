package contact

import (
	"net/http"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/api/auth"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/contact"

	"github.com/gin-gonic/gin"
)

// Submit is the public contact form endpoint.
func Submit(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := contact.Submission{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  contact.StatusNew,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thanks! We'll get back to you soon."})
}

// UpdateStatus moves a submission along new → read → replied → archived.
// Admin only.
func UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	switch body.Status {
	case contact.StatusNew, contact.StatusRead, contact.StatusReplied, contact.StatusArchived:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	var sub contact.Submission
	if err := database.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if err := database.DB.Model(&sub).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission updated"})
}

// Reply mails an answer to the submitter and marks the submission replied.
// Admin only. The mail goes through the retrying emailer and never fails the
// request.
func Reply(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var sub contact.Submission
	if err := database.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	subject := sub.Subject
	if subject == "" {
		subject = "Your message to Shopee2Multi"
	}
	auth.SendContactReply(sub.Email, subject, body.Message)

	if err := database.DB.Model(&sub).Update("status", contact.StatusReplied).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply sent"})
}
