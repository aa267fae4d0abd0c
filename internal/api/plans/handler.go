package plans

import (
	"net/http"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/converter"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type PlanDTO struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Tier      string   `json:"tier"`
	PriceTWD  float64  `json:"price_twd"`
	Interval  string   `json:"interval"`
	Platforms []string `json:"platforms"`
}

// ListPlans is public: the pricing page renders from it.
func ListPlans(c *gin.Context) {
	var all []plans.Plan
	if err := database.DB.Order("price_twd ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]PlanDTO, 0, len(all))
	for _, p := range all {
		tier := plans.PlanTier(&p)
		var allowed []string
		for _, platform := range converter.Platforms() {
			if plans.TierAllows(tier, string(platform)) {
				allowed = append(allowed, string(platform))
			}
		}
		out = append(out, PlanDTO{
			ID:        p.ID,
			Name:      p.Name,
			Tier:      tier,
			PriceTWD:  p.PriceTWD,
			Interval:  p.Interval,
			Platforms: allowed,
		})
	}

	c.JSON(http.StatusOK, out)
}
