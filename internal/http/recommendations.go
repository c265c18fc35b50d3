package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RecommendationsController struct {
	recommender Recommender
}

func NewRecommendationsController(recommender Recommender) *RecommendationsController {
	return &RecommendationsController{recommender: recommender}
}

// Recommend suggests untouched materials from the member's preferred
// categories. A missing limit uses the recommender default.
// GET /api/users/:id/recommendations?limit=5
func (rc *RecommendationsController) Recommend(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	materials, err := rc.recommender.Recommend(userID, limit)
	if err != nil {
		respondInternalError(c, err, "recommend")
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials, "total": len(materials)})
}
