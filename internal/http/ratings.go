package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RatingsController handles ratings, reviews and the combined feedback form.
type RatingsController struct {
	ratings RatingStore
	reviews ReviewStore
	library LibraryService
}

func NewRatingsController(ratings RatingStore, reviews ReviewStore, library LibraryService) *RatingsController {
	return &RatingsController{ratings: ratings, reviews: reviews, library: library}
}

type ratingRequest struct {
	UserID uint    `json:"user_id" validate:"required"`
	Value  float64 `json:"value" validate:"gte=0,lte=5"`
}

type reviewRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type feedbackRequest struct {
	UserID uint    `json:"user_id" validate:"required"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
	Text   string  `json:"text"`
}

// Rate stores a first rating.
// POST /api/catalog/:id/ratings
func (rc *RatingsController) Rate(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := rc.ratings.RateMaterial(req.UserID, materialID, req.Value); err != nil {
		respondStoreError(c, err, "rate material")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "rating saved"})
}

// UpdateRating changes an existing rating.
// PUT /api/catalog/:id/ratings
func (rc *RatingsController) UpdateRating(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := rc.ratings.UpdateRating(req.UserID, materialID, req.Value); err != nil {
		respondStoreError(c, err, "update rating")
		return
	}
	respondSuccess(c, "rating updated")
}

// RemoveRating deletes a member's rating.
// DELETE /api/catalog/:id/ratings?user_id=1
func (rc *RatingsController) RemoveRating(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	if err := rc.ratings.RemoveRating(userID, materialID); err != nil {
		respondStoreError(c, err, "remove rating")
		return
	}
	respondSuccess(c, "rating removed")
}

// GetRating returns a member's rating.
// GET /api/catalog/:id/ratings?user_id=1
func (rc *RatingsController) GetRating(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	rating, err := rc.ratings.GetRating(userID, materialID)
	if err != nil {
		respondStoreError(c, err, "get rating")
		return
	}
	c.JSON(http.StatusOK, rating)
}

// AverageRating returns the mean rating, null when unrated.
// GET /api/catalog/:id/rating
func (rc *RatingsController) AverageRating(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	avg, err := rc.ratings.AverageRating(materialID)
	if err != nil {
		respondInternalError(c, err, "average rating")
		return
	}
	c.JSON(http.StatusOK, gin.H{"material_id": materialID, "average": avg})
}

// Feedback rates and optionally reviews in one request, replacing earlier
// entries.
// POST /api/catalog/:id/feedback
func (rc *RatingsController) Feedback(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req feedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := rc.library.RateAndReview(req.UserID, materialID, req.Rating, req.Text); err != nil {
		respondStoreError(c, err, "rate and review")
		return
	}
	respondSuccess(c, "feedback saved")
}

// WriteReview stores a first review.
// POST /api/catalog/:id/reviews
func (rc *RatingsController) WriteReview(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := rc.reviews.WriteReview(req.UserID, materialID, req.Text); err != nil {
		respondStoreError(c, err, "write review")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "review saved"})
}

// EditReview replaces the text of an existing review.
// PUT /api/catalog/:id/reviews
func (rc *RatingsController) EditReview(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := rc.reviews.EditReview(req.UserID, materialID, req.Text); err != nil {
		respondStoreError(c, err, "edit review")
		return
	}
	respondSuccess(c, "review updated")
}

// DELETE /api/catalog/:id/reviews?user_id=1
func (rc *RatingsController) RemoveReview(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	if err := rc.reviews.RemoveReview(userID, materialID); err != nil {
		respondStoreError(c, err, "remove review")
		return
	}
	respondSuccess(c, "review removed")
}

// GET /api/catalog/:id/reviews
func (rc *RatingsController) ListMaterialReviews(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := rc.reviews.ListMaterialReviews(materialID)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

// GET /api/users/:id/reviews
func (rc *RatingsController) ListUserReviews(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := rc.reviews.ListUserReviews(userID)
	if err != nil {
		respondInternalError(c, err, "list user reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}
