package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// favouriteIDs reads the member and material from the path.
func favouriteIDs(c *gin.Context) (userID, materialID uint, ok bool) {
	if userID, ok = parseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	if materialID, ok = parseIDParam(c, "materialId"); !ok {
		return 0, 0, false
	}
	return userID, materialID, true
}

// AddFavourite adds a material to a member's favourites.
// POST /api/users/:id/favourites/:materialId
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	userID, materialID, ok := favouriteIDs(c)
	if !ok {
		return
	}

	if err := fc.store.AddFavourite(userID, materialID); err != nil {
		respondStoreError(c, err, "add favourite")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "favourite added", "favourite": true})
}

// RemoveFavourite removes a material from a member's favourites.
// DELETE /api/users/:id/favourites/:materialId
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	userID, materialID, ok := favouriteIDs(c)
	if !ok {
		return
	}

	if err := fc.store.RemoveFavourite(userID, materialID); err != nil {
		respondStoreError(c, err, "remove favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favourite removed", "favourite": false})
}

// CheckFavourite reports whether the material is a favourite.
// GET /api/users/:id/favourites/:materialId
func (fc *FavouritesController) CheckFavourite(c *gin.Context) {
	userID, materialID, ok := favouriteIDs(c)
	if !ok {
		return
	}

	favourite, err := fc.store.IsFavourite(userID, materialID)
	if err != nil {
		respondInternalError(c, err, "check favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favourite": favourite})
}

// ListFavourites returns a member's favourites, most recent first.
// GET /api/users/:id/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favourites, err := fc.store.ListUserFavourites(userID)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favourites": favourites, "total": len(favourites)})
}
