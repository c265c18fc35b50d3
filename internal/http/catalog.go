package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/entities"
)

type CatalogController struct {
	store CatalogStore
}

func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{store: store}
}

// addMaterialRequest flattens every specialization column. Only the fields
// of the chosen category are kept.
type addMaterialRequest struct {
	Category  entities.MaterialKind `json:"category" validate:"required,material_kind"`
	OwnerID   *uint                 `json:"owner_id"`
	Author    string                `json:"author" validate:"required"`
	Title     string                `json:"title" validate:"required"`
	Year      *int                  `json:"year"`
	Genre     string                `json:"genre"`
	Movement  string                `json:"movement"`
	Publisher string                `json:"publisher"`
	Class     string                `json:"class"`
	Subject   string                `json:"subject"`
	URL       string                `json:"url" validate:"omitempty,url"`
}

func (r addMaterialRequest) material() entities.Material {
	m := entities.Material{
		OwnerID: r.OwnerID,
		Author:  r.Author,
		Title:   r.Title,
		Year:    r.Year,
	}
	switch r.Category {
	case entities.KindBook:
		m.Details = entities.BookDetails{Genre: r.Genre, Movement: r.Movement, Publisher: r.Publisher}
	case entities.KindHandout:
		m.Details = entities.HandoutDetails{Class: r.Class, Subject: r.Subject}
	case entities.KindEbook:
		m.Details = entities.EbookDetails{Genre: r.Genre, Movement: r.Movement, URL: r.URL}
	case entities.KindMagazine:
		m.Details = entities.MagazineDetails{Publisher: r.Publisher}
	case entities.KindThesis:
		m.Details = entities.ThesisDetails{}
	case entities.KindReviewArtifact:
		m.Details = entities.ReviewArtifactDetails{}
	}
	return m
}

// AddMaterial catalogues a material of any category.
// POST /api/catalog
func (cc *CatalogController) AddMaterial(c *gin.Context) {
	var req addMaterialRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := cc.store.AddMaterial(req.material())
	if err != nil {
		respondStoreError(c, err, "add material")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// ListCatalog returns the catalog, optionally one category, optionally with
// each material's status.
// GET /api/catalog?category=livro
// GET /api/catalog?with_status=true
func (cc *CatalogController) ListCatalog(c *gin.Context) {
	var (
		entries []entities.CatalogEntry
		err     error
	)

	category := entities.MaterialKind(c.Query("category"))
	switch {
	case category != "" && !category.Valid():
		respondBadRequest(c, "unknown category")
		return
	case c.Query("with_status") == "true" && category == "":
		entries, err = cc.store.ListCatalogWithStatus()
	default:
		entries, err = cc.store.ListCatalog(category)
	}
	if err != nil {
		respondInternalError(c, err, "list catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": entries, "total": len(entries)})
}

// GetMaterial returns one material with details, average rating and status.
// GET /api/catalog/:id
func (cc *CatalogController) GetMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := cc.store.GetMaterialByID(id)
	if err != nil {
		respondStoreError(c, err, "get material")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetStatus returns only the derived status.
// GET /api/catalog/:id/status
func (cc *CatalogController) GetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := cc.store.GetMaterialStatus(id)
	if err != nil {
		respondStoreError(c, err, "get material status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// Search matches a substring of the title.
// GET /api/catalog/search?q=hobbit&with_status=true
func (cc *CatalogController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	var (
		results []entities.MaterialSummary
		err     error
	)
	if c.Query("with_status") == "true" {
		results, err = cc.store.SearchByTitleWithStatus(query)
	} else {
		results, err = cc.store.SearchByTitle(query)
	}
	if err != nil {
		respondInternalError(c, err, "search catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": results, "total": len(results)})
}

// RemoveMaterial deletes a material and everything that references it.
// DELETE /api/catalog/:id
func (cc *CatalogController) RemoveMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.store.RemoveMaterial(id); err != nil {
		respondStoreError(c, err, "remove material")
		return
	}
	respondSuccess(c, "material removed")
}
