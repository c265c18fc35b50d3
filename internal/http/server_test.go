package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/catalog"
	"github.com/mrlokans/biblioteca/internal/database/ebooks"
	"github.com/mrlokans/biblioteca/internal/database/favourites"
	"github.com/mrlokans/biblioteca/internal/database/friendships"
	"github.com/mrlokans/biblioteca/internal/database/loans"
	"github.com/mrlokans/biblioteca/internal/database/ratings"
	"github.com/mrlokans/biblioteca/internal/database/reservations"
	"github.com/mrlokans/biblioteca/internal/database/reviews"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/recommend"
	"github.com/mrlokans/biblioteca/internal/services"
)

// testServer is a router wired to real repositories over a temp database.
type testServer struct {
	t      *testing.T
	db     *database.Database
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"),
		database.WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := routerConfigFor(db)
	return &testServer{t: t, db: db, router: NewRouter(cfg)}
}

func routerConfigFor(db *database.Database) RouterConfig {
	userRepo := users.NewRepository(db.DB)
	catalogRepo := catalog.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)
	ratingRepo := ratings.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	favouriteRepo := favourites.NewRepository(db.DB)

	library := services.NewLibraryService(services.LibraryStores{
		Catalog:    catalogRepo,
		Loans:      loanRepo,
		Ratings:    ratingRepo,
		Reviews:    reviewRepo,
		Users:      userRepo,
		Favourites: favouriteRepo,
	}, config.Loans{DefaultDays: 15, AllowedDays: []int{15, 30}})

	return RouterConfig{
		Database:     db,
		Version:      "test",
		Users:        userRepo,
		Auth:         auth.NewService(userRepo, config.Auth{BcryptCost: bcrypt.MinCost, MinPasswordLength: 6}),
		Friends:      friendships.NewRepository(db.DB),
		Catalog:      catalogRepo,
		Loans:        loanRepo,
		Library:      library,
		Reservations: reservations.NewRepository(db.DB),
		Favourites:   favouriteRepo,
		Ratings:      ratingRepo,
		Reviews:      reviewRepo,
		Ebooks:       ebooks.NewRepository(db.DB),
		Recommender:  recommend.NewRecommender(db.DB),
	}
}

// do sends body (JSON-encoded when not nil) and returns the recorder.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorder body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// register creates a member over HTTP and returns its id.
func (s *testServer) register(name, email string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": "segredo123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var user struct {
		ID uint `json:"id"`
	}
	decode(s.t, w, &user)
	return user.ID
}

// addMaterial catalogues a material over HTTP and returns its id.
func (s *testServer) addMaterial(body map[string]any) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/catalog", body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp IDResponse
	decode(s.t, w, &resp)
	return resp.ID
}

func book(title, genre string) map[string]any {
	return map[string]any{"category": "livro", "author": "J.R.R. Tolkien", "title": title, "year": 1937, "genre": genre}
}
