package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retrolabs/retrogame-api/internal/config"
	"github.com/retrolabs/retrogame-api/internal/es"
	"github.com/retrolabs/retrogame-api/internal/handlers"
	"github.com/retrolabs/retrogame-api/internal/hash"
	mwauth "github.com/retrolabs/retrogame-api/internal/middleware/auth"
	"github.com/retrolabs/retrogame-api/internal/models"
	"github.com/retrolabs/retrogame-api/internal/repo"
	"github.com/retrolabs/retrogame-api/internal/tokens"
	httpserver "github.com/retrolabs/retrogame-api/internal/transport/http"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	codec := &tokens.Codec{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
	users := &repo.Users{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())

	deps := httpserver.Deps{
		Gate:       &mwauth.Gate{Users: users, Codec: codec},
		Auth:       &handlers.AuthHandler{Users: users, Codec: codec},
		Platform:   &handlers.PlatformHandler{DB: db},
		Genre:      &handlers.GenreHandler{DB: db},
		Developer:  &handlers.DeveloperHandler{DB: db},
		Publisher:  &handlers.PublisherHandler{DB: db},
		Game:       &handlers.GameHandler{DB: db},
		Favourites: &handlers.FavouritesHandler{DB: db},
		Ratings:    &handlers.RatingsHandler{DB: db},
		Search:     &handlers.SearchHandler{Index: es.GameIndex},
	}
	httpserver.Register(e, &deps)

	env := &testEnv{T: t, E: e, DB: db, Codec: codec}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return env
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doForm(path string, form url.Values) *httptest.ResponseRecorder {
	env.T.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	env.T.Helper()

	var body map[string]any
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// seedUser inserts a user directly and returns a valid access token for it.
func (env *testEnv) seedUser(email, role string) (models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		JoinDate:     time.Now().UTC(),
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, err := env.Codec.IssueAccess(user.Email)
	require.NoError(env.T, err)
	return user, token
}

func (env *testEnv) seedGame(title string) models.Game {
	env.T.Helper()

	game := models.Game{
		Title:       title,
		Description: "a game",
		ReleaseYear: 1995,
		GenreID:     1,
		PlatformID:  1,
		PublisherID: 1,
		DeveloperID: 1,
	}
	require.NoError(env.T, env.DB.Create(&game).Error)
	return game
}
