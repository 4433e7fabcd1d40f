package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrolabs/retrogame-api/internal/models"
)

func TestDeveloperRolePolicy(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser("admin@x.com", models.RoleAdmin)
	_, editorToken := env.seedUser("editor@x.com", models.RoleEditor)
	_, userToken := env.seedUser("user@x.com", models.RoleUser)

	// creating requires admin
	rec := env.doJSON(http.MethodPost, "/developer/", map[string]string{"name": "Rare"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/developer/", map[string]string{"name": "Rare"}, userToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/developer/", map[string]string{"name": "Rare"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/developer/", map[string]string{"name": "Rare"}, adminToken)
	require.Equal(t, http.StatusConflict, rec.Code)

	// updating allows editors
	rec = env.doJSON(http.MethodPut, "/developer/1", map[string]string{"name": "Rareware"}, editorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPut, "/developer/1", map[string]string{"name": "Rareware"}, userToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// deleting is admin-only again
	rec = env.doJSON(http.MethodDelete, "/developer/1", nil, editorToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/developer/5", nil, userToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/developer/5", nil, adminToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/developer/1", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPlatformCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser("admin@x.com", models.RoleAdmin)

	rec := env.doJSON(http.MethodPost, "/platform/", map[string]string{
		"name":     "SNES",
		"logo_url": "https://img.example/snes.png",
	}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/platform/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "SNES")

	rec = env.doJSON(http.MethodPut, "/platform/99", map[string]string{"name": "Mega Drive"}, adminToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodPut, "/platform/1", map[string]string{"name": "Super Nintendo"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/platform/", nil, "")
	require.Contains(t, rec.Body.String(), "Super Nintendo")

	rec = env.doJSON(http.MethodPost, "/platform/", map[string]string{"name": ""}, adminToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser("admin@x.com", models.RoleAdmin)
	_, editorToken := env.seedUser("editor@x.com", models.RoleEditor)

	payload := map[string]any{
		"title":        "Chrono Trigger",
		"description":  "Time-travel RPG",
		"release_year": 1995,
		"genre_id":     1,
		"platform_id":  1,
		"publisher_id": 1,
		"developer_id": 1,
	}
	rec := env.doJSON(http.MethodPost, "/game/", payload, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	body := env.decode(rec)
	game, ok := body["game"].(map[string]any)
	require.True(t, ok)
	id := int(game["id"].(float64))
	require.NotZero(t, id)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/game/%d", id), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Chrono Trigger")

	rec = env.doJSON(http.MethodGet, "/games/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := env.decode(rec)
	meta, ok := list["meta"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), meta["total"])

	payload["title"] = "Chrono Trigger (SNES)"
	rec = env.doJSON(http.MethodPut, fmt.Sprintf("/game/%d", id), payload, editorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/game/%d", id), nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/game/%d", id), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGameValidation(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser("admin@x.com", models.RoleAdmin)

	rec := env.doJSON(http.MethodPost, "/game/", map[string]any{
		"title": "No description",
	}, adminToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodGet, "/game/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavourites(t *testing.T) {
	env := newTestEnv(t)
	_, anaToken := env.seedUser("ana@x.com", models.RoleUser)
	_, bobToken := env.seedUser("bob@x.com", models.RoleUser)
	game := env.seedGame("Chrono Trigger")

	rec := env.doJSON(http.MethodPost, "/favourites/", map[string]any{"game_id": game.ID}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/favourites/", map[string]any{"game_id": game.ID}, anaToken)
	require.Equal(t, http.StatusOK, rec.Code)

	// same user, same game: conflict
	rec = env.doJSON(http.MethodPost, "/favourites/", map[string]any{"game_id": game.ID}, anaToken)
	require.Equal(t, http.StatusConflict, rec.Code)

	// a different user can favourite the same game
	rec = env.doJSON(http.MethodPost, "/favourites/", map[string]any{"game_id": game.ID}, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/favourites/", map[string]any{"game_id": 999}, anaToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodGet, "/favourites/", nil, anaToken)
	require.Equal(t, http.StatusOK, rec.Code)
	rows, ok := env.decode(rec)["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)

	favID := int(rows[0].(map[string]any)["id"].(float64))

	// bob cannot delete ana's favourite
	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/favourites/%d", favID), nil, bobToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/favourites/%d", favID), nil, anaToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/favourites/%d", favID), nil, anaToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatings(t *testing.T) {
	env := newTestEnv(t)
	_, anaToken := env.seedUser("ana@x.com", models.RoleUser)
	game := env.seedGame("Chrono Trigger")

	rec := env.doJSON(http.MethodPost, "/ratings/", map[string]any{"game_id": game.ID, "score": 7}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/ratings/", map[string]any{"game_id": game.ID, "score": 11}, anaToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPost, "/ratings/", map[string]any{"game_id": 999, "score": 7}, anaToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodPost, "/ratings/", map[string]any{"game_id": game.ID, "score": 7}, anaToken)
	require.Equal(t, http.StatusOK, rec.Code)

	// re-rating replaces the previous score
	rec = env.doJSON(http.MethodPost, "/ratings/", map[string]any{"game_id": game.ID, "score": 9}, anaToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/ratings/game/%d", game.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows, ok := env.decode(rec)["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	require.Equal(t, float64(9), rows[0].(map[string]any)["score"])
}

func TestSearchUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/games/search?q=chrono", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGamesPaginationClamp(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.seedGame(fmt.Sprintf("Game %02d", i))
	}

	rec := env.doJSON(http.MethodGet, "/games/?page=1&size=1000", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := env.decode(rec)
	rows := body["rows"].([]any)
	require.Len(t, rows, 10)

	meta := body["meta"].(map[string]any)
	require.Equal(t, float64(15), meta["total"])
	require.Equal(t, true, meta["has_next"])

	rec = env.doJSON(http.MethodGet, "/games/?page=2&size=10", nil, "")
	body = env.decode(rec)
	rows = body["rows"].([]any)
	require.Len(t, rows, 5)
	require.Equal(t, true, body["meta"].(map[string]any)["has_prev"])
}
