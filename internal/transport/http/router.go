package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retrolabs/retrogame-api/internal/handlers"
	mwauth "github.com/retrolabs/retrogame-api/internal/middleware/auth"
	"github.com/retrolabs/retrogame-api/internal/models"
)

type Deps struct {
	Gate       *mwauth.Gate
	Auth       *handlers.AuthHandler
	Platform   *handlers.PlatformHandler
	Genre      *handlers.GenreHandler
	Developer  *handlers.DeveloperHandler
	Publisher  *handlers.PublisherHandler
	Game       *handlers.GameHandler
	Favourites *handlers.FavouritesHandler
	Ratings    *handlers.RatingsHandler
	Search     *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the RetroGame API"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/users/register", d.Auth.Register)
	e.POST("/users/login", d.Auth.Login)
	e.POST("/token/refresh", d.Auth.Refresh)
	e.GET("/users/me", d.Auth.Me, d.Gate.RequireUser)

	// Write policy: create and delete need admin, update allows editors too.
	adminOnly := []echo.MiddlewareFunc{d.Gate.RequireUser, mwauth.RequireRole(models.RoleAdmin)}
	editors := []echo.MiddlewareFunc{d.Gate.RequireUser, mwauth.RequireRole(models.RoleAdmin, models.RoleEditor)}

	e.GET("/platform", d.Platform.List)
	e.POST("/platform", d.Platform.Create, adminOnly...)
	e.PUT("/platform/:id", d.Platform.Update, editors...)
	e.DELETE("/platform/:id", d.Platform.Delete, adminOnly...)

	e.GET("/genre", d.Genre.List)
	e.POST("/genre", d.Genre.Create, adminOnly...)
	e.PUT("/genre/:id", d.Genre.Update, editors...)
	e.DELETE("/genre/:id", d.Genre.Delete, adminOnly...)

	e.GET("/developer", d.Developer.List)
	e.POST("/developer", d.Developer.Create, adminOnly...)
	e.PUT("/developer/:id", d.Developer.Update, editors...)
	e.DELETE("/developer/:id", d.Developer.Delete, adminOnly...)

	e.GET("/publisher", d.Publisher.List)
	e.POST("/publisher", d.Publisher.Create, adminOnly...)
	e.PUT("/publisher/:id", d.Publisher.Update, editors...)
	e.DELETE("/publisher/:id", d.Publisher.Delete, adminOnly...)

	e.GET("/games", d.Game.List)
	e.GET("/games/search", d.Search.Search)
	e.GET("/game/:id", d.Game.Get)
	e.POST("/game", d.Game.Create, adminOnly...)
	e.PUT("/game/:id", d.Game.Update, editors...)
	e.DELETE("/game/:id", d.Game.Delete, adminOnly...)

	fav := e.Group("/favourites", d.Gate.RequireUser)
	fav.GET("", d.Favourites.List)
	fav.POST("", d.Favourites.Create)
	fav.DELETE("/:id", d.Favourites.Delete)

	e.GET("/ratings/game/:id", d.Ratings.ListForGame)
	e.POST("/ratings", d.Ratings.Upsert, d.Gate.RequireUser)
}
