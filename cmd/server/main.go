package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/retrolabs/retrogame-api/internal/config"
	"github.com/retrolabs/retrogame-api/internal/es"
	"github.com/retrolabs/retrogame-api/internal/events"
	"github.com/retrolabs/retrogame-api/internal/handlers"
	"github.com/retrolabs/retrogame-api/internal/logging"
	mwauth "github.com/retrolabs/retrogame-api/internal/middleware/auth"
	"github.com/retrolabs/retrogame-api/internal/repo"
	"github.com/retrolabs/retrogame-api/internal/tokens"
	httpserver "github.com/retrolabs/retrogame-api/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	codec := &tokens.Codec{
		AccessSecret:  []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}
	users := &repo.Users{DB: db}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	searchHandler := &handlers.SearchHandler{Index: es.GameIndex}
	gameHandler := &handlers.GameHandler{DB: db, Producer: producer}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		searchHandler.ES = esClient
		gameHandler.ES = esClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Gate:       &mwauth.Gate{Users: users, Codec: codec},
		Auth:       &handlers.AuthHandler{Users: users, Codec: codec, Producer: producer},
		Platform:   &handlers.PlatformHandler{DB: db, Producer: producer},
		Genre:      &handlers.GenreHandler{DB: db, Producer: producer},
		Developer:  &handlers.DeveloperHandler{DB: db, Producer: producer},
		Publisher:  &handlers.PublisherHandler{DB: db, Producer: producer},
		Game:       gameHandler,
		Favourites: &handlers.FavouritesHandler{DB: db, Producer: producer},
		Ratings:    &handlers.RatingsHandler{DB: db, Producer: producer},
		Search:     searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
