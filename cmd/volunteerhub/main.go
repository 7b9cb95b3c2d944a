package main

import (
	"fmt"
	"log/slog"
	"os"

	"volunteerhub-backend/cmd/volunteerhub/apis"
	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	Listen     string `envconfig:"LISTEN" default:":8080"`
}

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	// optional .env for local runs
	_ = godotenv.Load()

	var cfg EnvCfg
	err = envconfig.Process("VOLUNTEERHUB", &cfg)
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := gorm.Open(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBName,
			),
		),
		&gorm.Config{
			TranslateError: true,
		},
	)

	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.NKO{},
		&model.NKOMembership{},
		&model.Event{},
		&model.Participation{},
		&model.News{},
		&model.KnowledgeBase{},
		&model.Comment{},
		&model.ContentLike{},
		&model.ContentView{},
	)
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	auth := apis.NewAuthMiddleware(cfg.JWTSecret)

	counter := repository.NewCapacityCounter(db, logger)
	userRepo := repository.NewUserRepo(db)
	eventRepo := repository.NewEventRepo(db)
	participationRepo := repository.NewParticipationRepo(db, counter)
	nkoRepo := repository.NewNKORepo(db)
	contentRepo := repository.NewContentRepo(db)
	engagementRepo := repository.NewEngagementRepo(db)

	apis.
		NewAuthAPI(userRepo, cfg.JWTSecret).
		Setup(v1g, auth)

	apis.
		NewEventAPI(eventRepo, engagementRepo).
		Setup(v1g, auth)

	apis.
		NewParticipationAPI(participationRepo, counter).
		Setup(v1g, auth)

	apis.
		NewNKOAPI(nkoRepo).
		Setup(v1g, auth)

	apis.
		NewContentAPI(contentRepo, engagementRepo).
		Setup(v1g, auth)

	apis.
		NewEngagementAPI(engagementRepo).
		Setup(v1g, auth)

	err = e.Start(cfg.Listen)
	if err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
