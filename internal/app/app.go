package app

import (
	"fmt"
	"net/http"

	"news-app/config"
	"news-app/internal/database"
	"news-app/internal/handler"
	"news-app/internal/middleware"
	"news-app/internal/news"
	"news-app/internal/repository"
	"news-app/internal/scraper"
	"news-app/internal/service"
	"news-app/pkg/datetime"
	"news-app/pkg/security"
	"news-app/pkg/token"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Application struct {
	Router         *mux.Router
	Handler        http.Handler
	Config         *config.Config
	DBManager      *database.Manager
	UserHandler    *handler.UserHandler
	ArticleHandler *handler.ArticleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func New(cfg *config.Config) (*Application, error) {
	dbConfig := database.Config{
		ConnectionString: cfg.DatabaseURL,
		Host:             cfg.DBHost,
		Port:             cfg.DBPort,
		User:             cfg.DBUser,
		Password:         cfg.DBPassword,
		DBName:           cfg.DBName,
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to build token codec: %w", err)
	}

	userRepository := repository.NewUserRepository(dbManager.GetDB())
	passwordHasher := security.NewArgon2Hasher()
	authService := service.NewAuthService(userRepository, passwordHasher, codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	dateFormatter := datetime.NewFormatter()
	articleScraper := scraper.NewHTMLScraper(dateFormatter)
	articleCache := service.NewArticleCache(articleScraper)
	newsClient := news.NewClient(cfg.NewsAPIKey)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	userHandler := handler.NewUserHandler(authService)
	articleHandler := handler.NewArticleHandler(newsClient, articleCache)
	router := mux.NewRouter()

	app := &Application{
		Router:         router,
		Config:         cfg,
		DBManager:      dbManager,
		UserHandler:    userHandler,
		ArticleHandler: articleHandler,
		AuthMiddleware: authMiddleware,
	}

	app.setupRoutes()
	app.Handler = app.corsHandler()(router)

	return app, nil
}

func (a *Application) setupRoutes() {
	api := a.Router.PathPrefix(a.Config.APIPrefix).Subrouter()

	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", a.UserHandler.Register).Methods("POST")
	users.HandleFunc("/login", a.UserHandler.Login).Methods("POST")
	users.HandleFunc("/refresh", a.UserHandler.Refresh).Methods("POST")
	users.HandleFunc("/{id}", a.UserHandler.Delete).Methods("DELETE")

	protected := api.PathPrefix("/users").Subrouter()
	protected.Use(a.AuthMiddleware.RequireAuth)
	protected.HandleFunc("/logout", a.UserHandler.Logout).Methods("POST")
	protected.HandleFunc("/me", a.UserHandler.Me).Methods("GET")

	articles := api.PathPrefix("/articles").Subrouter()
	// detail must register before the category wildcard
	articles.HandleFunc("/detail", a.ArticleHandler.Detail).Methods("GET")
	articles.HandleFunc("/{category}", a.ArticleHandler.List).Methods("GET")
}

func (a *Application) corsHandler() func(http.Handler) http.Handler {
	origins := a.Config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
}

func (a *Application) Close() error {
	if a.DBManager != nil {
		return a.DBManager.Close()
	}
	return nil
}
