package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/chouchef/chouchef-api/docs"
	"github.com/chouchef/chouchef-api/internal/api/handler"
	"github.com/chouchef/chouchef-api/internal/api/middleware"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// Deps holds everything the router needs. Detector may be nil, in which case
// /detectText answers with a generic error.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Foods    ports.FoodService
	Shops    ports.ShopService
	Contact  ports.ContactService
	Detector ports.TextDetector
	Images   ports.ImageStore

	Verifier    middleware.TokenVerifier
	Revocations ports.TokenRevoker
	Checks      map[string]handler.Check

	MaxUploadBytes int64
	Log            zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			"X-Requested-With",
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	if d.MaxUploadBytes > 0 {
		// Multipart framing adds a little on top of the file itself.
		e.Use(echomiddleware.BodyLimit(bodyLimit(d.MaxUploadBytes + 64<<10)))
	}
	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "chouchef"}
	promHandler := echoprometheus.NewHandler()
	if d.Registry != nil {
		promConfig.Registerer = d.Registry
		promHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	foodHandler := handler.NewFoodHandler(d.Foods)
	shopHandler := handler.NewShopHandler(d.Shops)
	mediaHandler := handler.NewMediaHandler(d.Detector, d.Images, d.MaxUploadBytes, d.Log)
	contactHandler := handler.NewContactHandler(d.Contact)
	healthHandler := handler.NewHealthHandler(d.Checks, d.Log)

	auth := middleware.Auth(d.Verifier, d.Revocations, d.Log)

	// --- Users ---
	users := e.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/allUsers", userHandler.List)
	users.GET("/email/:email", userHandler.GetByEmail)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, auth, middleware.SelfOnly("id"))
	users.DELETE("/:id", userHandler.Delete, auth, middleware.SelfOnly("id"))
	users.PUT("/:id/password", authHandler.ChangePassword, auth, middleware.SelfOnly("id"))

	// --- Food catalog ---
	e.POST("/foods", foodHandler.Create)
	e.GET("/foods", foodHandler.List)
	foods := e.Group("/foods", auth)
	foods.GET("/:id", foodHandler.Get)
	foods.PUT("/:id", foodHandler.Update)
	foods.DELETE("/:id", foodHandler.Delete)

	// --- Shopping lists ---
	shops := e.Group("/shops", auth)
	shops.POST("", shopHandler.Create)
	shops.GET("", shopHandler.List)
	shops.POST("/:userId", shopHandler.Create, middleware.SelfOnly("userId"))
	shops.GET("/:id", shopHandler.Get)
	shops.PUT("/:id", shopHandler.Update)
	shops.DELETE("/:id", shopHandler.Delete)
	shops.POST("/:shopId/add-foods", shopHandler.AddFoods)
	shops.PUT("/:id/check-item", shopHandler.CheckItems)
	shops.PUT("/:listId/food_checked", shopHandler.ReplaceChecked)
	shops.DELETE("/:listId/foods_in_shop/:foodId", shopHandler.RemoveFood)

	// --- Media and contact ---
	e.POST("/detectText", mediaHandler.DetectText)
	e.POST("/upload", mediaHandler.Upload, auth)
	e.GET("/image/:imageName", mediaHandler.GetImage, auth)
	e.POST("/mail", contactHandler.Send)

	// --- Health checks and tooling (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", promHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// bodyLimit renders n bytes in the unit syntax BodyLimit expects.
func bodyLimit(n int64) string {
	return strconv.FormatInt(n/1024+1, 10) + "K"
}
