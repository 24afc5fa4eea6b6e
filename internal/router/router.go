package router

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"pressroom/internal/auth"
	"pressroom/internal/config"
	apperrors "pressroom/internal/errors"
	"pressroom/internal/handler"
	"pressroom/internal/model"
	"pressroom/internal/response"
	"pressroom/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	articleHandler *handler.ArticleHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = validation.New()
	e.HTTPErrorHandler = response.NewHTTPErrorHandler(cfg.Production())

	e.GET("/health", func(c echo.Context) error {
		return response.JSON(c, http.StatusOK, "Server is running", map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit),
			Burst:     cfg.RateBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	}))

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/articles/public", articleHandler.PublicList)

	// Secured routes (require a valid bearer token)
	bearer := echojwt.WithConfig(echojwt.Config{
		ContextKey: auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		// Missing and invalid tokens are both authentication failures; the
		// default middleware answers 400 for a missing token.
		ErrorHandler: func(c echo.Context, err error) error {
			return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "invalid or missing token", Internal: err}
		},
	})

	authGroup := api.Group("/auth", bearer)
	authGroup.GET("/profile", authHandler.Profile)
	authGroup.PUT("/profile", authHandler.UpdateProfile)
	authGroup.POST("/change-password", authHandler.ChangePassword)
	authGroup.POST("/logout", authHandler.Logout)

	articles := api.Group("/articles", bearer)
	viewers := RequireRoles(model.RoleAdmin, model.RoleEditor, model.RoleViewer)
	writers := RequireRoles(model.RoleAdmin, model.RoleEditor)

	articles.GET("", articleHandler.List, viewers)
	articles.GET("/my-articles", articleHandler.MyArticles)
	articles.GET("/:id", articleHandler.Get, viewers)
	articles.POST("", articleHandler.Create, writers)
	// Edit and delete resolve ownership against the stored article, so the
	// fine-grained check lives in the service rather than at the route.
	articles.PUT("/:id", articleHandler.Update)
	articles.DELETE("/:id", articleHandler.Delete)
}

// RequireRoles rejects authenticated callers whose role is outside the
// allowed set.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.ClaimsFrom(c)
			if !ok {
				return echo.ErrUnauthorized
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return apperrors.ErrForbidden
		}
	}
}
