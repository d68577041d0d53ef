// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gamevault/game-library-backend/internal/domain/analytics"
	"github.com/gamevault/game-library-backend/internal/domain/cart"
	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/checkout"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/recommendation"
	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/domain/wishlist"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/handlers"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/middleware"
	"github.com/gamevault/game-library-backend/internal/pkg/auth"
	"github.com/gamevault/game-library-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handlers bundles every HTTP handler with the token manager guarding them
type Handlers struct {
	Tokens *auth.JWTManager

	Auth        *handlers.AuthHandler
	Game        *handlers.GameHandler
	Cart        *handlers.CartHandler
	Checkout    *handlers.CheckoutHandler
	Order       *handlers.OrderHandler
	Library     *handlers.LibraryHandler
	Wishlist    *handlers.WishlistHandler
	Review      *handlers.ReviewHandler
	Achievement *handlers.AchievementHandler
	Stats       *handlers.StatsHandler
	Admin       *handlers.AdminHandler
}

// NewHandlers wires repositories, services and handlers. redisClient may be
// nil, which disables the catalog cache and unlock announcements.
func NewHandlers(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logrus.FieldLogger) *Handlers {
	tokens := auth.NewJWTManager(cfg)
	passwords := auth.NewPasswordManager(cfg)

	gameRepo := catalog.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	libraryRepo := library.NewRepository(db)
	orderRepo := order.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	achievementRepo := achievement.NewRepository(db)

	userService := user.NewService(db, passwords, tokens, log)
	adminService := user.NewAdminService(db, log)
	gameService := catalog.NewService(gameRepo, catalog.NewCache(redisClient, cfg.Catalog.CacheTTL), cfg.Catalog.TopRatedMin, log)
	cartService := cart.NewService(cartRepo, gameService, log)
	libraryService := library.NewService(libraryRepo, gameService, log)
	orderService := order.NewService(orderRepo)
	reviewService := review.NewService(reviewRepo, gameService, log)
	wishlistService := wishlist.NewService(db, gameService, log)

	var publisher achievement.Publisher
	if redisClient != nil {
		publisher = achievement.NewRedisPublisher(redisClient)
	}
	engine := achievement.NewEngine(
		achievementRepo,
		&achievement.StoreFacts{Orders: orderRepo, Library: libraryRepo, Reviews: reviewRepo},
		publisher,
		log,
	)

	checkoutService := checkout.NewService(db, cartRepo, libraryRepo, orderRepo, engine, cfg.Checkout, log)
	analyticsService := analytics.NewService(analytics.Deps{
		Orders:       orderRepo,
		Library:      libraryRepo,
		Reviews:      reviewRepo,
		Wishlist:     wishlistService,
		Achievements: achievementRepo,
		Games:        gameRepo,
		Users:        adminService,
	})
	recommendationService := recommendation.NewService(gameRepo, libraryRepo, cfg.Catalog.TopRatedMin)

	return &Handlers{
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(userService),
		Game:        handlers.NewGameHandler(gameService, cfg.Catalog.MaxSearchLimit),
		Cart:        handlers.NewCartHandler(cartService),
		Checkout:    handlers.NewCheckoutHandler(checkoutService),
		Order:       handlers.NewOrderHandler(orderService, pdf.NewService(cfg.Receipt)),
		Library:     handlers.NewLibraryHandler(libraryService),
		Wishlist:    handlers.NewWishlistHandler(wishlistService),
		Review:      handlers.NewReviewHandler(reviewService),
		Achievement: handlers.NewAchievementHandler(engine),
		Stats:       handlers.NewStatsHandler(analyticsService, recommendationService),
		Admin:       handlers.NewAdminHandler(adminService, orderService, analyticsService),
	}
}

// SetupRoutes registers every API route on rg
func SetupRoutes(rg *gin.RouterGroup, h *Handlers) {
	SetupAuthRoutes(rg, h)
	SetupCatalogRoutes(rg, h)
	SetupShoppingRoutes(rg, h)
	SetupLibraryRoutes(rg, h)
	SetupAchievementRoutes(rg, h)
	SetupAdminRoutes(rg, h)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(h.Tokens))
		{
			protected.GET("/profile", h.Auth.GetProfile)
		}
	}
}

// SetupCatalogRoutes sets up the public game and review routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	games := rg.Group("/games")
	{
		games.GET("", h.Game.GetGames)
		games.GET("/search", h.Game.SearchGames)
		games.GET("/top-rated", h.Game.TopRated)
		games.GET("/:id", h.Game.GetGame)
	}

	reviews := rg.Group("/reviews/game/:gameId")
	{
		reviews.GET("", h.Review.GetGameReviews)
		reviews.GET("/stats", h.Review.GetGameReviewStats)

		protected := reviews.Group("")
		protected.Use(middleware.AuthMiddleware(h.Tokens))
		{
			protected.POST("", h.Review.UpsertReview)
			protected.DELETE("", h.Review.DeleteReview)
		}
	}
}

// SetupShoppingRoutes sets up cart, checkout and order routes
func SetupShoppingRoutes(rg *gin.RouterGroup, h *Handlers) {
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware(h.Tokens))
	{
		cartGroup.GET("", h.Cart.GetCart)
		cartGroup.POST("/add/:gameId", h.Cart.AddToCart)
		cartGroup.DELETE("/remove/:gameId", h.Cart.RemoveFromCart)
		cartGroup.DELETE("/clear", h.Cart.ClearCart)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(h.Tokens))
	{
		orders.POST("/checkout", h.Checkout.Checkout)
		orders.GET("/checkout/summary", h.Checkout.GetCheckoutSummary)
		orders.GET("/my-orders", h.Order.GetMyOrders)
		orders.GET("/:id", h.Order.GetMyOrder)
		orders.GET("/:id/receipt", h.Order.GetReceipt)
	}
}

// SetupLibraryRoutes sets up library, wishlist, stats and recommendation routes
func SetupLibraryRoutes(rg *gin.RouterGroup, h *Handlers) {
	authRequired := middleware.AuthMiddleware(h.Tokens)

	lib := rg.Group("/library")
	lib.Use(authRequired)
	{
		lib.GET("/my-games", h.Library.GetMyGames)
		lib.POST("/add/:gameId", h.Library.AddGame)
		lib.GET("/check/:gameId", h.Library.CheckOwnership)
	}

	wish := rg.Group("/wishlist")
	wish.Use(authRequired)
	{
		wish.GET("", h.Wishlist.GetWishlist)
		wish.POST("/add/:gameId", h.Wishlist.AddToWishlist)
		wish.DELETE("/remove/:gameId", h.Wishlist.RemoveFromWishlist)
		wish.GET("/check/:gameId", h.Wishlist.CheckWishlist)
	}

	rg.GET("/stats/user", authRequired, h.Stats.GetUserStats)
	rg.GET("/recommendations", authRequired, h.Stats.GetRecommendations)
}

// SetupAchievementRoutes sets up achievement routes
func SetupAchievementRoutes(rg *gin.RouterGroup, h *Handlers) {
	achievements := rg.Group("/achievements")
	{
		achievements.GET("/definitions", h.Achievement.GetDefinitions)

		protected := achievements.Group("")
		protected.Use(middleware.AuthMiddleware(h.Tokens))
		{
			protected.GET("", h.Achievement.GetMyAchievements)
			protected.POST("/check", h.Achievement.CheckAchievements)
		}
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.Tokens))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", h.Admin.GetUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.GET("/orders", h.Admin.GetOrders)
		admin.GET("/stats", h.Admin.GetStats)
	}
}
