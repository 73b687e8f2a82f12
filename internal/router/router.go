package router

import (
	"github.com/storefront-api/internal/config"
	adminhandlers "github.com/storefront-api/internal/http/handlers/admin"
	publichandlers "github.com/storefront-api/internal/http/handlers/public"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	counter := RedisWindowCounter()
	loginRule := LoginRateLimitRule(cfg.Security.LoginRateLimit)
	registerRule := RegisterRateLimitRule(cfg.Security.LoginRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)

	apiV1 := r.Group("/api/v1")
	{
		// 商品目录（公开只读）
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/products/:id/reviews", publicHandler.ListProductReviews)
		apiV1.GET("/products/:id/reviews/:review_id", publicHandler.GetProductReview)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.GET("/captcha", publicHandler.GetImageCaptcha)
			auth.POST("/register", RateLimitMiddleware(counter, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(counter, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/me", publicHandler.GetCurrentUser)

			user.POST("/products/:id/reviews", publicHandler.CreateProductReview)
			user.PATCH("/products/:id/reviews/:review_id", publicHandler.UpdateProductReview)
			user.DELETE("/products/:id/reviews/:review_id", publicHandler.DeleteProductReview)

			user.POST("/carts", publicHandler.CreateCart)
			user.GET("/carts/:cart_id", publicHandler.GetCart)
			user.DELETE("/carts/:cart_id", publicHandler.DeleteCart)
			user.GET("/carts/:cart_id/items", publicHandler.ListCartItems)
			user.POST("/carts/:cart_id/items", publicHandler.AddCartItem)
			user.GET("/carts/:cart_id/items/:item_id", publicHandler.GetCartItem)
			user.PATCH("/carts/:cart_id/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/carts/:cart_id/items/:item_id", publicHandler.RemoveCartItem)
			user.POST("/cart/items", publicHandler.AddItemToOwnCart)

			user.POST("/orders", publicHandler.PlaceOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 店员后台（JWT + RBAC）
		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(userAuth, StaffRBACMiddleware(c.AuthzService))
		{
			adminGroup.POST("/categories", adminHandler.CreateCategory)
			adminGroup.PATCH("/categories/:id", adminHandler.UpdateCategory)
			adminGroup.DELETE("/categories/:id", adminHandler.DeleteCategory)

			adminGroup.POST("/products", adminHandler.CreateProduct)
			adminGroup.PATCH("/products/:id", adminHandler.UpdateProduct)
			adminGroup.DELETE("/products/:id", adminHandler.DeleteProduct)

			adminGroup.GET("/orders", adminHandler.ListOrders)
			adminGroup.GET("/orders/:id", adminHandler.GetOrder)
			adminGroup.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			adminGroup.DELETE("/orders/:id", adminHandler.DeleteOrder)

			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PATCH("/users/:id/staff", adminHandler.SetUserStaff)
			adminGroup.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)
			adminGroup.GET("/users/:id/roles", adminHandler.GetUserRoles)
			adminGroup.PUT("/users/:id/roles", adminHandler.SetUserRoles)

			adminGroup.GET("/authz/me", adminHandler.GetAuthzMe)
			adminGroup.GET("/authz/roles", adminHandler.ListAuthzRoles)
			adminGroup.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			adminGroup.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
		}
	}

	return r
}
