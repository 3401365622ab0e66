package routes

import (
	"safebaby/config"
	"safebaby/controllers"
	"safebaby/logger"
	"safebaby/middlewares"
	"safebaby/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// collaborators
	fetcher := services.NewOpenFoodFactsService()
	analyzer := services.NewAnalysisService()
	lookupSvc := services.NewLookupService(config.DB, fetcher, analyzer)

	extractor, err := services.NewRekognitionService()
	if err != nil {
		logger.Fatal("rekognition init failed", zap.Error(err))
	}
	scanSvc := services.NewScanService(extractor, lookupSvc)

	productSvc := services.NewProductService(config.DB)
	favoriteSvc := services.NewFavoriteService(config.DB)
	recallSvc := services.NewRecallService(config.DB, favoriteSvc)
	planSvc := services.NewMealPlanService(config.DB, productSvc)
	subSvc := services.NewSubscriptionService(config.DB)

	pushSvc, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Fatal("push service init failed", zap.Error(err))
	}
	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub, pushSvc)

	// controllers
	lookupCtl := controllers.NewLookupController(lookupSvc)
	scanCtl := controllers.NewScanController(scanSvc)
	productCtl := controllers.NewProductController(productSvc, recallSvc)
	favoriteCtl := controllers.NewFavoriteController(favoriteSvc)
	recallCtl := controllers.NewRecallController(recallSvc)
	planCtl := controllers.NewMealPlanController(planSvc)
	subCtl := controllers.NewSubscriptionController(subSvc)
	deviceCtl := controllers.NewDeviceController(pushSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Public catalog + lookup routes
	r.GET("/lookup/:barcode", lookupCtl.ByBarcode)
	r.POST("/scan/photo", scanCtl.Photo)
	r.GET("/products/search", productCtl.Search)
	r.GET("/products/top", productCtl.Top)
	r.GET("/products/:id", productCtl.Detail)
	r.GET("/products/:id/recalls", productCtl.ProductRecalls)
	r.GET("/recalls/active", recallCtl.ListActive)
	r.POST("/contact", controllers.SubmitContactForm)

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteAccount)
		user.GET("/favorites", favoriteCtl.List)
		user.POST("/favorites", favoriteCtl.Add)
		user.DELETE("/favorites/:productId", favoriteCtl.Remove)
		user.GET("/meal-plan", planCtl.Get)
		user.POST("/meal-plan/generate", planCtl.Generate)
		user.POST("/subscription/refresh", subCtl.Refresh)
		user.POST("/devices", deviceCtl.Register)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
		user.GET("/alerts", controllers.ListAlerts)
	}

	// Realtime alerts
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", realtimeCtl.AlertsWS)
	}

	// Ops-only
	admin := r.Group("/admin")
	admin.Use(middlewares.AdminMiddleware())
	{
		admin.POST("/recalls", recallCtl.Publish)
		admin.POST("/recalls/:id/close", recallCtl.Close)
	}

	return r
}
