// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"aevum/internal/delivery/http/middleware"
	"aevum/internal/delivery/http/router/handler"
	"aevum/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers to register, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	SessionHandler      *handler.SessionHandler
	ProfileHandler      *handler.ProfileHandler
	DeviceHandler       *handler.DeviceHandler
	DNAHandler          *handler.DNAHandler
	JournalHandler      *handler.JournalHandler
	CompanionHandler    *handler.CompanionHandler
	SubscriptionHandler *handler.SubscriptionHandler
	DashboardHandler    *handler.DashboardHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.UserHandler.RegisterUser)
		authGroup.POST("/register/lab", r.params.UserHandler.RegisterLab)
		authGroup.POST("/login", r.params.UserHandler.Login)
		authGroup.POST("/refresh", r.params.UserHandler.RefreshToken)
		authGroup.POST("/logout", r.params.UserHandler.Logout)
		authGroup.POST("/logout-all", r.params.SessionHandler.LogoutAll, auth.Authenticate)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("/profile", r.params.ProfileHandler.GetProfile)
		userGroup.PATCH("/profile", r.params.ProfileHandler.UpdateProfile)
		userGroup.POST("/password", r.params.UserHandler.ChangePassword)

		userGroup.GET("/sessions", r.params.SessionHandler.ListSessions)
		userGroup.DELETE("/sessions/:id", r.params.SessionHandler.RevokeSession)

		userGroup.POST("/devices", r.params.DeviceHandler.RegisterDevice)
		userGroup.GET("/devices", r.params.DeviceHandler.ListDevices)
		userGroup.DELETE("/devices/:deviceId", r.params.DeviceHandler.DeactivateDevice)
	}

	// DNA profiling routes
	dnaGroup := e.Group("/dna")
	dnaGroup.Use(auth.Authenticate)
	{
		dnaGroup.GET("/kit-types", r.params.DNAHandler.ListKitTypes)
		dnaGroup.GET("/kit-types/:id", r.params.DNAHandler.GetKitType)

		dnaGroup.POST("/orders", r.params.DNAHandler.CreateOrder)
		dnaGroup.GET("/orders", r.params.DNAHandler.ListOrders)
		dnaGroup.GET("/orders/:id", r.params.DNAHandler.GetOrder)
		dnaGroup.POST("/orders/:id/cancel", r.params.DNAHandler.CancelOrder)
		dnaGroup.GET("/orders/:id/kit-qr", r.params.DNAHandler.GetKitQR)

		dnaGroup.GET("/reports/:orderId", r.params.DNAHandler.GetReport)
		dnaGroup.GET("/dashboard", r.params.DNAHandler.GetDashboard)
	}

	// Lab-side routes require the "lab" role on top of authentication
	labGroup := e.Group("/dna")
	labGroup.Use(auth.Authenticate)
	labGroup.Use(auth.RequireRole(string(entity.RoleLab)))
	{
		labGroup.PATCH("/lab/orders/:id/status", r.params.DNAHandler.UpdateOrderStatus)
		labGroup.POST("/pdf/upload", r.params.DNAHandler.UploadReportPDF)
	}

	// Journal routes
	journalGroup := e.Group("/journal")
	journalGroup.Use(auth.Authenticate)
	{
		journalGroup.POST("/entries", r.params.JournalHandler.CreateEntry)
		journalGroup.GET("/entries", r.params.JournalHandler.ListEntries)
		journalGroup.GET("/entries/:id", r.params.JournalHandler.GetEntry)
		journalGroup.PUT("/entries/:id", r.params.JournalHandler.UpdateEntry)
		journalGroup.DELETE("/entries/:id", r.params.JournalHandler.DeleteEntry)

		journalGroup.GET("/calendar", r.params.JournalHandler.GetCalendar)
		journalGroup.GET("/streak", r.params.JournalHandler.GetStreak)
		journalGroup.GET("/insights", r.params.JournalHandler.GetInsights)

		journalGroup.POST("/reminders", r.params.JournalHandler.CreateReminder)
		journalGroup.GET("/reminders", r.params.JournalHandler.ListReminders)
		journalGroup.PUT("/reminders/:id", r.params.JournalHandler.UpdateReminder)
		journalGroup.DELETE("/reminders/:id", r.params.JournalHandler.DeleteReminder)
	}

	// Companion chat routes
	companionGroup := e.Group("/companion")
	companionGroup.Use(auth.Authenticate)
	{
		companionGroup.POST("/threads", r.params.CompanionHandler.CreateThread)
		companionGroup.GET("/threads", r.params.CompanionHandler.ListThreads)
		companionGroup.GET("/threads/:id", r.params.CompanionHandler.GetThread)
		companionGroup.DELETE("/threads/:id", r.params.CompanionHandler.DeleteThread)
		companionGroup.POST("/threads/:id/messages", r.params.CompanionHandler.SendMessage)
	}

	// Subscription routes
	subscriptionGroup := e.Group("/subscriptions")
	subscriptionGroup.Use(auth.Authenticate)
	{
		subscriptionGroup.GET("/plans", r.params.SubscriptionHandler.ListPlans)
		subscriptionGroup.GET("/current", r.params.SubscriptionHandler.GetCurrent)
		subscriptionGroup.POST("", r.params.SubscriptionHandler.Subscribe)
		subscriptionGroup.POST("/cancel", r.params.SubscriptionHandler.Cancel)
	}

	// Home dashboard
	e.GET("/dashboard", r.params.DashboardHandler.GetDashboard, auth.Authenticate)
}
