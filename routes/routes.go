package routes

import (
	"backend/controllers"
	"backend/middleware"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// public endpoints
	api.POST("/users/register", controllers.Register)
	api.POST("/users/login", controllers.Login)
	api.GET("/users/verify-email/:token", controllers.VerifyEmail)

	api.POST("/bookings", controllers.CreateBooking)
	api.GET("/bookings/available-slots/:date", controllers.GetAvailableSlots)

	api.POST("/orders", controllers.CreateOrder)

	api.POST("/messages", controllers.CreateMessage)

	api.GET("/testimonials", controllers.GetAllTestimonials)
	api.GET("/testimonials/approved", controllers.GetApprovedTestimonials)
	api.GET("/testimonials/featured", controllers.GetFeaturedTestimonials)

	api.POST("/subscriptions", controllers.Subscribe)
	api.PATCH("/subscriptions/unsubscribe", controllers.Unsubscribe)
	api.PATCH("/subscriptions/preferences", controllers.UpdateSubscriptionPreferences)
	api.GET("/subscriptions/:email", controllers.GetSubscription)

	user := api.Group("/")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/users/me", controllers.GetMe)
		user.PATCH("/users/me", controllers.UpdateMe)

		user.POST("/testimonials", controllers.CreateTestimonial)
		user.GET("/testimonials/my-testimonials", controllers.GetMyTestimonials)
		user.GET("/testimonials/:id", controllers.GetTestimonial)
		user.PATCH("/testimonials/:id", controllers.UpdateTestimonial)
		user.DELETE("/testimonials/:id", controllers.DeleteTestimonial)
	}

	manager := api.Group("/users/manager")
	manager.Use(middleware.AuthMiddleware("manager"))
	{
		manager.POST("/attendance", controllers.MarkManagerAttendance)
		manager.GET("/dashboard", controllers.GetManagerDashboard)
	}

	staff := api.Group("/")
	staff.Use(middleware.AuthMiddleware("admin", "manager"))
	{
		staff.GET("/bookings", controllers.GetAllBookings)
		staff.GET("/bookings/stats", controllers.GetBookingStats)
		staff.GET("/bookings/monthly-overview", controllers.GetMonthlyOverview)
		staff.GET("/bookings/:id", controllers.GetBookingByID)
		staff.PATCH("/bookings/:id/status", controllers.UpdateBookingStatus)
		staff.DELETE("/bookings/:id", controllers.DeleteBooking)

		staff.GET("/orders", controllers.GetAllOrders)
		staff.GET("/orders/today", controllers.GetTodaysOrders)
		staff.GET("/orders/stats", controllers.GetOrderStats)
		staff.GET("/orders/customer/:phone", controllers.GetOrdersByCustomer)
		staff.POST("/orders/reports/daily", controllers.SendDailyOrdersReport)
		staff.GET("/orders/:id", controllers.GetOrder)
		staff.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		staff.PATCH("/orders/:id/payment", controllers.UpdatePaymentStatus)
		staff.DELETE("/orders/:id", controllers.DeleteOrder)

		staff.POST("/products", controllers.CreateProduct)
		staff.GET("/products", controllers.GetProducts)
		staff.GET("/products/category/:category", controllers.GetProductsByCategory)
		staff.GET("/products/:id", controllers.GetProduct)
		staff.PATCH("/products/:id", controllers.UpdateProduct)
		staff.DELETE("/products/:id", controllers.DeleteProduct)

		staff.GET("/inventory", controllers.GetInventory)
		staff.GET("/inventory/product/:productId", controllers.GetInventoryByProduct)
		staff.POST("/inventory/stock-in", controllers.SimpleStockIn)
		staff.POST("/inventory/stock-out", controllers.SimpleStockOut)
		staff.POST("/inventory/adjust", controllers.QuickStockAdjust)
		staff.POST("/inventory/bulk-stock-in", controllers.BulkStockIn)
		staff.GET("/inventory/daily-movements", controllers.GetDailyMovements)
		staff.GET("/inventory/low-stock-alerts", controllers.GetLowStockAlerts)
		staff.GET("/inventory/stats", controllers.GetInventoryStats)
		staff.POST("/inventory/process-order/:orderId", controllers.ProcessOrder)

		staff.POST("/financial/records/from-order/:orderId", controllers.CreateRecordFromOrder)
		staff.GET("/financial/records", controllers.GetFinancialRecords)
		staff.GET("/financial/stats/dashboard", controllers.GetFinancialStats)
		staff.POST("/financial/expenses", controllers.CreateExpense)
		staff.POST("/financial/purchases", controllers.CreatePurchase)

		staff.GET("/dashboard/today", controllers.GetTodayDashboard)
		staff.GET("/dashboard/monthly", controllers.GetMonthlyStats)
		staff.GET("/dashboard/profit-loss", controllers.GetProfitLoss)
		staff.GET("/dashboard/stock-report", controllers.GetStockReport)
		staff.GET("/dashboard/overview", controllers.GetDashboardOverview)

		staff.GET("/messages", controllers.GetAllMessages)
		staff.GET("/messages/today", controllers.GetTodaysMessages)
		staff.GET("/messages/unread/count", controllers.GetUnreadCount)
		staff.GET("/messages/stats/overview", controllers.GetMessageStats)
		staff.POST("/messages/reports/daily", controllers.SendDailyMessagesReport)
		staff.GET("/messages/:id", controllers.GetMessage)
		staff.PATCH("/messages/:id/status", controllers.UpdateMessageStatus)
		staff.POST("/messages/:id/response", controllers.AddResponse)
		staff.PATCH("/messages/:id/assign", controllers.AssignMessage)
		staff.DELETE("/messages/:id", controllers.DeleteMessage)
	}

	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.GET("/users", controllers.GetAllUsers)
		admin.POST("/users", controllers.CreateUser)
		admin.GET("/users/stats/overview", controllers.GetUserStats)
		admin.GET("/users/stats/monthly-signups", controllers.GetMonthlySignups)
		admin.POST("/users/stats/send-weekly-report", controllers.SendWeeklyStatsReportNow)
		admin.GET("/users/:id", controllers.GetUser)
		admin.PATCH("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.PATCH("/testimonials/:id/status", controllers.UpdateTestimonialStatus)
		admin.GET("/testimonials/stats/overview", controllers.GetTestimonialStats)

		admin.GET("/subscriptions", controllers.GetSubscriptions)
		admin.DELETE("/subscriptions/:id", controllers.DeleteSubscription)
	}
}
