package routes

import (
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/controllers"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every controller into the router. adminKey guards the
// content-management endpoints; empty disables them.
func RegisterRoutes(
	r *gin.Engine,
	adminKey string,
	payments *controllers.PaymentController,
	galleries *controllers.GalleryController,
	blog *controllers.BlogController,
	contact *controllers.ContactController,
	bookings *controllers.BookingController,
	retouch *controllers.RetouchController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.POST("/payment-intents", payments.CreatePaymentIntent)
	r.POST("/stripe/webhook", payments.StripeWebhook)

	galleryRoutes := r.Group("/galleries")
	{
		galleryRoutes.GET("", galleries.ListGalleries)
		galleryRoutes.GET("/:slug/images", galleries.GalleryImages)
	}

	blogRoutes := r.Group("/blog")
	{
		blogRoutes.GET("", blog.ListPosts)
		blogRoutes.GET("/:slug", blog.GetPost)
	}

	r.POST("/contact", contact.SubmitContact)

	bookingRoutes := r.Group("/bookings")
	{
		bookingRoutes.POST("", bookings.CreateBooking)
		bookingRoutes.POST("/:id/confirm", bookings.ConfirmBooking)
	}

	retouchRoutes := r.Group("/retouch-orders")
	{
		retouchRoutes.POST("", retouch.CreateOrder)
		retouchRoutes.POST("/:id/uploads", retouch.PresignUpload)
		retouchRoutes.POST("/:id/process", retouch.StartProcessing)
		retouchRoutes.GET("/:id", retouch.GetOrder)
	}

	admin := r.Group("/admin", middleware.RequireAdminKey(adminKey))
	{
		admin.POST("/galleries", galleries.CreateGallery)
		admin.POST("/galleries/:slug/uploads", galleries.PresignImageUpload)
		admin.POST("/galleries/:slug/images", galleries.AddImage)
		admin.POST("/blog", blog.CreatePost)
		admin.PUT("/blog/:slug", blog.UpdatePost)
	}
}
