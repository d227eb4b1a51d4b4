package routes

import (
	"github.com/emmanuel7l7/chicken-farm/controllers"
	"github.com/emmanuel7l7/chicken-farm/middleware"
	"github.com/emmanuel7l7/chicken-farm/models"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
	Products *controllers.ProductController
}

func Register(r *gin.Engine, ctrl Controllers, jwtSecret []byte) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public catalog
	r.GET("/products", ctrl.Products.GetProducts)
	r.GET("/products/:id", ctrl.Products.GetProductByID)

	auth := middleware.AuthMiddleware(jwtSecret)

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(auth)
	cartRoutes.GET("", ctrl.Cart.GetCart)
	cartRoutes.POST("/items", ctrl.Cart.AddItem)
	cartRoutes.PUT("/items/:product_id", ctrl.Cart.UpdateItem)
	cartRoutes.DELETE("/items/:product_id", ctrl.Cart.RemoveItem)
	cartRoutes.DELETE("", ctrl.Cart.ClearCart)

	checkoutRoutes := r.Group("/checkout")
	checkoutRoutes.Use(auth, middleware.RateLimitMiddleware())
	checkoutRoutes.POST("", ctrl.Checkout.Submit)

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(auth)
	orderRoutes.GET("", ctrl.Orders.GetOrders)
	orderRoutes.GET("/:id", ctrl.Orders.GetOrderByID)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(auth, middleware.RequireRole(models.RoleAdmin))
	adminRoutes.GET("/orders", ctrl.Orders.GetAllOrders)
	adminRoutes.PATCH("/orders/:id", ctrl.Orders.UpdateOrderStatus)
	adminRoutes.POST("/products", ctrl.Products.CreateProduct)
	adminRoutes.PUT("/products/:id", ctrl.Products.UpdateProduct)
	adminRoutes.DELETE("/products/:id", ctrl.Products.DeleteProduct)
}
