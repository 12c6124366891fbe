package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products   *ProductHandler
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Wishlist   *WishlistHandler
	Newsletter *NewsletterHandler
	Payments   *PaymentMethodHandler
	Contact    *ContactHandler
	Admin      *AdminHandler
}

// NewRouter wires the storefront routes. Everything except the public
// catalog and newsletter endpoints expects an authenticated user.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(AuthMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", h.Products.ListProducts)
	r.Get("/products/featured", h.Products.ListFeatured)
	r.Get("/products/{product_id}", h.Products.GetProduct)
	r.Get("/categories", h.Products.ListCategories)

	r.Post("/newsletter/subscribe", h.Newsletter.Subscribe)
	r.Post("/newsletter/unsubscribe", h.Newsletter.Unsubscribe)

	r.Get("/payment-methods", h.Payments.ListActive)
	r.Post("/contact", h.Contact.Submit)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.GetCart)
		r.Delete("/", h.Cart.ClearCart)
		r.Post("/items", h.Cart.AddItem)
		r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
		r.Delete("/items/{item_id}", h.Cart.RemoveItem)
		r.Post("/refresh", h.Cart.RefreshPrices)
	})

	r.Post("/checkout", h.Checkout.PlaceOrder)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Checkout.ListOrders)
		r.Get("/{order_id}", h.Checkout.GetOrder)
		r.Post("/{order_id}/receipt", h.Checkout.AttachReceipt)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", h.Wishlist.List)
		r.Post("/", h.Wishlist.Add)
		r.Delete("/{product_id}", h.Wishlist.Remove)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.Admin.RequireAdmin)
		r.Post("/products", h.Admin.CreateProduct)
		r.Put("/products/{product_id}", h.Admin.UpdateProduct)
		r.Delete("/products/{product_id}", h.Admin.DeleteProduct)
		r.Post("/categories", h.Admin.CreateCategory)
		r.Delete("/categories/{category_id}", h.Admin.DeleteCategory)
		r.Put("/orders/{order_id}/status", h.Admin.UpdateOrderStatus)
		r.Get("/payment-methods", h.Payments.List)
		r.Post("/payment-methods", h.Payments.Create)
		r.Put("/payment-methods/{method_id}", h.Payments.Update)
		r.Delete("/payment-methods/{method_id}", h.Payments.Delete)
		r.Get("/messages", h.Contact.List)
		r.Delete("/messages/{message_id}", h.Contact.Delete)
		r.Get("/subscribers", h.Admin.ListSubscribers)
		r.Get("/admins", h.Admin.ListAdmins)
		r.Post("/admins", h.Admin.PromoteAdmin)
		r.Delete("/admins/{user_id}", h.Admin.DemoteAdmin)
	})

	return r
}
