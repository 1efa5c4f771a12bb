package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	gatewayLimiter := middlewares.GatewayRateLimiter()

	router.Route("/vnpay", func(r chi.Router) {
		r.Use(gatewayLimiter.Limit)

		r.With(middlewares.Authenticate, middlewares.RequireRoles(models.UserRolePatient)).Post("/create", paymentController.CreateVNPayPayment)
		r.Get("/callback", paymentController.VNPayCallback)
		r.Get("/ipn", paymentController.VNPayIPN)
		r.Post("/ipn", paymentController.VNPayIPN)
	})

	router.With(middlewares.Authenticate).Get("/{id}/status", paymentController.GetPaymentStatus)
}
