package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Get("/available-slots", appointmentController.GetAvailableSlots)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.With(middlewares.RequireRoles(models.UserRolePatient)).Post("/", appointmentController.CreateAppointment)
		r.Get("/", appointmentController.ListAppointments)
		r.Get("/{id}", appointmentController.GetAppointment)
		r.Put("/{id}", appointmentController.UpdateAppointment)
		r.Patch("/{id}", appointmentController.UpdateAppointment)
		r.With(middlewares.RequireRoles(models.UserRolePatient, models.UserRoleDoctor)).Post("/{id}/cancel", appointmentController.CancelAppointment)
		r.With(middlewares.RequireRoles(models.UserRoleDoctor)).Post("/{id}/confirm", appointmentController.ConfirmAppointment)
		r.With(middlewares.RequireRoles(models.UserRoleDoctor)).Post("/{id}/complete", appointmentController.CompleteAppointment)
	})
}
