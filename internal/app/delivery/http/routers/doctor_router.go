package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController, appointmentController *controllers.AppointmentController) {
	router.Get("/", doctorController.SearchDoctors)
	router.Get("/{id}", doctorController.GetDoctor)
	router.Get("/{id}/available-slots", appointmentController.GetDoctorAvailableSlots)
}
