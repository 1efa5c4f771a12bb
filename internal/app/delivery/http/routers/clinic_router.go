package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachClinicRoutes(router chi.Router, clinicController *controllers.ClinicController) {
	router.Get("/", clinicController.SearchClinics)
	router.Get("/{id}", clinicController.GetClinic)
}
