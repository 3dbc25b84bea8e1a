package routers

import (
	"patient-intake-service/internal/app/delivery/http/controllers"
	"patient-intake-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPatientSessionRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientSessionController *controllers.PatientSessionController) {
	router.Post("/", patientSessionController.StartSession)
	router.Route("/{patient_id}", func(r chi.Router) {
		r.Get("/", patientSessionController.GetSession)
		r.Delete("/", patientSessionController.EndSession)
		r.Post("/submit", patientSessionController.Submit)
		r.Post("/reset", patientSessionController.Reset)
		r.With(middlewares.BodyLimit).Patch("/fields", patientSessionController.UpdateFields)
	})
}
