package main

import (
	"net/http"

	"workforce/config"
	"workforce/database"
	"workforce/handlers"
	"workforce/middleware"
	"workforce/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	workingHoursHandler := handlers.NewWorkingHoursHandler(cfg)
	rostersHandler := handlers.NewRostersHandler(cfg)
	payrollHandler := handlers.NewPayrollHandler(cfg)
	permissionsHandler := handlers.NewPermissionsHandler(cfg)
	referenceHandler := handlers.NewReferenceHandler(cfg)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/login", authHandler.Login)
	router.Post("/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/logout", authHandler.Logout)
		r.Post("/change-password", authHandler.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			r.Get("/dashboard", workingHoursHandler.Dashboard)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermWorkingHoursRead))
				r.Get("/working-hours", workingHoursHandler.List)
				r.Get("/working-hours/{id}", workingHoursHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermWorkingHoursWrite))
				r.Post("/working-hours", workingHoursHandler.Create)
				r.Put("/working-hours/{id}", workingHoursHandler.Update)
				r.Delete("/working-hours/{id}", workingHoursHandler.Delete)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermWorkingHoursApprove))
				r.Post("/working-hours/{id}/status", workingHoursHandler.UpdateStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermRostersRead))
				r.Get("/rosters", rostersHandler.List)
				r.Get("/rosters/{id}", rostersHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermRostersWrite))
				r.Post("/rosters", rostersHandler.Create)
				r.Put("/rosters/{id}", rostersHandler.Update)
				r.Delete("/rosters/{id}", rostersHandler.Delete)
				r.Post("/rosters/{id}/status", rostersHandler.UpdateStatus)
				r.Post("/rosters/{id}/lock", rostersHandler.Lock)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermPayrollRead))
				r.Get("/payroll", payrollHandler.List)
				r.Get("/payroll/{id}", payrollHandler.Get)
			})
			r.With(middleware.RequirePermission(models.PermPayrollGenerate)).
				Post("/payroll/generate", payrollHandler.Generate)
			r.With(middleware.RequirePermission(models.PermPayrollApprove)).
				Post("/payroll/{id}/status", payrollHandler.UpdateStatus)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermPayrollExport))
				r.Get("/payroll/export/csv", payrollHandler.ExportCSV)
				r.Get("/payroll/export/xlsx", payrollHandler.ExportXLSX)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermClientsManage))
				r.Post("/clients", referenceHandler.CreateClient)
				r.Put("/clients/{id}", referenceHandler.UpdateClient)
				r.Delete("/clients/{id}", referenceHandler.DeleteClient)
			})
			r.Get("/clients", referenceHandler.ListClients)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermProjectsManage))
				r.Post("/projects", referenceHandler.CreateProject)
				r.Put("/projects/{id}", referenceHandler.UpdateProject)
				r.Delete("/projects/{id}", referenceHandler.DeleteProject)
			})
			r.Get("/projects", referenceHandler.ListProjects)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermProfilesManage))
				r.Get("/users", authHandler.ListUsers)
				r.Put("/users/{id}", authHandler.UpdateUser)
				r.Delete("/users/{id}", authHandler.DeleteUser)
				r.Get("/invites", authHandler.ListInvites)
				r.Post("/invites", authHandler.CreateInvite)
				r.Get("/bank-accounts", referenceHandler.ListBankAccounts)
				r.Post("/bank-accounts", referenceHandler.CreateBankAccount)
				r.Delete("/bank-accounts/{id}", referenceHandler.DeleteBankAccount)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(models.PermPermissionsManage))
				r.Get("/permissions", permissionsHandler.List)
				r.Put("/permissions", permissionsHandler.Save)
			})
		})
	})

	logrus.WithField("port", cfg.ServerPort).Info("server starting")
	logrus.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
