package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pet-service/internal/api/http/handlers"
	"github.com/spec-kit/pet-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Pets           *handlers.PetsHandler
	Records        *handlers.PetRecordsHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Post("/logout", cfg.Auth.Logout)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle)

	users := v1.Group("/users")
	users.Get("/me", cfg.Users.Me)
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.UpdateProfile)
	users.Put("/:id/username", cfg.Users.UpdateUsername)
	users.Post("/:id/activate", auth.RequireAdmin(), cfg.Users.Activate)
	users.Post("/:id/deactivate", auth.RequireAdmin(), cfg.Users.Deactivate)
	users.Post("/:id/promote", auth.RequireAdmin(), cfg.Users.Promote)
	users.Post("/:id/demote", auth.RequireAdmin(), cfg.Users.Demote)
	users.Delete("/:id", cfg.Users.Delete)

	pets := v1.Group("/pets")
	pets.Post("/", cfg.Pets.Create)
	pets.Get("/", cfg.Pets.List)
	pets.Get("/:id", cfg.Pets.Get)
	pets.Patch("/:id", cfg.Pets.Update)
	pets.Delete("/:id", cfg.Pets.Delete)
	pets.Post("/:id/transfer", cfg.Pets.Transfer)
	pets.Put("/:id/birth-date", cfg.Pets.SetBirthDate)
	pets.Put("/:id/morphology", cfg.Pets.SetMorphology)
	pets.Post("/:id/genes", cfg.Pets.AddGene)
	pets.Delete("/:id/genes/:geneId", cfg.Pets.RemoveGene)
	pets.Post("/:id/pictures", cfg.Pets.AddPicture)
	pets.Delete("/:id/pictures/:pictureId", cfg.Pets.RemovePicture)
	pets.Get("/:id/age", cfg.Pets.Age)
	pets.Get("/:id/history", cfg.Pets.History)
	pets.Get("/:id/ownership", cfg.Pets.Ownership)
	pets.Get("/:id/genetics", cfg.Pets.Genetics)
	pets.Get("/:id/genetics/compatibility", cfg.Pets.CompareGenetics)
	pets.Post("/:id/records", cfg.Records.Create)
	pets.Get("/:id/records", cfg.Records.List)
	pets.Get("/:id/records/:recordId", cfg.Records.Get)
	pets.Patch("/:id/records/:recordId", cfg.Records.Update)
	pets.Delete("/:id/records/:recordId", cfg.Records.Delete)

	breeds := v1.Group("/breeds")
	breeds.Get("/", cfg.Catalog.ListBreeds)
	breeds.Get("/:id", cfg.Catalog.GetBreed)
	breeds.Post("/", auth.RequireAdmin(), cfg.Catalog.CreateBreed)
	breeds.Put("/:id", auth.RequireAdmin(), cfg.Catalog.UpdateBreed)
	breeds.Delete("/:id", auth.RequireAdmin(), cfg.Catalog.DeleteBreed)

	genes := v1.Group("/genes")
	genes.Get("/", cfg.Catalog.ListGenes)
	genes.Get("/:id", cfg.Catalog.GetGene)
	genes.Post("/", auth.RequireAdmin(), cfg.Catalog.CreateGene)
	genes.Put("/:id", auth.RequireAdmin(), cfg.Catalog.UpdateGene)
	genes.Delete("/:id", auth.RequireAdmin(), cfg.Catalog.DeleteGene)

	morphologies := v1.Group("/morphologies")
	morphologies.Get("/", cfg.Catalog.ListMorphologies)
	morphologies.Get("/:id", cfg.Catalog.GetMorphology)
	morphologies.Post("/", auth.RequireAdmin(), cfg.Catalog.CreateMorphology)
	morphologies.Put("/:id", auth.RequireAdmin(), cfg.Catalog.UpdateMorphology)
	morphologies.Post("/:id/genes", auth.RequireAdmin(), cfg.Catalog.AddMorphologyGene)
	morphologies.Delete("/:id/genes/:geneId", auth.RequireAdmin(), cfg.Catalog.RemoveMorphologyGene)
	morphologies.Delete("/:id", auth.RequireAdmin(), cfg.Catalog.DeleteMorphology)
}
