package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/partforge/PartForge-API/internal/config"
	"github.com/partforge/PartForge-API/internal/models"
	"github.com/partforge/PartForge-API/internal/store"
	"github.com/partforge/PartForge-API/pkg/compat"
	"github.com/partforge/PartForge-API/pkg/listexport"
	"github.com/partforge/PartForge-API/pkg/scraper"
)

type SearchRequest struct {
	Query  string `json:"query"`
	Region string `json:"region"`
}

type GetPartRequest struct {
	URL string `json:"url"`
}

type CreateBuildRequest struct {
	Name string `json:"name"`
}

type ImportRequest struct {
	URL string `json:"url"`
}

func main() {
	cfg := config.Load()

	// Initialize the scraper
	scrap := scraper.NewScraper()
	scrap.RandomizeUserAgent()

	engine := compat.NewEngine()

	builds, err := store.Open(cfg.DataPath)
	if err != nil {
		log.Fatal(err)
	}
	defer builds.Close()

	// Create a Fiber app
	app := fiber.New()
	app.Use(helmet.New())
	app.Use(logger.New(logger.Config{
		Format: "${pid} | ${time} | ${latency} | [${ip}]:${port} | ${status} - ${method} ${path}\n",
	}))

	// Endpoint for searching PC parts
	app.Post("/search", func(c *fiber.Ctx) error {
		var req SearchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}

		searchResults, err := scrap.SearchParts(req.Query, req.Region)
		if err != nil {
			var redirectError *scraper.RedirectError
			if errors.As(err, &redirectError) {
				// Handle redirect to a single product page
				part, err := scrap.GetPart(redirectError.Error())
				if err != nil {
					return c.Status(500).JSON(fiber.Map{"error": "Error fetching product details"})
				}
				return c.JSON(part)
			}
			return c.Status(500).JSON(fiber.Map{"error": "Error searching parts"})
		}

		return c.JSON(searchResults)
	})

	// Endpoint for getting details of a single part
	app.Post("/getPart", func(c *fiber.Ctx) error {
		var req GetPartRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}

		part, err := scrap.GetPart(req.URL)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error fetching part"})
		}
		return c.JSON(part)
	})

	// One-shot compatibility check over an ad-hoc part set, no build needed
	app.Post("/compatibility", func(c *fiber.Ctx) error {
		var parts models.PartSet
		if err := c.BodyParser(&parts); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}

		report := engine.Evaluate(parts)
		return c.JSON(report)
	})

	app.Post("/builds", func(c *fiber.Ctx) error {
		var req CreateBuildRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}

		build, err := builds.Create(req.Name)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error creating build"})
		}
		return c.Status(201).JSON(build)
	})

	app.Get("/builds", func(c *fiber.Ctx) error {
		all, err := builds.List()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error listing builds"})
		}
		return c.JSON(all)
	})

	app.Get("/builds/:id", func(c *fiber.Ctx) error {
		build, err := builds.Get(c.Params("id"))
		if err != nil {
			return buildError(c, err)
		}
		return c.JSON(build)
	})

	app.Delete("/builds/:id", func(c *fiber.Ctx) error {
		if err := builds.Delete(c.Params("id")); err != nil {
			return buildError(c, err)
		}
		return c.SendStatus(204)
	})

	// Slot a component into a build and refresh its report
	app.Put("/builds/:id/parts/:category", func(c *fiber.Ctx) error {
		category, ok := models.ParseCategory(c.Params("category"))
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown component category"})
		}

		var component models.Component
		if err := c.BodyParser(&component); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}
		component.Category = category

		// A body carrying only a catalog URL gets hydrated from the
		// product page so the report has specification text to work with.
		if component.Name == "" && component.URL != "" {
			fetched, err := scrap.GetComponent(component.URL, category)
			if err != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Error fetching part"})
			}
			component = *fetched
		}

		build, err := builds.Update(c.Params("id"), func(b *models.Build) {
			b.Parts[category] = &component
			report := engine.Evaluate(b.Parts)
			b.Report = &report
		})
		if err != nil {
			return buildError(c, err)
		}
		return c.JSON(build)
	})

	// Clear a slot and refresh the report
	app.Delete("/builds/:id/parts/:category", func(c *fiber.Ctx) error {
		category, ok := models.ParseCategory(c.Params("category"))
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown component category"})
		}

		build, err := builds.Update(c.Params("id"), func(b *models.Build) {
			delete(b.Parts, category)
			report := engine.Evaluate(b.Parts)
			b.Report = &report
		})
		if err != nil {
			return buildError(c, err)
		}
		return c.JSON(build)
	})

	// Import a shared PCPartPicker list into a build
	app.Post("/builds/:id/import", func(c *fiber.Ctx) error {
		var req ImportRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request payload"})
		}

		parts, err := scrap.ImportList(req.URL)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error importing part list"})
		}

		build, err := builds.Update(c.Params("id"), func(b *models.Build) {
			b.Parts = parts
			report := engine.Evaluate(b.Parts)
			b.Report = &report
		})
		if err != nil {
			return buildError(c, err)
		}
		return c.JSON(build)
	})

	// Export a build to a shareable PCPartPicker list
	app.Post("/builds/:id/export", func(c *fiber.Ctx) error {
		build, err := builds.Get(c.Params("id"))
		if err != nil {
			return buildError(c, err)
		}

		listURL, err := listexport.ExportBuild(cfg.Region, build.Parts)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error exporting build"})
		}
		return c.JSON(fiber.Map{"url": listURL})
	})

	// Start the server
	log.Fatal(app.Listen(cfg.ListenAddr))
}

func buildError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrBuildNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Build not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Error accessing build"})
}
