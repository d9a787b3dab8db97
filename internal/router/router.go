package router

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/tournest-backend/internal/config"
	"github.com/sefazor/tournest-backend/internal/handler"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	jwtPkg "github.com/sefazor/tournest-backend/pkg/jwt"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Package     *handler.PackageHandler
	Application *handler.ApplicationHandler
	Booking     *handler.BookingHandler
	Payment     *handler.PaymentHandler
	Story       *handler.StoryHandler
	Stats       *handler.StatsHandler
}

// NewApp builds the fiber app with the global middleware stack. RateLimitMax <= 0 disables the
// limiter.
func NewApp(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "TourNest",
		BodyLimit:    20 << 20,
		ErrorHandler: ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods: "GET, POST, PATCH, PUT, DELETE",
	}))
	if !strings.EqualFold(cfg.Env, "test") {
		app.Use(logger.New())
	}
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests"))
			},
		}))
	}

	return app
}

// ErrorHandler renders uncaught errors in the response envelope. Non-fiber errors are logged and
// reported as 500 without their text.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.ErrorResponse(fe.Message))
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
	}
}

func Setup(app *fiber.App, h Handlers, jwtManager *jwtPkg.Manager) {
	auth := middleware.AuthMiddleware(jwtManager)
	adminOnly := middleware.AdminOnly()
	touristOnly := middleware.TouristOnly()
	guideOnly := middleware.TourGuideOnly()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("TourNest server is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(fiber.Map{"status": "ok"}, ""))
	})

	app.Post("/jwt", h.Auth.IssueToken)

	users := app.Group("/users")
	users.Post("/", h.User.Login)
	users.Get("/", auth, adminOnly, h.User.List)
	users.Get("/profile", auth, h.User.GetMyProfile)
	users.Get("/tour-guide", h.User.ListGuides)
	users.Get("/tour-guide/:id", h.User.GetGuide)
	users.Patch("/guide-info", auth, guideOnly, h.User.UpdateGuideInfo)
	users.Get("/:email/role", h.User.GetRole)

	packages := app.Group("/packages")
	packages.Get("/", h.Package.GetAllPackages)
	packages.Get("/random", h.Package.GetRandomPackages)
	packages.Get("/:id", h.Package.GetPackageByID)
	packages.Post("/", auth, adminOnly, h.Package.CreatePackage)

	applications := app.Group("/applications", auth)
	applications.Get("/", adminOnly, h.Application.List)
	applications.Post("/", touristOnly, h.Application.Apply)
	applications.Patch("/", adminOnly, h.Application.Approve)
	applications.Delete("/:id", adminOnly, h.Application.Reject)

	bookings := app.Group("/bookings", auth)
	bookings.Get("/", h.Booking.ListMine)
	bookings.Post("/", h.Booking.Create)
	bookings.Get("/tourGuide/assigned", guideOnly, h.Booking.ListAssigned)
	bookings.Get("/:id/qrcode", h.Booking.QRCode)
	bookings.Get("/:id", h.Booking.Get)
	bookings.Patch("/:id", h.Booking.UpdateStatus)

	app.Post("/create-payment-intent", auth, h.Payment.CreatePaymentIntent)
	app.Post("/payments/webhook", h.Payment.HandleStripeWebhook)
	app.Post("/payments", auth, h.Payment.CreatePayment)
	app.Get("/payments", auth, h.Payment.GetPaymentHistory)

	stories := app.Group("/stories")
	stories.Get("/", h.Story.List)
	stories.Get("/random", h.Story.Random)
	stories.Get("/:id", h.Story.Get)
	stories.Post("/", auth, h.Story.Create)
	stories.Post("/images", auth, h.Story.UploadImages)
	stories.Patch("/:id", auth, h.Story.Update)
	stories.Delete("/:id", auth, h.Story.Delete)

	app.Get("/admin/stats", auth, adminOnly, h.Stats.AdminStats)
	app.Get("/tourist/stats", auth, touristOnly, h.Stats.TouristStats)
	app.Get("/tourGuide/stats", auth, guideOnly, h.Stats.TourGuideStats)
}
