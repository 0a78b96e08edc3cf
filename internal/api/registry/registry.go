package registry

import (
	"github.com/labstack/echo/v4"

	"brandbase/internal/api/controllers"
	"brandbase/internal/api/middleware"
	"brandbase/internal/handlers"
	"brandbase/internal/models"
	"brandbase/internal/services"
	"brandbase/internal/utils/crypto"

	"gorm.io/gorm"
)

// RegisterCRUDRoutes mounts one route family per owned entity, each behind
// its tier feature gate. All CRUD goes through the shared owner-scoped
// service; only calendar, vouchers and the two singletons carry extra
// behavior.
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB) {
	// Brand profile (one per user, upsert semantics)
	brandController := controllers.NewSingletonController(
		services.NewSingletonService(db, models.BrandProfile{}), "brand")
	brandGroup := g.Group("/brand")
	brandGroup.Use(middleware.RequireFeature(models.FeatureBrand))
	brandController.RegisterRoutes(brandGroup)

	// Channels
	channelController := controllers.NewResourceController(
		services.NewOwnedService(db, models.Channel{}), "channel", "channels")
	channelController.Filters = map[string]string{"platform": "platform"}
	channelGroup := g.Group("/channels")
	channelGroup.Use(middleware.RequireFeature(models.FeatureChannels))
	channelController.RegisterRoutes(channelGroup)

	// Posts
	postController := controllers.NewResourceController(
		services.NewOwnedService(db, models.Post{}), "post", "posts")
	postController.Filters = map[string]string{
		"status":     "status",
		"channelId":  "channel_id",
		"campaignId": "campaign_id",
	}
	postGroup := g.Group("/posts")
	postGroup.Use(middleware.RequireFeature(models.FeaturePublishing))
	postController.RegisterRoutes(postGroup)

	// Campaigns
	campaignController := controllers.NewResourceController(
		services.NewOwnedService(db, models.Campaign{}), "campaign", "campaigns")
	campaignController.Filters = map[string]string{"status": "status"}
	campaignGroup := g.Group("/campaigns")
	campaignGroup.Use(middleware.RequireFeature(models.FeatureCampaigns))
	campaignController.RegisterRoutes(campaignGroup)

	// Contacts, the one entity with substring search
	contactService := services.NewOwnedService(db, models.Contact{})
	contactService.SearchColumns = []string{"name", "email"}
	contactController := controllers.NewResourceController(contactService, "contact", "contacts")
	contactController.Filters = map[string]string{"status": "status"}
	contactController.Searchable = true
	contactGroup := g.Group("/contacts")
	contactGroup.Use(middleware.RequireFeature(models.FeatureAnalytics))
	contactController.RegisterRoutes(contactGroup)

	// Contact activities, nested under contacts
	activityController := controllers.NewResourceController(
		services.NewOwnedService(db, models.ContactActivity{}), "activity", "activities")
	activityController.Filters = map[string]string{"contactId": "contact_id"}
	activityGroup := g.Group("/contacts/activities")
	activityGroup.Use(middleware.RequireFeature(models.FeatureAnalytics))
	activityController.RegisterRoutes(activityGroup)

	// Vouchers: CRUD with soft-deactivation on delete, plus send + redeem
	voucherService := services.NewVoucherService(db)
	voucherController := controllers.NewResourceController[models.Voucher](
		voucherService, "voucher", "vouchers")
	voucherController.Filters = map[string]string{"isActive": "is_active"}
	voucherGroup := g.Group("/vouchers")
	voucherGroup.Use(middleware.RequireFeature(models.FeatureCampaigns))
	voucherController.RegisterRoutes(voucherGroup)

	voucherHandler := handlers.NewVoucherHandler(db, voucherService)
	voucherGroup.POST("/send", voucherHandler.Send)
	voucherGroup.POST("/redeem", voucherHandler.Redeem)

	// Calendar: CRUD plus the month listing with special-date merge. The
	// merge handler replaces the plain List on GET.
	eventController := controllers.NewResourceController(
		services.NewOwnedService(db, models.CalendarEvent{}), "event", "events")
	calendarHandler := handlers.NewCalendarHandler(services.NewCalendarService(db))
	calendarGroup := g.Group("/calendar")
	calendarGroup.Use(middleware.RequireFeature(models.FeatureCalendar))
	calendarGroup.GET("", calendarHandler.ListMonth)
	calendarGroup.POST("", eventController.Create)
	calendarGroup.PUT("", eventController.Update)
	calendarGroup.DELETE("", eventController.Delete)

	// Growth experiments
	growthController := controllers.NewResourceController(
		services.NewOwnedService(db, models.GrowthExperiment{}), "experiment", "experiments")
	growthController.Filters = map[string]string{"status": "status"}
	growthGroup := g.Group("/growth")
	growthGroup.Use(middleware.RequireFeature(models.FeatureGrowth))
	growthController.RegisterRoutes(growthGroup)

	// AI settings (one per user). Provider API keys are encrypted before
	// they touch the database and never serialized back out.
	settingsController := controllers.NewSingletonController(
		services.NewSingletonService(db, models.AiSettings{}), "settings")
	settingsController.BeforeUpsert = func(ctx echo.Context, entity *models.AiSettings) error {
		if entity.APIKey == "" {
			return nil
		}
		encrypted, err := crypto.Encrypt(entity.APIKey)
		if err != nil {
			return err
		}
		entity.APIKey = ""
		entity.EncryptedAPIKey = encrypted
		return nil
	}
	settingsGroup := g.Group("/settings")
	settingsGroup.Use(middleware.RequireFeature(models.FeatureSettings))
	settingsController.RegisterRoutes(settingsGroup)
}
