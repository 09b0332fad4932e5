package routes

import (
	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/api/handlers"
	"github.com/Denyusha/Food-Donation-updated/internal/middleware"
	"github.com/Denyusha/Food-Donation-updated/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	MatchingHandler     handlers.MatchingHandler
	VolunteerHandler    handlers.VolunteerHandler
	NotificationHandler handlers.NotificationHandler
	AdminHandler        handlers.AdminHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.Matching()
	c.Volunteers()
	c.Notifications()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/leaderboard", c.UserHandler.GetLeaderboard)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Donations() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	donations := c.App.Group("/api/v1/donations", auth)
	{
		donations.Post("", c.Middleware.OnlyRoles(domain.RoleDonor, domain.RoleReceiver, domain.RoleAdmin), c.DonationHandler.CreateDonation)
		donations.Get("", c.DonationHandler.ListDonations)
		donations.Get("/mine", c.DonationHandler.GetMyDonations)
		donations.Get("/statistics", c.DonationHandler.GetDonationStatistics)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Patch("/:id", c.DonationHandler.UpdateDonation)
		donations.Post("/:id/image", c.DonationHandler.UploadDonationImage)
		donations.Post("/:id/accept", c.Middleware.OnlyRoles(domain.RoleReceiver, domain.RoleAdmin), c.DonationHandler.AcceptDonation)
		donations.Post("/:id/complete", c.DonationHandler.CompleteDonation)
		donations.Post("/:id/cancel", c.DonationHandler.CancelDonation)
		donations.Post("/:id/feedback", c.Middleware.OnlyRoles(domain.RoleReceiver, domain.RoleAdmin), c.DonationHandler.SubmitFeedback)
		donations.Get("/:id/tracking", c.DonationHandler.GetTracking)
	}
}

func (c *Config) Matching() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	matching := c.App.Group("/api/v1/matching", auth)
	{
		matching.Get("/donations", c.Middleware.OnlyRoles(domain.RoleReceiver, domain.RoleAdmin), c.MatchingHandler.GetMatches)
		matching.Get("/pickups", c.Middleware.OnlyRoles(domain.RoleVolunteer, domain.RoleAdmin), c.MatchingHandler.GetAvailablePickups)
	}
}

func (c *Config) Volunteers() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	onlyVolunteer := c.Middleware.OnlyRoles(domain.RoleVolunteer, domain.RoleAdmin)
	volunteers := c.App.Group("/api/v1/volunteers", auth, onlyVolunteer)
	{
		volunteers.Post("/donations/:id/claim", c.VolunteerHandler.ClaimDonation)
		volunteers.Get("/assignments", c.VolunteerHandler.GetMyAssignments)
		volunteers.Post("/donations/:id/location", c.VolunteerHandler.UpdateLocation)
	}
}

func (c *Config) Notifications() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	notifications := c.App.Group("/api/v1/notifications", auth)
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Get("/unread-count", c.NotificationHandler.GetUnreadCount)
		notifications.Post("/:id/read", c.NotificationHandler.MarkAsRead)
		notifications.Post("/read-all", c.NotificationHandler.MarkAllAsRead)
	}
}

func (c *Config) Admin() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	onlyAdmin := c.Middleware.OnlyRoles(domain.RoleAdmin)
	admin := c.App.Group("/api/v1/admin", auth, onlyAdmin)
	{
		admin.Patch("/donations/:id", c.AdminHandler.PatchDonation)
		admin.Get("/users", c.AdminHandler.ListUsers)
		admin.Patch("/users/:id/active", c.AdminHandler.SetUserActive)
		admin.Post("/users/:id/verify", c.AdminHandler.VerifyUser)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
