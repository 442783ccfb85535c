package routes

import (
	"os"

	"patient-followup/constants"
	"patient-followup/controllers/encounter"
	"patient-followup/controllers/patient"
	protocolController "patient-followup/controllers/protocol"
	scheduleController "patient-followup/controllers/schedule"
	connectService "patient-followup/httpServices/connecttasks"
	messagingService "patient-followup/httpServices/messaging"
	"patient-followup/logger"
	"patient-followup/middleware"
	"patient-followup/repository"
	scheduleService "patient-followup/services/schedule"
	"patient-followup/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires the repositories, outbound clients and core services, and
// registers the HTTP surface. The returned listener and dispatcher are the two
// background loops main runs until shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB) (*scheduleService.Listener, *scheduleService.Dispatcher) {
	repo := repository.NewScheduleRepository(db)

	messagingClient := messagingService.NewMessagingClient(
		os.Getenv("MESSAGING_BASE_URL"),
		os.Getenv("ORIGINATION_NUMBER"),
		os.Getenv("FROM_EMAIL"),
	)
	connectClient := connectService.NewConnectClient(
		os.Getenv("CONNECT_BASE_URL"),
		os.Getenv("CONNECT_INSTANCE_ID"),
		os.Getenv("CONNECT_CONTACT_FLOW_ID"),
	)

	expander := scheduleService.NewExpander(repo)
	listener := scheduleService.NewListener(expander)
	dispatcher := scheduleService.NewDispatcher(repo, repo, connectClient, messagingClient, repo)
	correlator := scheduleService.NewCorrelator(repo,
		scheduleService.ResponsePolicy(os.Getenv("RESPONSE_POLICY")))

	asyncLogger := logger.NewAsyncLogger(db)
	protocolCtrl := protocolController.NewProtocolController(db, asyncLogger)
	patientCtrl := patient.NewPatientController(db, asyncLogger)
	encounterCtrl := encounter.NewEncounterController(db, asyncLogger, listener)
	scheduleCtrl := scheduleController.NewScheduleController(db, asyncLogger, correlator)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Patient follow-up service is running",
			Status:  fiber.StatusOK,
			Data:    nil,
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/sms/inbound", scheduleCtrl.InboundSMS)

	/*=============================================================================
	| Protocol Routes
	===============================================================================*/
	protocolGroup := api.Group("/protocols")

	protocolGroup.Post("/", middleware.RequirePermissions(
		constants.ProtocolAdminPermissions...,
	), protocolCtrl.Store)

	protocolGroup.Get("/", middleware.RequireAnyPermission(), protocolCtrl.Index)
	protocolGroup.Get("/:id", middleware.RequireAnyPermission(), protocolCtrl.Show)

	protocolGroup.Delete("/:id", middleware.RequirePermissions(
		constants.ProtocolAdminPermissions...,
	), protocolCtrl.Delete)

	protocolGroup.Post("/:id/events", middleware.RequirePermissions(
		constants.ProtocolAdminPermissions...,
	), protocolCtrl.StoreEvent)

	protocolGroup.Get("/:id/events", middleware.RequireAnyPermission(), protocolCtrl.ListEvents)

	protocolGroup.Delete("/:id/events/:eventId", middleware.RequirePermissions(
		constants.ProtocolAdminPermissions...,
	), protocolCtrl.DeleteEvent)

	/*=============================================================================
	| Patient Routes
	===============================================================================*/
	patientGroup := api.Group("/patients")

	patientGroup.Post("/", middleware.RequireAnyPermission(), patientCtrl.Store)
	patientGroup.Get("/:id", middleware.RequireAnyPermission(), patientCtrl.Show)

	patientGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermCareTeamFull,
	), patientCtrl.Delete)

	/*=============================================================================
	| Encounter Routes
	===============================================================================*/
	encounterGroup := api.Group("/encounters")

	encounterGroup.Post("/", middleware.RequireAnyPermission(), encounterCtrl.Store)
	encounterGroup.Get("/:id", middleware.RequireAnyPermission(), encounterCtrl.Show)

	/*=============================================================================
	| Schedule Routes
	===============================================================================*/
	scheduleGroup := api.Group("/schedule").Use(middleware.RequireAnyPermission())
	scheduleGroup.Get("/due", scheduleCtrl.Due)
	scheduleGroup.Get("/responses", scheduleCtrl.Responses)

	return listener, dispatcher
}
