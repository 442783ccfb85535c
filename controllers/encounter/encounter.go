package encounter

import (
	"time"

	"patient-followup/logger"
	"patient-followup/middleware"
	encounterModel "patient-followup/models/encounter"
	patientModel "patient-followup/models/patient"
	protocolModel "patient-followup/models/protocol"
	"patient-followup/repository"
	scheduleService "patient-followup/services/schedule"
	"patient-followup/types"
	encounterTypes "patient-followup/types/encounter"
	"patient-followup/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller handles encounter HTTP requests. Creating an encounter is what
// feeds the expansion engine: after the row is persisted the listener is
// notified exactly as a store-stream insert event would.
type Controller struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Listener *scheduleService.Listener
}

// NewEncounterController creates a new encounter controller
func NewEncounterController(db *gorm.DB, asyncLogger *logger.AsyncLogger, listener *scheduleService.Listener) *Controller {
	return &Controller{
		DB:       db,
		Logger:   asyncLogger,
		Listener: listener,
	}
}

// Store records a new encounter and triggers schedule expansion
func (ec *Controller) Store(c *fiber.Ctx) error {
	var req encounterTypes.CreateEncounterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	startedOn := time.Now()
	if req.StartedOn != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartedOn)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "started_on must be RFC3339",
				Data:    nil,
			})
		}
		startedOn = parsed
	}

	var proto protocolModel.Protocol
	if err := ec.DB.First(&proto, "id = ?", req.ProtocolID).Error; err != nil {
		if repository.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Protocol not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find protocol", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var pat patientModel.Patient
	if err := ec.DB.First(&pat, "id = ?", req.PatientID).Error; err != nil {
		if repository.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Patient not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find patient", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	enc := encounterModel.Encounter{
		ID:         uuid.NewString(),
		ProtocolID: proto.ID,
		PatientID:  pat.ID,
		StartedOn:  startedOn,
		CreatedBy:  middleware.UsernameFromContext(c),
	}
	if err := ec.DB.Create(&enc).Error; err != nil {
		logger.Error("Failed to create encounter", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create encounter",
			Data:    nil,
		})
	}

	ec.Listener.Notify(scheduleService.EncounterCreated{
		EncounterID: enc.ID,
		ProtocolID:  enc.ProtocolID,
		PatientID:   enc.PatientID,
		StartedOn:   enc.StartedOn,
	})

	ec.Logger.Log(utils.CreateLogEntry(c))
	logger.Success("Encounter created: " + enc.ID)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Encounter created successfully",
		Data:    enc,
	})
}

// Show fetches one encounter
func (ec *Controller) Show(c *fiber.Ctx) error {
	id := c.Params("id")

	var enc encounterModel.Encounter
	if err := ec.DB.First(&enc, "id = ?", id).Error; err != nil {
		if repository.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Encounter not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find encounter", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Encounter fetched successfully",
		Data:    enc,
	})
}
