package protocol

import (
	"strings"

	"patient-followup/logger"
	"patient-followup/middleware"
	protocolModel "patient-followup/models/protocol"
	"patient-followup/repository"
	"patient-followup/types"
	protocolTypes "patient-followup/types/protocol"
	"patient-followup/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller handles protocol and reminder-event HTTP requests
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewProtocolController creates a new protocol controller
func NewProtocolController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates a new protocol
func (pc *Controller) Store(c *fiber.Ctx) error {
	var req protocolTypes.CreateProtocolRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Name == "" || req.ExpireInDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name is required and expire_in_days must not be negative",
			Data:    nil,
		})
	}

	proto := protocolModel.Protocol{
		ID:           uuid.NewString(),
		Name:         req.Name,
		ExpireInDays: req.ExpireInDays,
		CreatedBy:    middleware.UsernameFromContext(c),
	}
	if err := pc.DB.Create(&proto).Error; err != nil {
		logger.Error("Failed to create protocol", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create protocol",
			Data:    nil,
		})
	}

	pc.Logger.Log(utils.CreateLogEntry(c))
	logger.Success("Protocol created: " + proto.ID)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Protocol created successfully",
		Data:    proto,
	})
}

// Index lists all protocols
func (pc *Controller) Index(c *fiber.Ctx) error {
	var protocols []protocolModel.Protocol
	if err := pc.DB.Find(&protocols).Error; err != nil {
		logger.Error("Failed to list protocols", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Protocols fetched successfully",
		Data:    protocols,
	})
}

// Show fetches one protocol with its reminder events
func (pc *Controller) Show(c *fiber.Ctx) error {
	id := c.Params("id")

	var proto protocolModel.Protocol
	if err := pc.DB.First(&proto, "id = ?", id).Error; err != nil {
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

	var events []protocolModel.Event
	if err := pc.DB.Where("protocol_id = ?", id).Order("created_at ASC").Find(&events).Error; err != nil {
		logger.Error("Failed to fetch protocol events", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Protocol fetched successfully",
		Data: fiber.Map{
			"protocol": proto,
			"events":   events,
		},
	})
}

// Delete removes a protocol and its reminder events
func (pc *Controller) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := pc.DB.Where("protocol_id = ?", id).Delete(&protocolModel.Event{}).Error; err != nil {
		logger.Error("Failed to delete protocol events", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	result := pc.DB.Delete(&protocolModel.Protocol{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete protocol", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Protocol not found",
			Data:    nil,
		})
	}

	pc.Logger.Log(utils.CreateLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Protocol deleted successfully",
		Data:    nil,
	})
}

// StoreEvent adds a reminder event to a protocol
func (pc *Controller) StoreEvent(c *fiber.Ctx) error {
	protocolID := c.Params("id")

	var req protocolTypes.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	eventType := protocolModel.EventType(req.Type)
	if !eventType.IsValid() {
		var names []string
		for _, et := range protocolModel.GetAllEventTypes() {
			names = append(names, et.String())
		}
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event type; expected one of " + strings.Join(names, ", "),
			Data:    nil,
		})
	}
	if req.RelativeTimeMinutes < 0 || req.RecurringFrequencyDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Offsets must not be negative",
			Data:    nil,
		})
	}

	var proto protocolModel.Protocol
	if err := pc.DB.First(&proto, "id = ?", protocolID).Error; err != nil {
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

	event := protocolModel.Event{
		ID:                     uuid.NewString(),
		ProtocolID:             proto.ID,
		Type:                   eventType,
		Content:                req.Content,
		RelativeTimeMinutes:    req.RelativeTimeMinutes,
		RecurringFrequencyDays: req.RecurringFrequencyDays,
		Recurring:              req.RecurringFrequencyDays > 0,
	}
	if err := pc.DB.Create(&event).Error; err != nil {
		logger.Error("Failed to create event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create event",
			Data:    nil,
		})
	}

	pc.Logger.Log(utils.CreateLogEntry(c))
	logger.Success("Event created: " + event.ID + " on protocol " + proto.ID)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Event created successfully",
		Data:    event,
	})
}

// ListEvents lists the reminder events of a protocol
func (pc *Controller) ListEvents(c *fiber.Ctx) error {
	protocolID := c.Params("id")

	var events []protocolModel.Event
	if err := pc.DB.Where("protocol_id = ?", protocolID).Order("created_at ASC").Find(&events).Error; err != nil {
		logger.Error("Failed to fetch events", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Events fetched successfully",
		Data:    events,
	})
}

// DeleteEvent removes one reminder event
func (pc *Controller) DeleteEvent(c *fiber.Ctx) error {
	protocolID := c.Params("id")
	eventID := c.Params("eventId")

	result := pc.DB.Delete(&protocolModel.Event{}, "id = ? AND protocol_id = ?", eventID, protocolID)
	if result.Error != nil {
		logger.Error("Failed to delete event", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Event not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event deleted successfully",
		Data:    nil,
	})
}
