package schedule

import (
	"time"

	"patient-followup/logger"
	scheduleModel "patient-followup/models/schedule"
	scheduleService "patient-followup/services/schedule"
	"patient-followup/types"
	scheduleTypes "patient-followup/types/schedule"
	"patient-followup/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles the inbound-SMS webhook and operator schedule queries
type Controller struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	Correlator *scheduleService.Correlator
}

// NewScheduleController creates a new schedule controller
func NewScheduleController(db *gorm.DB, asyncLogger *logger.AsyncLogger, correlator *scheduleService.Correlator) *Controller {
	return &Controller{
		DB:         db,
		Logger:     asyncLogger,
		Correlator: correlator,
	}
}

// InboundSMS receives one inbound-reply notification from the SMS provider.
// The provider retries on non-2xx, so correlation failures are acknowledged
// anyway and surface in logs only.
func (sc *Controller) InboundSMS(c *fiber.Ctx) error {
	var req scheduleTypes.InboundSMSRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse inbound SMS payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	err := sc.Correlator.HandleInbound(c.Context(), scheduleService.InboundSMS{
		OriginationNumber: req.OriginationNumber,
		MessageBody:       req.MessageBody,
		InboundMessageID:  req.InboundMessageID,
	})
	if err != nil {
		logger.Error("Failed to correlate inbound SMS from "+req.OriginationNumber, err)
	}

	sc.Logger.Log(utils.CreateLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Inbound SMS processed",
		Data:    nil,
	})
}

// Due lists the schedule items in one minute bucket; defaults to the current
// minute. Operator visibility only.
func (sc *Controller) Due(c *fiber.Ctx) error {
	bucket := c.Query("bucket")
	if bucket == "" {
		bucket = utils.BucketKey(time.Now())
	} else if _, err := utils.ParseBucketKey(bucket); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "bucket must look like 2006/01/02-15:04",
			Data:    nil,
		})
	}

	var items []scheduleModel.CurrentScheduleItem
	if err := sc.DB.Where("bucket_key = ?", bucket).Find(&items).Error; err != nil {
		logger.Error("Failed to fetch schedule items", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Schedule items fetched successfully",
		Data: fiber.Map{
			"bucket": bucket,
			"items":  items,
		},
	})
}

// Responses lists confirmation records for one phone number, most recent
// first.
func (sc *Controller) Responses(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "phone query parameter is required",
			Data:    nil,
		})
	}

	var responses []scheduleModel.EventResponse
	if err := sc.DB.Where("phone_number = ?", phone).Order("created_at DESC").Find(&responses).Error; err != nil {
		logger.Error("Failed to fetch event responses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event responses fetched successfully",
		Data:    responses,
	})
}
