package patient

import (
	"patient-followup/logger"
	patientModel "patient-followup/models/patient"
	"patient-followup/repository"
	"patient-followup/types"
	patientTypes "patient-followup/types/patient"
	"patient-followup/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller handles patient HTTP requests
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewPatientController creates a new patient controller
func NewPatientController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store registers a new patient
func (pc *Controller) Store(c *fiber.Ctx) error {
	var req patientTypes.CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if req.Name == "" || req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name and phone number are required",
			Data:    nil,
		})
	}

	pat := patientModel.Patient{
		ID:          uuid.NewString(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		EmailID:     req.EmailID,
	}
	if err := pc.DB.Create(&pat).Error; err != nil {
		logger.Error("Failed to create patient", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create patient",
			Data:    nil,
		})
	}

	pc.Logger.Log(utils.CreateLogEntry(c))
	logger.Success("Patient registered: " + pat.ID)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Patient created successfully",
		Data:    pat,
	})
}

// Show fetches one patient
func (pc *Controller) Show(c *fiber.Ctx) error {
	id := c.Params("id")

	var pat patientModel.Patient
	if err := pc.DB.First(&pat, "id = ?", id).Error; err != nil {
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

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Patient fetched successfully",
		Data:    pat,
	})
}

// Delete removes one patient
func (pc *Controller) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	result := pc.DB.Delete(&patientModel.Patient{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete patient", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Patient not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Patient deleted successfully",
		Data:    nil,
	})
}
