package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/services/qr"
	"upitrack/internal/utils"
)

type QRHandler struct {
	repo      repositories.Repository
	qrService *qr.Service
	validate  *validator.Validate
}

func NewQRHandler(repo repositories.Repository, qrService *qr.Service) *QRHandler {
	return &QRHandler{
		repo:      repo,
		qrService: qrService,
		validate:  validator.New(),
	}
}

// CreateQrCode builds the UPI link, renders the QR image and persists the
// result. The stored row carries the rendered data URL in qrData.
func (h *QRHandler) CreateQrCode(c *fiber.Ctx) error {
	var input models.CreateQrCodeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if failed, err := validationFailed(c, h.validate, &input); failed {
		return err
	}

	generated, err := h.qrService.Generate(qr.Options{
		UpiID:       input.UpiID,
		Name:        input.Name,
		Amount:      input.Amount,
		Description: input.Description,
		Size:        input.Size,
		BorderStyle: input.BorderStyle,
	})
	if err != nil {
		log.Printf("QR generation failed: %v", err)
		return utils.InternalError(c, "failed to generate QR code")
	}

	qrCode := &models.QrCode{
		UserID:      input.UserID,
		UpiID:       input.UpiID,
		Name:        input.Name,
		Description: input.Description,
		Size:        generated.Size,
		BorderStyle: generated.BorderStyle,
		QrData:      generated.Data,
	}
	if input.Amount != "" {
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return utils.BadRequest(c, "invalid amount")
		}
		qrCode.Amount = &amount
	}

	created, err := h.repo.CreateQrCode(qrCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.BadRequest(c, "user not found")
		}
		log.Printf("QR code persist failed: %v", err)
		return utils.InternalError(c, "failed to create QR code")
	}
	return utils.Created(c, created)
}

func (h *QRHandler) GetQrCode(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.NotFound(c, "QR code not found")
	}

	qrCode, err := h.repo.GetQrCode(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c, "QR code not found")
		}
		return utils.InternalError(c, "internal server error")
	}
	return utils.Success(c, qrCode)
}

// GetUserQrCodes lists a user's QR codes newest-first.
func (h *QRHandler) GetUserQrCodes(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	qrCodes, err := h.repo.GetQrCodesByUserID(userID)
	if err != nil {
		log.Printf("listing QR codes for user %d failed: %v", userID, err)
		return utils.InternalError(c, "failed to fetch QR codes")
	}
	return utils.Success(c, qrCodes)
}

// DeleteQrCode cascades: the QR code's transactions go first, then the row
// itself.
func (h *QRHandler) DeleteQrCode(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.NotFound(c, "QR code not found")
	}

	deleted, err := h.repo.DeleteQrCode(id)
	if err != nil {
		log.Printf("QR code delete failed: %v", err)
		return utils.InternalError(c, "failed to delete QR code")
	}
	if !deleted {
		return utils.NotFound(c, "QR code not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
