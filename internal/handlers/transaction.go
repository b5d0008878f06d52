package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/utils"
)

// PaymentPublisher emits payment-received events to the broker. Nil-checked
// by the handler so the server runs without one.
type PaymentPublisher interface {
	PublishPaymentReceived(event map[string]interface{}) error
}

type TransactionHandler struct {
	repo      repositories.Repository
	publisher PaymentPublisher
	validate  *validator.Validate
}

func NewTransactionHandler(repo repositories.Repository, publisher PaymentPublisher) *TransactionHandler {
	return &TransactionHandler{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// CreateTransaction records a payment against a QR code and refreshes the
// owner's stats. Publishing the broker event is fire-and-forget.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var input models.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if failed, err := validationFailed(c, h.validate, &input); failed {
		return err
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "invalid amount")
	}

	tx := &models.Transaction{
		QrCodeID:   input.QrCodeID,
		Amount:     amount,
		PayerName:  input.PayerName,
		PayerUpiID: input.PayerUpiID,
		Status:     input.Status,
		Reference:  uuid.NewString(),
		Metadata:   models.JSON(input.Metadata),
	}

	created, err := h.repo.CreateTransaction(tx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.BadRequest(c, "QR code not found")
		}
		log.Printf("transaction persist failed: %v", err)
		return utils.InternalError(c, "failed to record transaction")
	}

	if h.publisher != nil {
		event := map[string]interface{}{
			"transactionId": created.ID,
			"reference":     created.Reference,
			"qrCodeId":      created.QrCodeID,
			"amount":        created.Amount.String(),
			"payerUpiId":    created.PayerUpiID,
			"timestamp":     created.Timestamp,
		}
		if err := h.publisher.PublishPaymentReceived(event); err != nil {
			log.Printf("payment event publish failed for transaction %d: %v", created.ID, err)
		}
	}

	return utils.Created(c, created)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.NotFound(c, "transaction not found")
	}

	tx, err := h.repo.GetTransaction(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c, "transaction not found")
		}
		return utils.InternalError(c, "internal server error")
	}
	return utils.Success(c, tx)
}

func (h *TransactionHandler) GetQrCodeTransactions(c *fiber.Ctx) error {
	qrCodeID, err := parseIDParam(c, "qrCodeId")
	if err != nil {
		return utils.NotFound(c, "QR code not found")
	}

	txs, err := h.repo.GetTransactionsByQrCodeID(qrCodeID)
	if err != nil {
		log.Printf("listing transactions for QR code %d failed: %v", qrCodeID, err)
		return utils.InternalError(c, "failed to fetch transactions")
	}
	return utils.Success(c, txs)
}

// GetUserTransactions merges transactions across all of the user's QR codes,
// newest-first.
func (h *TransactionHandler) GetUserTransactions(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	txs, err := h.repo.GetTransactionsByUserID(userID)
	if err != nil {
		log.Printf("listing transactions for user %d failed: %v", userID, err)
		return utils.InternalError(c, "failed to fetch transactions")
	}
	return utils.Success(c, txs)
}
