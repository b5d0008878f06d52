package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/services/auth"
	"upitrack/internal/services/qr"
	"upitrack/internal/utils"
)

// DemoHandler seeds a fixed demo account for development. User creation is
// idempotent on the "demo" username; QR codes and transactions are appended
// on every call, matching the dashboard's demo-data button.
type DemoHandler struct {
	repo        repositories.Repository
	authService auth.Service
	qrService   *qr.Service
}

func NewDemoHandler(repo repositories.Repository, authService auth.Service, qrService *qr.Service) *DemoHandler {
	return &DemoHandler{
		repo:        repo,
		authService: authService,
		qrService:   qrService,
	}
}

type demoQr struct {
	name        string
	amount      string
	description string
	size        string
	borderStyle string
}

type demoTx struct {
	qrIndex    int
	amount     string
	payerName  string
	payerUpiID string
}

var demoQrCodes = []demoQr{
	{name: "Grocery Store QR", amount: "0", description: "Payments for groceries", size: "medium", borderStyle: "simple"},
	{name: "Restaurant QR", amount: "0", description: "Payments for restaurant", size: "medium", borderStyle: "rounded"},
	{name: "Website QR", amount: "1000", description: "Donations for website", size: "large", borderStyle: "fancy"},
}

var demoTransactions = []demoTx{
	{qrIndex: 0, amount: "1250", payerName: "Amit Kumar", payerUpiID: "amit@okaxis"},
	{qrIndex: 1, amount: "850", payerName: "Preeti Singh", payerUpiID: "preeti@okhdfcbank"},
	{qrIndex: 2, amount: "2000", payerName: "Vikram Patel", payerUpiID: "vikram@oksbi"},
	{qrIndex: 0, amount: "500", payerName: "Neha Gupta", payerUpiID: "neha@okpnb"},
	{qrIndex: 1, amount: "1800", payerName: "Rajesh Khanna", payerUpiID: "rajesh@okicici"},
}

func (h *DemoHandler) Seed(c *fiber.Ctx) error {
	user, err := h.repo.GetUserByUsername("demo")
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return utils.InternalError(c, "failed to seed demo data")
		}
		user, err = h.authService.Register(&models.CreateUserInput{
			Username: "demo",
			Password: "password",
			UpiID:    "demo@okicici",
			Email:    "demo@example.com",
			FullName: "Demo User",
		})
		if err != nil {
			log.Printf("demo user creation failed: %v", err)
			return utils.InternalError(c, "failed to seed demo data")
		}
	}

	upiID := user.UpiID
	if upiID == "" {
		upiID = "demo@okicici"
	}

	created := make([]*models.QrCode, 0, len(demoQrCodes))
	for _, d := range demoQrCodes {
		generated, err := h.qrService.Generate(qr.Options{
			UpiID:       upiID,
			Name:        d.name,
			Amount:      qrSeedAmount(d.amount),
			Description: d.description,
			Size:        d.size,
			BorderStyle: d.borderStyle,
		})
		if err != nil {
			log.Printf("demo QR generation failed: %v", err)
			return utils.InternalError(c, "failed to seed demo data")
		}
		amount, _ := decimal.NewFromString(d.amount)
		qrCode, err := h.repo.CreateQrCode(&models.QrCode{
			UserID:      user.ID,
			UpiID:       upiID,
			Name:        d.name,
			Amount:      &amount,
			Description: d.description,
			Size:        generated.Size,
			BorderStyle: generated.BorderStyle,
			QrData:      generated.Data,
		})
		if err != nil {
			log.Printf("demo QR persist failed: %v", err)
			return utils.InternalError(c, "failed to seed demo data")
		}
		created = append(created, qrCode)
	}

	for _, d := range demoTransactions {
		amount, _ := decimal.NewFromString(d.amount)
		_, err := h.repo.CreateTransaction(&models.Transaction{
			QrCodeID:   created[d.qrIndex].ID,
			Amount:     amount,
			PayerName:  d.payerName,
			PayerUpiID: d.payerUpiID,
			Status:     models.TransactionStatusCompleted,
			Reference:  uuid.NewString(),
			Metadata:   models.JSON{},
		})
		if err != nil {
			log.Printf("demo transaction persist failed: %v", err)
			return utils.InternalError(c, "failed to seed demo data")
		}
	}

	return utils.Created(c, fiber.Map{"message": "Demo data created successfully"})
}

// qrSeedAmount keeps zero amounts out of the encoded link; a scanned demo QR
// with am=0 would be rejected by payer apps.
func qrSeedAmount(amount string) string {
	if amount == "" || amount == "0" {
		return ""
	}
	return amount
}
