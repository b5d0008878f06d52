package models

// Request bodies for the REST API. Validation rules live in the struct tags
// and are enforced by the handlers before anything touches the repository.

type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	UpiID    string `json:"upiId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateQrCodeInput struct {
	UserID      uint   `json:"userId" validate:"required"`
	UpiID       string `json:"upiId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Size        string `json:"size"`
	BorderStyle string `json:"borderStyle"`
}

type CreateTransactionInput struct {
	QrCodeID   uint                   `json:"qrCodeId" validate:"required"`
	Amount     string                 `json:"amount" validate:"required"`
	PayerName  string                 `json:"payerName"`
	PayerUpiID string                 `json:"payerUpiId"`
	Status     string                 `json:"status"`
	Metadata   map[string]interface{} `json:"metadata"`
}
