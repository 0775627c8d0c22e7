package payments

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
)

type PixRequest struct {
	Amount            decimal.Decimal
	Description       string
	PayerEmail        string
	ExternalReference string
}

// PixCharge carries what the client needs to pay: copy-paste code and QR.
type PixCharge struct {
	PaymentID    int             `json:"payment_id"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	QRCode       string          `json:"qr_code"`
	QRCodeBase64 string          `json:"qr_code_base64"`
	TicketURL    string          `json:"ticket_url"`
}

type PixCharger interface {
	CreatePix(ctx context.Context, req PixRequest) (*PixCharge, error)
}

// ===============================
// Mercado Pago
// ===============================

// o Mercado Pago exige e-mail do pagador mesmo para pix
const fallbackPayerEmail = "cliente@barberqueue.app"

type MercadoPago struct {
	client payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: payment.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreatePix(ctx context.Context, req PixRequest) (*PixCharge, error) {
	email := req.PayerEmail
	if email == "" {
		email = fallbackPayerEmail
	}

	amount, _ := req.Amount.Float64()
	res, err := m.client.Create(ctx, payment.Request{
		TransactionAmount: amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		Payer: &payment.PayerRequest{
			Email: email,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create pix: %w", err)
	}

	td := res.PointOfInteraction.TransactionData
	return &PixCharge{
		PaymentID:    res.ID,
		Status:       res.Status,
		Amount:       req.Amount,
		QRCode:       td.QRCode,
		QRCodeBase64: td.QRCodeBase64,
		TicketURL:    td.TicketURL,
	}, nil
}

var _ PixCharger = (*MercadoPago)(nil)
