package models

import (
	"medibook-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodVNPay PaymentMethod = "VNPAY"
)

// CanRetry reports whether a new gateway attempt may re-arm this payment.
func (s PaymentStatus) CanRetry() bool {
	return s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// One payment row per appointment. The gateway transaction reference is the
// appointment id; AttemptRef tells apart the attempts made on the same row.
type Payment struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	AppointmentID string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"appointmentId"`
	PatientID     string        `gorm:"type:varchar(36);not null;index" json:"patientId"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Method        PaymentMethod `gorm:"type:varchar(16);not null" json:"method"`
	Status        PaymentStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	TransactionID string        `gorm:"type:varchar(64)" json:"transactionId,omitempty"`
	BankCode      string        `gorm:"type:varchar(32)" json:"bankCode,omitempty"`
	ResponseCode  string        `gorm:"type:varchar(8)" json:"responseCode,omitempty"`
	PaymentURL    string        `gorm:"type:text" json:"paymentUrl,omitempty"`
	AttemptRef    string        `gorm:"type:varchar(32)" json:"-"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// GatewayPaymentRequest carries what the gateway needs to build a pay URL.
// AttemptRef is signed into the order info and echoed back on callbacks.
type GatewayPaymentRequest struct {
	TxnRef     string
	AttemptRef string
	Amount     int64
	OrderInfo  string
	IPAddr     string
	BankCode   string
	Locale     string
	ReturnURL  string
	CreatedAt  time.Time
}

// GatewayCallback is a verified gateway notification. GatewayAmount is
// vnp_Amount as sent, in hundredths of a dong.
type GatewayCallback struct {
	TxnRef            string
	AttemptRef        string
	GatewayAmount     int64
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	PayDate           string
	Raw               map[string]string
}

// MatchesAmount compares the signed amount with a payment amount in dong
// without dropping the gateway's fractional digits.
func (c *GatewayCallback) MatchesAmount(amount int64) bool {
	return c.GatewayAmount == amount*constvars.VNPayAmountFactor
}

// Succeeded requires a success response code and, when sent, a success
// transaction status.
func (c *GatewayCallback) Succeeded() bool {
	if c.ResponseCode != constvars.VNPayResponseCodeSuccess {
		return false
	}
	return c.TransactionStatus == "" || c.TransactionStatus == constvars.VNPayResponseCodeSuccess
}
