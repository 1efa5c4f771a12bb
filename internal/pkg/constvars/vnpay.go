package constvars

const (
	VNPayVersion       = "2.1.0"
	VNPayCommandPay    = "pay"
	VNPayCurrencyVND   = "VND"
	VNPayOrderType     = "other"
	VNPayDefaultLocale = "vn"
	VNPayDateLayout    = "20060102150405"
	VNPayTimezone      = "Asia/Ho_Chi_Minh"
	VNPayAmountFactor  = 100
)

// VNPayAttemptRefSeparator precedes the attempt reference in vnp_OrderInfo
const VNPayAttemptRefSeparator = " ref "

const (
	VNPayParamVersion           = "vnp_Version"
	VNPayParamCommand           = "vnp_Command"
	VNPayParamTmnCode           = "vnp_TmnCode"
	VNPayParamAmount            = "vnp_Amount"
	VNPayParamBankCode          = "vnp_BankCode"
	VNPayParamCreateDate        = "vnp_CreateDate"
	VNPayParamExpireDate        = "vnp_ExpireDate"
	VNPayParamCurrCode          = "vnp_CurrCode"
	VNPayParamIPAddr            = "vnp_IpAddr"
	VNPayParamLocale            = "vnp_Locale"
	VNPayParamOrderInfo         = "vnp_OrderInfo"
	VNPayParamOrderType         = "vnp_OrderType"
	VNPayParamReturnURL         = "vnp_ReturnUrl"
	VNPayParamTxnRef            = "vnp_TxnRef"
	VNPayParamSecureHash        = "vnp_SecureHash"
	VNPayParamSecureHashType    = "vnp_SecureHashType"
	VNPayParamResponseCode      = "vnp_ResponseCode"
	VNPayParamTransactionNo     = "vnp_TransactionNo"
	VNPayParamTransactionStatus = "vnp_TransactionStatus"
	VNPayParamPayDate           = "vnp_PayDate"
	VNPayParamBankTranNo        = "vnp_BankTranNo"
	VNPayParamPrefix            = "vnp_"
)

// VNPay IPN response codes
const (
	VNPayRspCodeSuccess = "00"
	VNPayRspCodeFailure = "99"

	VNPayResponseCodeSuccess = "00"
)

// Redirect query params sent to the frontend after the browser callback
const (
	PaymentResultPath            = "/payment/result"
	PaymentResultSuccessParam    = "success"
	PaymentResultAppointmentID   = "appointmentId"
	PaymentResultMessageParam    = "message"
	PaymentReceiptObjectFormat   = "receipts/%s/%s.json"
	PaymentOrderInfoFormat       = "Thanh toan lich hen %s"
	PaymentSecurityEventBadHash  = "payment_callback_invalid_signature"
	PaymentSecurityEventMismatch = "payment_callback_amount_mismatch"
	PaymentBusinessEventPaid     = "payment_paid"
	PaymentBusinessEventFailed   = "payment_failed"
	PaymentBusinessEventExpired  = "payment_expired"
	PaymentBusinessEventReplayed = "payment_callback_replayed"
	PaymentBusinessEventStale    = "payment_callback_stale_attempt"
)
