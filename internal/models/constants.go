package models

const (
	StatusInquiry   = "inquiry"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// BlockingStatuses occupy the calendar.
var BlockingStatuses = []string{StatusConfirmed, StatusCompleted}

const (
	SourceWeb  = "web"
	SourceAPI  = "api"
	SourceGRPC = "grpc"
)

const (
	// DefaultCurrency используется, если у юнита не указана валюта
	DefaultCurrency = "eur"

	// DefaultMaxAdvanceDays горизонт бронирования по умолчанию
	DefaultMaxAdvanceDays = 540

	// DefaultSessionTTL время жизни платёжной сессии в секундах
	DefaultSessionTTL = 30 * 60

	// DefaultEventMarkerTTL время хранения отметок обработанных вебхуков
	DefaultEventMarkerTTL = 7 * 24 * 60 * 60

	// MaxGuestsPerRequest верхняя граница размера группы
	MaxGuestsPerRequest = 64
)
