package models

// Роли пользователей
const (
	RoleVolunteer = "VOLUNTEER"
	RoleAdmin     = "ADMIN"
)

// EventStatus константы статусов событий
const (
	EventStatusPendingApproval = "PENDING_APPROVAL"
	EventStatusApproved        = "APPROVED"
	EventStatusCompleted       = "COMPLETED"
	EventStatusCancelled       = "CANCELLED"
)

// ReportType константы типов жалоб
const (
	ReportTypeEvent = "EVENT"
	ReportTypeUser  = "USER"
)

// TicketStatus константы статусов тикетов модерации
const (
	TicketStatusPending    = "PENDING"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusResolved   = "RESOLVED"
	TicketStatusRejected   = "REJECTED"
)

// Идентификаторы бейджей каталога
const (
	BadgeJoin10  = "JOIN_10"
	BadgeCreate3 = "CREATE_3"
)

// ValidEventStatuses список валидных статусов событий
var ValidEventStatuses = map[string]bool{
	EventStatusPendingApproval: true,
	EventStatusApproved:        true,
	EventStatusCompleted:       true,
	EventStatusCancelled:       true,
}

// ValidTicketStatuses список валидных статусов тикетов
var ValidTicketStatuses = map[string]bool{
	TicketStatusPending:    true,
	TicketStatusInProgress: true,
	TicketStatusResolved:   true,
	TicketStatusRejected:   true,
}

// ValidReportTypes список валидных типов жалоб
var ValidReportTypes = map[string]bool{
	ReportTypeEvent: true,
	ReportTypeUser:  true,
}
