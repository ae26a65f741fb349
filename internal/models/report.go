package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportTicket описывает жалобу пользователя на событие или на другого
// пользователя. Ровно одна из ссылок ReportedEvent/ReportedUser должна быть
// заполнена; инвариант проверяется до записи в хранилище.
type ReportTicket struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ReporterID    uuid.UUID  `db:"reporter_id" json:"reporter_id"`
	ReportType    string     `db:"report_type" json:"report_type"`
	ReportedEvent *uuid.UUID `db:"reported_event_id" json:"reported_event,omitempty"`
	ReportedUser  *uuid.UUID `db:"reported_user_id" json:"reported_user,omitempty"`
	Reason        string     `db:"reason" json:"reason"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
