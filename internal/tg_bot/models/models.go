// Package models defines the domain types shared by the clinic bot:
// per-chat sessions, booking drafts and the static catalog records.
package models

// State is the current step of the appointment dialogue for one chat.
type State string

const (
	StateIdle              State = "idle"
	StateWaitingForName    State = "waiting_for_name"
	StateWaitingForPhone   State = "waiting_for_phone"
	StateWaitingForDate    State = "waiting_for_date"
	StateWaitingForService State = "waiting_for_service"
)

// LanguageDefault is used for every chat until the user picks a language.
const LanguageDefault = "ru"

// BookingDraft accumulates appointment fields across dialogue states.
// An empty string means the field was never set.
type BookingDraft struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Date      string `json:"date,omitempty"`
	ServiceID string `json:"serviceID,omitempty"`
}

// Empty reports whether no draft field has been filled yet.
func (d BookingDraft) Empty() bool {
	return d == BookingDraft{}
}

// Session holds the conversational state of a single chat.
type Session struct {
	ChatID   int64        `json:"chatID"`   // Идентификатор чата
	Language string       `json:"language"` // Выбранный пользователем язык (ru|uz)
	State    State        `json:"state"`    // Текущий этап диалога записи
	Draft    BookingDraft `json:"draft"`    // Накопленные данные записи
}

// Service is a single catalog entry, scoped per language.
type Service struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

// Location is a geographic point of the clinic.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ContactInfo is the per-language contact record of the clinic.
type ContactInfo struct {
	Location Location `json:"location"`
	Phone    string   `json:"phone"`
}
