// Package notify delivers completed-booking summaries to the operator chat.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/constant"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
)

// Sender is the minimal Telegram surface the dispatcher needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// FormatBooking renders the fixed operator-facing summary of a completed
// draft. Missing fields are expected to be substituted by the caller
// before formatting.
func FormatBooking(draft models.BookingDraft, service models.Service) string {
	return fmt.Sprintf(
		"%s Новая запись!\n\n%s Имя: %s\n%s Телефон: %s\n%s Дата: %s\n%s Услуга: %s",
		constant.EMOJI_MEMO,
		constant.EMOJI_PERSON, draft.Name,
		constant.EMOJI_PHONE, draft.Phone,
		constant.EMOJI_CALENDAR, draft.Date,
		constant.EMOJI_HOSPITAL, service.Name,
	)
}

// Dispatcher sends booking summaries to one configured operator chat.
// A zero chat ID disables delivery entirely.
type Dispatcher struct {
	tg          Sender
	adminChatID int64
}

// NewDispatcher creates a dispatcher for the given operator chat ID.
func NewDispatcher(tg Sender, adminChatID int64) *Dispatcher {
	if adminChatID == 0 {
		logrus.Warn("ADMIN_CHAT_ID is not configured, operator notifications are disabled")
	}
	return &Dispatcher{tg: tg, adminChatID: adminChatID}
}

// Dispatch delivers text to the operator chat. Delivery problems are
// logged and swallowed: the user-facing flow never depends on them.
func (d *Dispatcher) Dispatch(text string) {
	if d.adminChatID == 0 {
		logrus.Debug("Operator notification skipped: no destination configured")
		return
	}
	if _, err := d.tg.Send(tgbotapi.NewMessage(d.adminChatID, text)); err != nil {
		logrus.WithError(err).Errorf("Failed to notify operator chat %d", d.adminChatID)
	}
}
