// Package booking implements the appointment dialogue as a finite-state
// machine over per-chat sessions. The machine consumes transport-agnostic
// events and produces prompt/notify effects; it never touches Telegram
// directly, which keeps every transition testable without a network.
package booking

import (
	"strings"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/constant"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/content"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/notify"
	"github.com/sirupsen/logrus"
)

// SessionRepository is the session store surface the machine mutates.
type SessionRepository interface {
	Get(chatID int64) models.Session
	SetState(chatID int64, state models.State)
	UpdateDraft(chatID int64, patch models.BookingDraft)
	Clear(chatID int64)
}

// Machine drives the appointment dialogue:
// Idle → name → phone → date → service → Idle.
type Machine struct {
	content  *content.Store
	sessions SessionRepository
}

// NewMachine creates a booking machine over the given content and sessions.
func NewMachine(store *content.Store, sessions SessionRepository) *Machine {
	return &Machine{content: store, sessions: sessions}
}

// Handle applies one event to the owning chat's session and returns the
// effects the presentation layer must realize. It never returns an
// error: every fault degrades to a localized error prompt and a session
// reset, per the dialogue's soft-fail policy.
func (m *Machine) Handle(event Event) []Effect {
	switch e := event.(type) {
	case ChoiceSelected:
		return m.handleChoice(e.ChatID, e.Token)
	case TextInput:
		return m.handleText(e.ChatID, e.Text)
	case ContactShared:
		return m.handlePhone(e.ChatID, e.Phone)
	}
	return nil
}

func (m *Machine) handleChoice(chatID int64, token string) []Effect {
	session := m.sessions.Get(chatID)
	lang := session.Language

	switch {
	case token == constant.BUTTON_CODE_START_APPOINTMENT || token == constant.BUTTON_CODE_MAKE_ANOTHER:
		// A new booking always starts from a clean draft.
		m.sessions.Clear(chatID)
		m.sessions.SetState(chatID, models.StateWaitingForName)
		return []Effect{Prompt{
			ChatID:  chatID,
			Text:    m.content.TextOrKey(lang, "enter_name"),
			Choices: []Choice{m.backChoice(lang)},
		}}

	case token == constant.BUTTON_CODE_BACK_TO_MAIN:
		m.sessions.Clear(chatID)
		return []Effect{m.mainMenu(chatID, lang, "welcome")}

	case token == constant.BUTTON_CODE_DATE_TODAY,
		token == constant.BUTTON_CODE_DATE_TOMORROW,
		token == constant.BUTTON_CODE_DATE_AFTER_TOMORROW:
		if session.State != models.StateWaitingForDate {
			return m.malformed(chatID, lang, "date choice outside date step: "+token)
		}
		m.sessions.UpdateDraft(chatID, models.BookingDraft{Date: m.dateLabel(lang, token)})
		m.sessions.SetState(chatID, models.StateWaitingForService)
		return []Effect{m.servicePrompt(chatID, lang)}

	case token == constant.BUTTON_CODE_DATE_OTHER:
		if session.State != models.StateWaitingForDate {
			return m.malformed(chatID, lang, "date choice outside date step: "+token)
		}
		// Stay in the date step and wait for free text.
		return []Effect{Prompt{
			ChatID:  chatID,
			Text:    m.content.TextOrKey(lang, "enter_other_date"),
			Choices: []Choice{m.backChoice(lang)},
		}}

	case strings.HasPrefix(token, constant.SERVICE_CODE_PREFIX):
		if session.State != models.StateWaitingForService {
			return m.malformed(chatID, lang, "service choice outside service step: "+token)
		}
		return m.finalize(chatID, lang, strings.TrimPrefix(token, constant.SERVICE_CODE_PREFIX))

	default:
		return m.malformed(chatID, lang, "unknown selection token: "+token)
	}
}

func (m *Machine) handleText(chatID int64, text string) []Effect {
	session := m.sessions.Get(chatID)
	lang := session.Language

	switch session.State {
	case models.StateWaitingForName:
		// Stored verbatim: any text is a valid name.
		m.sessions.UpdateDraft(chatID, models.BookingDraft{Name: text})
		m.sessions.SetState(chatID, models.StateWaitingForPhone)
		return []Effect{m.phonePrompt(chatID, lang)}

	case models.StateWaitingForPhone:
		return m.handlePhone(chatID, text)

	case models.StateWaitingForDate:
		// Free-form date, stored verbatim.
		m.sessions.UpdateDraft(chatID, models.BookingDraft{Date: text})
		m.sessions.SetState(chatID, models.StateWaitingForService)
		return []Effect{m.servicePrompt(chatID, lang)}

	case models.StateWaitingForService:
		// The service keyboard is already on screen; remind instead of resetting.
		return []Effect{m.servicePrompt(chatID, lang)}

	default:
		return []Effect{m.mainMenu(chatID, lang, "welcome")}
	}
}

func (m *Machine) handlePhone(chatID int64, raw string) []Effect {
	session := m.sessions.Get(chatID)
	lang := session.Language

	if session.State != models.StateWaitingForPhone {
		return m.malformed(chatID, lang, "phone input outside phone step")
	}

	normalized, ok := NormalizePhone(raw)
	if !ok {
		// Symbol noise with no digits: re-prompt, keep the state.
		return []Effect{m.phonePromptWithText(chatID, lang, "invalid_phone")}
	}

	m.sessions.UpdateDraft(chatID, models.BookingDraft{Phone: normalized})
	m.sessions.SetState(chatID, models.StateWaitingForDate)
	return []Effect{m.datePrompt(chatID, lang)}
}

// finalize resolves the chosen service, emits the operator notification
// and resets the session. An unresolved id leaves the session untouched.
func (m *Machine) finalize(chatID int64, lang, serviceID string) []Effect {
	service, err := m.content.ServiceByID(lang, serviceID)
	if err != nil {
		logrus.WithError(err).Warnf("Service selection failed for chat %d", chatID)
		return []Effect{
			Prompt{ChatID: chatID, Text: m.content.TextOrKey(lang, "service_not_found")},
			m.servicePrompt(chatID, lang),
		}
	}

	m.sessions.UpdateDraft(chatID, models.BookingDraft{ServiceID: serviceID})
	draft := m.sessions.Get(chatID).Draft

	// Structurally missing fields get the placeholder instead of failing.
	notSpecified := m.content.TextOrKey(lang, "not_specified")
	if draft.Name == "" {
		draft.Name = notSpecified
	}
	if draft.Phone == "" {
		draft.Phone = notSpecified
	}
	if draft.Date == "" {
		draft.Date = notSpecified
	}

	summary := notify.FormatBooking(draft, service)
	m.sessions.Clear(chatID)

	return []Effect{
		Notify{Text: summary},
		Prompt{
			ChatID: chatID,
			Text:   m.content.TextOrKey(lang, "appointment_confirmed"),
			Choices: []Choice{
				{Label: m.content.TextOrKey(lang, "make_another_appointment"), Token: constant.BUTTON_CODE_MAKE_ANOTHER},
				m.backChoice(lang),
			},
		},
	}
}

// malformed implements the dialogue error policy: log, reset, apologize.
func (m *Machine) malformed(chatID int64, lang, detail string) []Effect {
	logrus.Warnf("Malformed booking input for chat %d: %s", chatID, detail)
	m.sessions.Clear(chatID)
	prompt := m.mainMenu(chatID, lang, "welcome")
	prompt.Text = m.content.TextOrKey(lang, "error_occurred")
	return []Effect{prompt}
}

// MainMenu is the welcome prompt with the top-level menu choices. The
// presentation layer reuses it after language selection.
func (m *Machine) MainMenu(chatID int64, lang string) Prompt {
	return m.mainMenu(chatID, lang, "welcome")
}

func (m *Machine) mainMenu(chatID int64, lang, textKey string) Prompt {
	return Prompt{
		ChatID: chatID,
		Text:   m.content.TextOrKey(lang, textKey),
		Choices: []Choice{
			{Label: m.content.TextOrKey(lang, "contacts"), Token: constant.BUTTON_CODE_SHOW_CONTACTS},
			{Label: m.content.TextOrKey(lang, "appointment"), Token: constant.BUTTON_CODE_START_APPOINTMENT},
			{Label: m.content.TextOrKey(lang, "about_clinic"), Token: constant.BUTTON_CODE_ABOUT_CLINIC},
		},
	}
}

func (m *Machine) phonePrompt(chatID int64, lang string) Prompt {
	return m.phonePromptWithText(chatID, lang, "enter_phone")
}

func (m *Machine) phonePromptWithText(chatID int64, lang, textKey string) Prompt {
	return Prompt{
		ChatID:       chatID,
		Text:         m.content.TextOrKey(lang, textKey),
		ContactLabel: m.content.TextOrKey(lang, "send_contact"),
	}
}

func (m *Machine) datePrompt(chatID int64, lang string) Prompt {
	return Prompt{
		ChatID: chatID,
		Text:   m.content.TextOrKey(lang, "select_date"),
		Choices: []Choice{
			{Label: m.content.TextOrKey(lang, "today"), Token: constant.BUTTON_CODE_DATE_TODAY},
			{Label: m.content.TextOrKey(lang, "tomorrow"), Token: constant.BUTTON_CODE_DATE_TOMORROW},
			{Label: m.content.TextOrKey(lang, "day_after_tomorrow"), Token: constant.BUTTON_CODE_DATE_AFTER_TOMORROW},
			{Label: m.content.TextOrKey(lang, "other_date"), Token: constant.BUTTON_CODE_DATE_OTHER},
			m.backChoice(lang),
		},
	}
}

// servicePrompt lists the catalog deduplicated by visible name, keeping
// the configured order.
func (m *Machine) servicePrompt(chatID int64, lang string) Prompt {
	seen := make(map[string]bool)
	var choices []Choice
	for _, service := range m.content.Services(lang) {
		if seen[service.Name] {
			continue
		}
		seen[service.Name] = true
		choices = append(choices, Choice{
			Label: service.Name,
			Token: constant.SERVICE_CODE_PREFIX + service.ID,
		})
	}
	choices = append(choices, m.backChoice(lang))
	return Prompt{
		ChatID:  chatID,
		Text:    m.content.TextOrKey(lang, "select_service"),
		Choices: choices,
	}
}

func (m *Machine) backChoice(lang string) Choice {
	return Choice{
		Label: m.content.TextOrKey(lang, "back"),
		Token: constant.BUTTON_CODE_BACK_TO_MAIN,
	}
}

func (m *Machine) dateLabel(lang, token string) string {
	switch token {
	case constant.BUTTON_CODE_DATE_TODAY:
		return m.content.TextOrKey(lang, "today")
	case constant.BUTTON_CODE_DATE_TOMORROW:
		return m.content.TextOrKey(lang, "tomorrow")
	default:
		return m.content.TextOrKey(lang, "day_after_tomorrow")
	}
}
