// Package service wires the clinic dialogue to the Telegram Bot API: it
// turns incoming updates into booking events, renders prompt effects as
// keyboards and serves the static browsing menus (contacts, about page).
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/booking"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/constant"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/content"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/models"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/notify"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/repository"
	"github.com/sirupsen/logrus"
)

// choicesPerRow is the inline keyboard width for selection prompts.
const choicesPerRow = 2

// TgBotServices is the main service struct of the clinic bot.
type TgBotServices struct {
	Content  *content.Store         // Localized texts, catalog, contacts.
	Sessions *repository.Sessions   // Per-chat dialogue state.
	Machine  *booking.Machine       // Appointment dialogue controller.
	Notifier *notify.Dispatcher     // Operator notifications.
	tg       TelegramClient         // Telegram transport.
	dataPath string                 // Root of the static data assets.
}

// NewTgBot creates the bot service over its collaborators.
func NewTgBot(
	store *content.Store,
	sessions *repository.Sessions,
	machine *booking.Machine,
	notifier *notify.Dispatcher,
	tg TelegramClient,
	dataPath string,
) *TgBotServices {
	return &TgBotServices{
		Content:  store,
		Sessions: sessions,
		Machine:  machine,
		Notifier: notifier,
		tg:       tg,
		dataPath: dataPath,
	}
}

// UpdateProcessing handles one incoming Telegram update.
func (b *TgBotServices) UpdateProcessing(update *tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Recovered from panic while processing update: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *TgBotServices) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if message.Contact != nil {
		b.applyEffects(b.Machine.Handle(booking.ContactShared{
			ChatID: chatID,
			Phone:  message.Contact.PhoneNumber,
		}))
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			logrus.Infof("Command [%s] from %s (chat %d)", message.Text, message.From.UserName, chatID)
			b.Sessions.Clear(chatID)
			b.sendLanguageMenu(chatID)
		case "ping":
			if err := b.sendMessage(chatID, "Bot is working!", nil); err == nil {
				logrus.Debugf("Ping answered for chat %d", chatID)
			}
		default:
			session := b.Sessions.Get(chatID)
			if err := b.sendMessage(chatID, b.Content.TextOrKey(session.Language, "error_occurred"), nil); err != nil {
				logrus.WithError(err).Error("Failed to answer unknown command")
			}
		}
		return
	}

	if message.Text == "" {
		return
	}

	// Plain text goes to the dialogue machine; in the idle state it
	// degrades to re-showing the main menu.
	b.applyEffects(b.Machine.Handle(booking.TextInput{ChatID: chatID, Text: message.Text}))
}

func (b *TgBotServices) handleCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	// Acknowledge the press so the client drops its loading state.
	if _, err := b.tg.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.WithError(err).Debug("Failed to answer callback query")
	}

	switch query.Data {
	case constant.BUTTON_CODE_LANG_RU, constant.BUTTON_CODE_LANG_UZ:
		b.selectLanguage(chatID, strings.TrimPrefix(query.Data, "lang_"))
	case constant.BUTTON_CODE_SHOW_CONTACTS:
		b.showContactsMenu(chatID)
	case constant.BUTTON_CODE_ABOUT_CLINIC:
		b.showAbout(chatID)
	case constant.BUTTON_CODE_CONTACT_LOCATION:
		b.sendLocation(chatID)
	case constant.BUTTON_CODE_CONTACT_VIDEO:
		b.sendClinicVideo(chatID)
	case constant.BUTTON_CODE_CONTACT_CALL:
		b.sendCallButton(chatID)
	default:
		// Booking tokens: start, cancel, dates, service ids.
		b.applyEffects(b.Machine.Handle(booking.ChoiceSelected{ChatID: chatID, Token: query.Data}))
	}
}

// applyEffects realizes machine effects: prompts become messages with
// keyboards, notifications go to the operator dispatcher.
func (b *TgBotServices) applyEffects(effects []booking.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case booking.Prompt:
			b.sendPrompt(e)
		case booking.Notify:
			b.Notifier.Dispatch(e.Text)
		}
	}
}

func (b *TgBotServices) sendPrompt(prompt booking.Prompt) {
	var markup interface{}

	switch {
	case prompt.ContactLabel != "":
		keyboard := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact(prompt.ContactLabel),
			),
		)
		keyboard.ResizeKeyboard = true
		keyboard.OneTimeKeyboard = true
		markup = keyboard
	case len(prompt.Choices) > 0:
		markup = buildInlineKeyboard(prompt.Choices)
	}

	if err := b.sendMessage(prompt.ChatID, prompt.Text, markup); err != nil {
		logrus.WithError(err).Errorf("Failed to deliver prompt to chat %d", prompt.ChatID)
	}
}

// buildInlineKeyboard lays choices out two per row.
func buildInlineKeyboard(choices []booking.Choice) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton
	for i, choice := range choices {
		currentRow = append(currentRow, tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Token))
		if len(currentRow) == choicesPerRow || i == len(choices)-1 {
			rows = append(rows, currentRow)
			currentRow = nil
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// sendMessage sends a message to the specified chat with optional markup.
func (b *TgBotServices) sendMessage(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := b.tg.Send(msg)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to send message to chat %d: %s", chatID, text)
	}
	return err
}

func (b *TgBotServices) getKeyboardRow(buttonText, buttonCode string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(buttonText, buttonCode))
}

func (b *TgBotServices) sendLanguageMenu(chatID int64) {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		b.getKeyboardRow("Русский "+constant.EMOJI_RU_FLAG, constant.BUTTON_CODE_LANG_RU),
		b.getKeyboardRow("O'zbek "+constant.EMOJI_UZ_FLAG, constant.BUTTON_CODE_LANG_UZ),
	)
	if err := b.sendMessage(chatID, "Выберите язык / Tilni tanlang", markup); err != nil {
		logrus.WithError(err).Error("Failed to send language menu")
	}
}

func (b *TgBotServices) selectLanguage(chatID int64, lang string) {
	if !b.Content.HasLanguage(lang) {
		logrus.Warnf("Unknown language %q selected in chat %d", lang, chatID)
		lang = models.LanguageDefault
	}
	b.Sessions.SetLanguage(chatID, lang)
	b.sendPrompt(b.Machine.MainMenu(chatID, lang))
}

func (b *TgBotServices) showContactsMenu(chatID int64) {
	lang := b.Sessions.Get(chatID).Language
	markup := tgbotapi.NewInlineKeyboardMarkup(
		b.getKeyboardRow(b.Content.TextOrKey(lang, "location"), constant.BUTTON_CODE_CONTACT_LOCATION),
		b.getKeyboardRow(b.Content.TextOrKey(lang, "video"), constant.BUTTON_CODE_CONTACT_VIDEO),
		b.getKeyboardRow(b.Content.TextOrKey(lang, "call"), constant.BUTTON_CODE_CONTACT_CALL),
		b.getKeyboardRow(b.Content.TextOrKey(lang, "back"), constant.BUTTON_CODE_BACK_TO_MAIN),
	)
	if err := b.sendMessage(chatID, b.Content.TextOrKey(lang, "contact_info"), markup); err != nil {
		logrus.WithError(err).Error("Failed to send contacts menu")
	}
}

func (b *TgBotServices) showAbout(chatID int64) {
	lang := b.Sessions.Get(chatID).Language
	markup := tgbotapi.NewInlineKeyboardMarkup(
		b.getKeyboardRow(b.Content.TextOrKey(lang, "back"), constant.BUTTON_CODE_BACK_TO_MAIN),
	)
	if err := b.sendMessage(chatID, b.Content.TextOrKey(lang, "about_clinic_text"), markup); err != nil {
		logrus.WithError(err).Error("Failed to send about page")
	}
}

// sendLocation sends the location video note (when present), its caption
// and the clinic coordinates.
func (b *TgBotServices) sendLocation(chatID int64) {
	lang := b.Sessions.Get(chatID).Language
	info, err := b.Content.Contacts(lang)
	if err != nil {
		logrus.WithError(err).Error("Contact info lookup failed")
		b.sendMessage(chatID, b.Content.TextOrKey(lang, "error_occurred"), nil)
		return
	}

	b.sendVideoNote(chatID, lang, "location_"+lang+".mp4", "location_caption")

	location := tgbotapi.NewLocation(chatID, info.Location.Latitude, info.Location.Longitude)
	if _, err = b.tg.Send(location); err != nil {
		logrus.WithError(err).Errorf("Failed to send location to chat %d", chatID)
	}
}

func (b *TgBotServices) sendClinicVideo(chatID int64) {
	lang := b.Sessions.Get(chatID).Language
	b.sendVideoNote(chatID, lang, "clinic_"+lang+".mp4", "video_caption")
}

// sendVideoNote sends the named video from the data directory followed by
// its localized caption, degrading to a warning text when the asset is
// missing.
func (b *TgBotServices) sendVideoNote(chatID int64, lang, fileName, captionKey string) {
	videoPath := filepath.Join(b.dataPath, "videos", fileName)
	if _, err := os.Stat(videoPath); err != nil {
		logrus.Warnf("Video asset %s is unavailable: %v", videoPath, err)
		text := fmt.Sprintf("%s %s: %s", constant.EMOJI_WARNING, b.Content.TextOrKey(lang, "video_unavailable"), fileName)
		b.sendMessage(chatID, text, nil)
		return
	}

	videoNote := tgbotapi.NewVideoNote(chatID, 0, tgbotapi.FilePath(videoPath))
	if _, err := b.tg.Send(videoNote); err != nil {
		logrus.WithError(err).Errorf("Failed to send video note %s to chat %d", videoPath, chatID)
		return
	}
	b.sendMessage(chatID, b.Content.TextOrKey(lang, captionKey), nil)
}

func (b *TgBotServices) sendCallButton(chatID int64) {
	lang := b.Sessions.Get(chatID).Language
	info, err := b.Content.Contacts(lang)
	if err != nil {
		logrus.WithError(err).Error("Contact info lookup failed")
		b.sendMessage(chatID, b.Content.TextOrKey(lang, "error_occurred"), nil)
		return
	}

	formattedPhone := strings.ReplaceAll(info.Phone, " ", "")
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(
				b.Content.TextOrKey(lang, "call"),
				"tg://resolve?phone="+strings.TrimPrefix(formattedPhone, "+"),
			),
		),
	)
	if err = b.sendMessage(chatID, constant.EMOJI_PHONE+" "+info.Phone, markup); err != nil {
		logrus.WithError(err).Error("Failed to send call button")
	}
}
