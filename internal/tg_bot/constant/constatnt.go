package constant

const (
	EMOJI_MEMO     = "\U0001F4DD"           //📝
	EMOJI_PERSON   = "\U0001F464"           //👤
	EMOJI_PHONE    = "\U0001F4DE"           //📞
	EMOJI_CALENDAR = "\U0001F4C5"           //📅
	EMOJI_HOSPITAL = "\U0001F3E5"           //🏥
	EMOJI_WARNING  = "\U000026A0\U0000FE0F" //⚠️
	EMOJI_RU_FLAG  = "\U0001F1F7\U0001F1FA" //🇷🇺
	EMOJI_UZ_FLAG  = "\U0001F1FA\U0001F1FF" //🇺🇿

	BUTTON_CODE_LANG_RU = "lang_ru"
	BUTTON_CODE_LANG_UZ = "lang_uz"

	BUTTON_CODE_SHOW_CONTACTS     = "show_contacts"
	BUTTON_CODE_ABOUT_CLINIC      = "about_clinic"
	BUTTON_CODE_BACK_TO_MAIN      = "back_to_main"
	BUTTON_CODE_START_APPOINTMENT = "start_appointment"
	BUTTON_CODE_MAKE_ANOTHER      = "make_another_appointment"

	BUTTON_CODE_CONTACT_LOCATION = "contact_location"
	BUTTON_CODE_CONTACT_VIDEO    = "contact_video"
	BUTTON_CODE_CONTACT_CALL     = "contact_call"

	BUTTON_CODE_DATE_TODAY          = "date_today"
	BUTTON_CODE_DATE_TOMORROW       = "date_tomorrow"
	BUTTON_CODE_DATE_AFTER_TOMORROW = "date_day_after_tomorrow"
	BUTTON_CODE_DATE_OTHER          = "date_other"

	// SERVICE_CODE_PREFIX is followed by the catalog id of the chosen service.
	SERVICE_CODE_PREFIX = "appointment_service_"
)
