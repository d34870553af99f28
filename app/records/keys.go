package records

// Store keys. These names are shared with exported backups and must not change.
const (
	KeyScriptsPrefix        = "guiones_"
	KeyFichas               = "fichas"
	KeyCatalog              = "catalogo"
	KeyWorkLogs             = "work_logs"
	KeyPaymentPrefix        = "payment_config_"
	KeyUsers                = "users"
	KeyNews                 = "news"
	KeyHistoryText          = "history_text"
	KeyAboutText            = "about_text"
	KeySearchHistory        = "search_history"
	KeyAgendaPrograms       = "agenda_programs"
	KeyAgendaEfemerides     = "agenda_efemerides"
	KeyAgendaCommemorations = "agenda_commemorations"
	KeyAgendaDayThemes      = "agenda_day_themes"
	KeyAgendaUsers          = "agenda_users"
	KeyAgendaPropaganda     = "agenda_propaganda"
)

// AgendaKeys lists the agenda sub-datasets carried by backups.
var AgendaKeys = []string{
	KeyAgendaPrograms,
	KeyAgendaEfemerides,
	KeyAgendaCommemorations,
	KeyAgendaDayThemes,
	KeyAgendaUsers,
	KeyAgendaPropaganda,
}

// ScriptsKey is the key of one program's script collection.
func ScriptsKey(slug string) string {
	return KeyScriptsPrefix + slug
}

// PaymentConfigKey is the key of a user's payment configuration.
func PaymentConfigKey(username string) string {
	return KeyPaymentPrefix + username
}
