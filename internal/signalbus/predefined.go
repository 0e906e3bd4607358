package signalbus

// Predefined signal names. These are created when the bus is constructed,
// are reserved against Register, and live for the bus lifetime. Some are
// declared for application code to use and have no emitter inside this
// repository.
const (
	SignalUIThemeChanged        = "ui_theme_changed"
	SignalUILanguageChanged     = "ui_language_changed"
	SignalUIFontSizeChanged     = "ui_font_size_changed"
	SignalAppInitialized        = "app_initialized"
	SignalAppShutdown           = "app_shutdown"
	SignalAppStatusChanged      = "app_status_changed"
	SignalDataUpdated           = "data_updated"
	SignalDataDeleted           = "data_deleted"
	SignalDataLoaded            = "data_loaded"
	SignalErrorOccurred         = "error_occurred"
	SignalWarningOccurred       = "warning_occurred"
	SignalUserLoggedIn          = "user_logged_in"
	SignalUserLoggedOut         = "user_logged_out"
	SignalUserPermissionChanged = "user_permission_changed"
)

var predefinedSignals = []struct {
	name string
	kind PayloadKind
}{
	{SignalUIThemeChanged, KindText},
	{SignalUILanguageChanged, KindText},
	{SignalUIFontSizeChanged, KindNumber},
	{SignalAppInitialized, KindUnit},
	{SignalAppShutdown, KindUnit},
	{SignalAppStatusChanged, KindText},
	{SignalDataUpdated, KindKeyValue},
	{SignalDataDeleted, KindKeyValue},
	{SignalDataLoaded, KindKeyValue},
	{SignalErrorOccurred, KindFailure},
	{SignalWarningOccurred, KindNotice},
	{SignalUserLoggedIn, KindText},
	{SignalUserLoggedOut, KindUnit},
	{SignalUserPermissionChanged, KindList},
}
