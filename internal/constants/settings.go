package constants

const (
	// CookieSettings is the storage key holding the JSON settings blob
	CookieSettings = "screensaver-settings"

	// CookieRetentionDays is how long a committed blob stays valid
	CookieRetentionDays = 365

	// Settings bounds
	MinBrightness = 0
	MaxBrightness = 100
	MinSpeed      = 1
	MaxSpeed      = 10

	// Default Settings Values
	DefaultBrightness       = 50
	DefaultSpeed            = 5
	DefaultAnimation        = "Slide"
	DefaultTextColor        = "#ffffff"
	DefaultTextFont         = "Sans-serif"
	DefaultTimeFormat24Hour = true
	DefaultShowSeconds      = true
	DefaultHueEnabled       = false
	DefaultHueColor         = "#ff0000"
	DefaultTheme            = "Theme 1"
	DefaultShowDate         = false
	DefaultClockface        = "Standard"
)
