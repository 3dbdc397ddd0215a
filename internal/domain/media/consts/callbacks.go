// Package consts contains bot command and callback identifiers
package consts

// Bot commands
const (
	CommandStart    = "/start"
	CommandSettings = "/settings"
)

// Callback data for the settings keyboard. Quality buttons are the
// prefix plus the quality value (qbest, q720, q480); link and file
// buttons are the prefix plus 0 or 1.
const (
	CallbackNoop          = "noop"
	CallbackQualityPrefix = "q"
	CallbackLinkPrefix    = "link"
	CallbackFilePrefix    = "file"
)
