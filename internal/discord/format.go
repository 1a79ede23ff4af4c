package discord

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// formatCount renders a count with thousands separators (1234 -> "1,234").
func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatExpiry renders a timestamp as a Discord relative-time tag, which the
// client displays in the viewer's own time zone ("in 3 days").
func formatExpiry(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
