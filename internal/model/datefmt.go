package model

import (
	"fmt"
	"time"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as a Spanish long date, e.g. "12 de octubre de 2023".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
}

// FormatClock renders the 24h wall-clock time, e.g. "09:05".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// Greeting returns the time-of-day salutation shown on the greeting screen.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Buenos días"
	case h < 18:
		return "Buenas tardes"
	default:
		return "Buenas noches"
	}
}
