// Package ics builds the iCalendar invite attached to confirmed-booking
// emails. Events are fixed at one hour and carry party-specific descriptions:
// the customer's artifact describes the visit, the owner's the client contact.
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Party int

const (
	PartyCustomer Party = iota
	PartyOwner
)

// Event is a finalized appointment ready to be rendered as an invite.
type Event struct {
	Service string
	Package string
	Start   time.Time

	// Counterparty is the other participant: the salon for customer
	// artifacts, the client for owner artifacts.
	CounterpartyName  string
	CounterpartyPhone string

	Location string
}

const stampLayout = "20060102T150405"

// Build renders ev as a self-contained VCALENDAR payload for the given party.
func Build(party Party, ev Event) []byte {
	uid := fmt.Sprintf("%d-%s@lumiere-atelier", time.Now().UnixNano(), uuid.NewString()[:8])

	title := ev.Service
	if ev.Package != "" {
		title = fmt.Sprintf("%s (%s)", ev.Service, ev.Package)
	}

	var description string
	switch party {
	case PartyOwner:
		description = fmt.Sprintf("Appointment: %s. Client: %s, phone %s.",
			title, ev.CounterpartyName, ev.CounterpartyPhone)
	default:
		description = fmt.Sprintf("Your appointment for %s at %s. We look forward to seeing you.",
			title, ev.CounterpartyName)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Lumiere Atelier//Bookings//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + time.Now().UTC().Format(stampLayout) + "Z",
		"DTSTART:" + ev.Start.Format(stampLayout),
		"DTEND:" + ev.Start.Add(time.Hour).Format(stampLayout),
		"SUMMARY:" + escapeText(title),
		"DESCRIPTION:" + escapeText(description),
		"LOCATION:" + escapeText(ev.Location),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

// escapeText escapes the characters RFC 5545 reserves in TEXT values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}
