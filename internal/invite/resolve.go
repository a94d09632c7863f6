package invite

import "github.com/itzbandhan/sallukobirthday/internal/models"

const (
	fallbackTitle  = "You're Invited!"
	fallbackDate   = "Date TBD"
	fallbackVenue  = "Venue TBD"
	fallbackButton = "Tap to Open"

	// The party emoji renders poorly in the overlay animation, so it is
	// swapped for the heart whenever it shows up in settings.
	reservedEmoji = "🥳"
	fallbackEmoji = "🩷"

	specialGuestLabel = "Special Guest"
)

// Renderable is the fully resolved content for one invitation view.
// Built once per page load from settings plus an optional recipient,
// immutable afterwards.
type Renderable struct {
	Title               string `json:"title"`
	Date                string `json:"date"`
	Venue               string `json:"venue"`
	Subtitle            string `json:"subtitle,omitempty"`
	RecipientGreeting   string `json:"recipient_greeting,omitempty"`
	Message             string `json:"message,omitempty"`
	Emoji               string `json:"emoji"`
	OpenButtonText      string `json:"open_button_text"`
	ConfettiEnabled     bool   `json:"confetti_enabled"`
	EmojiOverlayEnabled bool   `json:"emoji_overlay_enabled"`
}

// Resolve merges global settings with an optional recipient into renderable
// content. It is total: nil inputs and empty fields degrade to the literal
// fallbacks, never to a blank card.
func Resolve(settings *models.Settings, recipient *models.Recipient) Renderable {
	if settings == nil {
		settings = &models.Settings{}
	}

	out := Renderable{
		Title:               orDefault(settings.Title, fallbackTitle),
		Date:                orDefault(settings.DateText, fallbackDate),
		Venue:               orDefault(settings.VenueText, fallbackVenue),
		Subtitle:            settings.Subtitle,
		Emoji:               displayEmoji(settings.Emoji),
		OpenButtonText:      orDefault(settings.OpenButtonText, fallbackButton),
		ConfettiEnabled:     enabled(settings.ConfettiEnabled),
		EmojiOverlayEnabled: enabled(settings.EmojiOverlayEnabled),
	}

	out.RecipientGreeting = greeting(recipient)

	if recipient != nil && recipient.CustomMessage != "" {
		out.Message = recipient.CustomMessage
	} else {
		out.Message = settings.GenericMessage
	}

	return out
}

// greeting derives the "Dear X," line. Couples always use the partner
// fields; NameSingle is ignored for them even when present.
func greeting(r *models.Recipient) string {
	switch {
	case r == nil:
		return ""
	case r.InviteType == models.InviteCouple:
		return r.NamePartner1 + " & " + r.NamePartner2
	case r.NameSingle != "":
		return r.NameSingle
	case r.InviteType == models.InviteSpecial:
		return specialGuestLabel
	default:
		return ""
	}
}

// PreviewName is the display name used in link-preview titles. Same
// precedence as the greeting, but anonymous visitors become "You".
func PreviewName(r *models.Recipient) string {
	switch {
	case r == nil:
		return "You"
	case r.InviteType == models.InviteCouple:
		return r.NamePartner1 + " & " + r.NamePartner2
	case r.NameSingle != "":
		return r.NameSingle
	case r.InviteType == models.InviteSpecial:
		return specialGuestLabel
	default:
		return "You"
	}
}

func displayEmoji(emoji string) string {
	if emoji == "" || emoji == reservedEmoji {
		return fallbackEmoji
	}
	return emoji
}

// enabled implements the opt-out default: only an explicit false disables.
func enabled(v *bool) bool {
	return v == nil || *v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
