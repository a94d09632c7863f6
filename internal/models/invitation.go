package models

import "time"

type InviteType string

const (
	InviteSingle  InviteType = "single"
	InviteCouple  InviteType = "couple"
	InviteSpecial InviteType = "special"
)

// Valid reports whether t is one of the known invite types.
func (t InviteType) Valid() bool {
	switch t {
	case InviteSingle, InviteCouple, InviteSpecial:
		return true
	}
	return false
}

// Settings is the single global invitation configuration row. The two
// feature flags are pointers so that "never set" stays distinguishable
// from an explicit false.
type Settings struct {
	Title               string    `json:"title"`
	DateText            string    `json:"date_text"`
	VenueText           string    `json:"venue_text"`
	Subtitle            string    `json:"subtitle,omitempty"`
	Emoji               string    `json:"emoji"`
	ConfettiEnabled     *bool     `json:"confetti_enabled,omitempty"`
	EmojiOverlayEnabled *bool     `json:"emoji_overlay_enabled,omitempty"`
	OpenButtonText      string    `json:"open_button_text"`
	GenericMessage      string    `json:"generic_message,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Recipient is one personalized invitation link. Partner fields only carry
// meaning for couple invites; NameSingle only outside them.
type Recipient struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	InviteType    InviteType `json:"invite_type"`
	NameSingle    string     `json:"name_single,omitempty"`
	NamePartner1  string     `json:"name_partner1,omitempty"`
	NamePartner2  string     `json:"name_partner2,omitempty"`
	CustomMessage string     `json:"custom_message,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}
