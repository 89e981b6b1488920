// Package record holds the commit record model and the line codec for the
// Markdown backing file. The serialized line is the wire format: status is
// derived from the pending marker alone, there is no separate status field.
package record

import "strings"

// Status is the lifecycle state of a record. Approved is terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Tap is the beverage-style tag attached to a record.
type Tap string

const (
	TapIPA     Tap = "ipa"
	TapAPA     Tap = "apa"
	TapLager   Tap = "lager"
	TapStout   Tap = "stout"
	TapPorter  Tap = "porter"
	TapPilsner Tap = "pilsner"
	TapWitbier Tap = "witbier"
	TapSour    Tap = "sour"
	TapCraft   Tap = "craft"
)

const (
	// DefaultAlias labels records submitted without an author.
	DefaultAlias = "anónimo"

	// HashLen is the length of a record identifier, whether randomly
	// generated or truncated from a store-assigned change id.
	HashLen = 7

	// MaxMessageLen is the rune limit applied to messages before encoding.
	MaxMessageLen = 140
)

var knownTaps = map[string]Tap{
	"ipa":     TapIPA,
	"apa":     TapAPA,
	"lager":   TapLager,
	"stout":   TapStout,
	"porter":  TapPorter,
	"pilsner": TapPilsner,
	"witbier": TapWitbier,
	"sour":    TapSour,
	"craft":   TapCraft,
}

var tapCaptions = map[Tap]string{
	TapIPA:     "amarga y lupulada",
	TapAPA:     "fresca y aromática",
	TapLager:   "ligera y dorada",
	TapStout:   "negra como la noche",
	TapPorter:  "tostada y profunda",
	TapPilsner: "clásica de barril",
	TapWitbier: "turbia de trigo",
	TapSour:    "ácida y atrevida",
	TapCraft:   "de la casa",
}

// ParseTap maps a free-form beer style to a known tap, case-insensitively.
// Unrecognized values coerce to TapCraft rather than erroring.
func ParseTap(s string) Tap {
	if tap, ok := knownTaps[strings.ToLower(strings.TrimSpace(s))]; ok {
		return tap
	}
	return TapCraft
}

// Caption returns the display caption shown next to the tap in responses.
func (t Tap) Caption() string {
	if caption, ok := tapCaptions[t]; ok {
		return caption
	}
	return tapCaptions[TapCraft]
}

// Record is one guestbook commit entry.
type Record struct {
	Hash      string
	Tap       Tap
	Alias     string
	Message   string
	CreatedAt string
	Status    Status
}
