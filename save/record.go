// Package save persists player progress to named slots.
package save

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/sagivt1/Adventure-arcade-game/common"
)

// ErrSlotNotFound is returned by Load when the slot has never been written.
var ErrSlotNotFound = errors.New("save: slot not found")

// DefaultSlot is the slot used when none is configured.
const DefaultSlot = "Default"

// Record is the flat snapshot of the player written to a slot. An empty
// WeaponName means no weapon was equipped.
type Record struct {
	Health     float64        `yaml:"health"`
	MaxHealth  float64        `yaml:"max_health"`
	Stamina    float64        `yaml:"stamina"`
	MaxStamina float64        `yaml:"max_stamina"`
	Coins      int            `yaml:"coins"`
	Location   common.Vec3    `yaml:"location"`
	Rotation   common.Rotator `yaml:"rotation"`
	LevelName  string         `yaml:"level_name"`
	WeaponName string         `yaml:"weapon_name"`
}

// Store reads and writes records by slot name.
type Store interface {
	Save(ctx context.Context, slot string, rec Record) error
	Load(ctx context.Context, slot string) (Record, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

var unsafeSlotChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeSlot maps a user supplied slot name to a file and key safe form.
func SanitizeSlot(slot string) string {
	s := strings.TrimSpace(slot)
	s = unsafeSlotChars.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return DefaultSlot
	}
	return s
}
