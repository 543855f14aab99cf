package component

// MovementStatus is the coarse locomotion mode. It selects the max speed the
// movement collaborator applies.
type MovementStatus int

const (
	MovementNormal MovementStatus = iota
	MovementSprinting
	MovementDead
)

func (s MovementStatus) String() string {
	switch s {
	case MovementNormal:
		return "normal"
	case MovementSprinting:
		return "sprinting"
	case MovementDead:
		return "dead"
	default:
		return "unknown"
	}
}

// StaminaStatus gates sprint availability and regeneration.
type StaminaStatus int

const (
	StaminaNormal StaminaStatus = iota
	StaminaBelowMinimum
	StaminaExhausted
	StaminaExhaustedRecovering
)

func (s StaminaStatus) String() string {
	switch s {
	case StaminaNormal:
		return "normal"
	case StaminaBelowMinimum:
		return "below_minimum"
	case StaminaExhausted:
		return "exhausted"
	case StaminaExhaustedRecovering:
		return "exhausted_recovering"
	default:
		return "unknown"
	}
}

// CharacterTuning holds the per-character constants loaded from the player
// prefab.
type CharacterTuning struct {
	StaminaDrainRate float64
	MinSprintStamina float64
	RunningSpeed     float64
	SprintingSpeed   float64
}

// DefaultCharacterTuning mirrors player.yaml.
func DefaultCharacterTuning() CharacterTuning {
	return CharacterTuning{
		StaminaDrainRate: 25,
		MinSprintStamina: 50,
		RunningSpeed:     650,
		SprintingSpeed:   950,
	}
}

// Character is the player's stat block and the two status machines layered
// on it. Dead is terminal: once entered, Advance, ApplyDamage, Heal and Die
// leave every field untouched.
type Character struct {
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Coins      int

	MovementStatus MovementStatus
	StaminaStatus  StaminaStatus

	// MaxSpeed is the value last surfaced to the movement collaborator.
	MaxSpeed float64

	Tuning CharacterTuning

	// OnDeath runs exactly once, when the character enters MovementDead.
	OnDeath func(c *Character)
}

// NewCharacter creates a character in the Normal/Normal state. Stamina and
// health are clamped into range.
func NewCharacter(tuning CharacterTuning, health, maxHealth, stamina, maxStamina float64) *Character {
	if maxHealth <= 0 {
		maxHealth = 1
	}
	if maxStamina < 0 {
		maxStamina = 0
	}
	c := &Character{
		Health:     clampRange(health, 0, maxHealth),
		MaxHealth:  maxHealth,
		Stamina:    clampRange(stamina, 0, maxStamina),
		MaxStamina: maxStamina,
		Tuning:     tuning,
	}
	c.SetMovementStatus(MovementNormal)
	return c
}

// IsDead reports whether the character has entered the terminal state.
func (c *Character) IsDead() bool {
	return c != nil && c.MovementStatus == MovementDead
}

// SetMovementStatus stores the status and selects the matching max speed.
func (c *Character) SetMovementStatus(status MovementStatus) {
	if c == nil {
		return
	}
	c.MovementStatus = status
	if status == MovementSprinting {
		c.MaxSpeed = c.Tuning.SprintingSpeed
	} else {
		c.MaxSpeed = c.Tuning.RunningSpeed
	}
}

// Advance runs one tick of the stamina/movement machine. A dead character is
// frozen and the current values are returned unchanged.
func (c *Character) Advance(dt float64, sprintHeld, moving bool) (MovementStatus, StaminaStatus, float64) {
	if c == nil {
		return MovementNormal, StaminaNormal, 0
	}
	if c.MovementStatus == MovementDead {
		return c.MovementStatus, c.StaminaStatus, c.Stamina
	}
	if dt < 0 {
		dt = 0
	}

	delta := c.Tuning.StaminaDrainRate * dt
	minSprint := c.Tuning.MinSprintStamina

	switch c.StaminaStatus {
	case StaminaNormal:
		if sprintHeld {
			if c.Stamina-delta <= minSprint {
				c.StaminaStatus = StaminaBelowMinimum
			}
			c.Stamina -= delta
			if moving {
				c.SetMovementStatus(MovementSprinting)
			} else {
				c.SetMovementStatus(MovementNormal)
				c.Stamina += delta
			}
		} else {
			c.Stamina += delta
			c.SetMovementStatus(MovementNormal)
		}
	case StaminaBelowMinimum:
		if sprintHeld {
			if c.Stamina-delta <= 0 {
				c.StaminaStatus = StaminaExhausted
				c.Stamina = 0
				c.SetMovementStatus(MovementNormal)
			} else {
				c.Stamina -= delta
				if moving {
					c.SetMovementStatus(MovementSprinting)
				} else {
					c.SetMovementStatus(MovementNormal)
					c.Stamina += delta
				}
			}
		} else {
			if c.Stamina+delta >= minSprint {
				c.StaminaStatus = StaminaNormal
			}
			c.Stamina += delta
			c.SetMovementStatus(MovementNormal)
		}
	case StaminaExhausted:
		if sprintHeld {
			c.Stamina = 0
		} else {
			c.StaminaStatus = StaminaExhaustedRecovering
			c.Stamina += delta
		}
		c.SetMovementStatus(MovementNormal)
	case StaminaExhaustedRecovering:
		if c.Stamina+delta >= minSprint {
			c.StaminaStatus = StaminaNormal
		}
		c.Stamina += delta
		c.SetMovementStatus(MovementNormal)
	}

	c.Stamina = clampRange(c.Stamina, 0, c.MaxStamina)
	return c.MovementStatus, c.StaminaStatus, c.Stamina
}

// ApplyDamage subtracts amount from health. Health is left at its raw value
// on the killing blow, so it may read negative until the next load. It
// reports whether this call killed the character.
func (c *Character) ApplyDamage(amount float64) bool {
	if c == nil || c.IsDead() || amount <= 0 {
		return false
	}
	c.Health -= amount
	if c.Health <= 0 {
		return c.Die()
	}
	return false
}

// Heal restores health up to MaxHealth.
func (c *Character) Heal(amount float64) {
	if c == nil || c.IsDead() || amount <= 0 {
		return
	}
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
}

// Die enters the terminal state. It reports false when already dead.
func (c *Character) Die() bool {
	if c == nil || c.IsDead() {
		return false
	}
	c.SetMovementStatus(MovementDead)
	if c.OnDeath != nil {
		c.OnDeath(c)
	}
	return true
}

// AddCoins adds collected coins.
func (c *Character) AddCoins(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.Coins += n
}

// Restore replaces the stat block from a loaded save and starts a fresh
// lifecycle in the Normal/Normal state. It is the only way out of Dead. A
// record with health <= 0 restores straight into Dead.
func (c *Character) Restore(health, maxHealth, stamina, maxStamina float64, coins int) {
	if c == nil {
		return
	}
	if maxHealth <= 0 {
		maxHealth = 1
	}
	if maxStamina < 0 {
		maxStamina = 0
	}
	c.MaxHealth = maxHealth
	c.Health = clampRange(health, 0, maxHealth)
	c.MaxStamina = maxStamina
	c.Stamina = clampRange(stamina, 0, maxStamina)
	if coins < 0 {
		coins = 0
	}
	c.Coins = coins
	c.StaminaStatus = StaminaNormal
	if health <= 0 {
		// A record without health restores a corpse; OnDeath already ran
		// for that death, so it is not run again.
		c.SetMovementStatus(MovementDead)
		return
	}
	c.SetMovementStatus(MovementNormal)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var CharacterComponent = NewComponent[Character]()
