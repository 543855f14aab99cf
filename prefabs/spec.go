package prefabs

import (
	"fmt"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DecodeSpec re-decodes a loosely typed YAML value (such as a level entity's
// props) into T.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type AttackSpec struct {
	Section  string  `yaml:"section"`
	PlayRate float64 `yaml:"play_rate"`
}

type PlayerSpec struct {
	Name             string                     `yaml:"name"`
	Health           float64                    `yaml:"health"`
	MaxHealth        float64                    `yaml:"max_health"`
	Stamina          float64                    `yaml:"stamina"`
	MaxStamina       float64                    `yaml:"max_stamina"`
	StaminaDrainRate float64                    `yaml:"stamina_drain_rate"`
	MinSprintStamina float64                    `yaml:"min_sprint_stamina"`
	RunningSpeed     float64                    `yaml:"running_speed"`
	SprintingSpeed   float64                    `yaml:"sprinting_speed"`
	InterpSpeed      float64                    `yaml:"interp_speed"`
	TurnRate         float64                    `yaml:"turn_rate"`
	LookUpRate       float64                    `yaml:"look_up_rate"`
	JumpSpeed        float64                    `yaml:"jump_speed"`
	Gravity          float64                    `yaml:"gravity"`
	Radius           float64                    `yaml:"radius"`
	DetectRadius     float64                    `yaml:"detect_radius"`
	PickupRadius     float64                    `yaml:"pickup_radius"`
	RetargetInterval float64                    `yaml:"retarget_interval"`
	Attacks          []AttackSpec               `yaml:"attacks"`
	Sections         []component.MontageSection `yaml:"sections"`
}

// Tuning extracts the stamina/speed constants.
func (s PlayerSpec) Tuning() component.CharacterTuning {
	return component.CharacterTuning{
		StaminaDrainRate: s.StaminaDrainRate,
		MinSprintStamina: s.MinSprintStamina,
		RunningSpeed:     s.RunningSpeed,
		SprintingSpeed:   s.SprintingSpeed,
	}
}

// AttackVariants converts the attack list, falling back to the defaults.
func (s PlayerSpec) AttackVariants() []component.AttackVariant {
	if len(s.Attacks) == 0 {
		return component.DefaultAttackVariants()
	}
	out := make([]component.AttackVariant, 0, len(s.Attacks))
	for _, a := range s.Attacks {
		out = append(out, component.AttackVariant{Section: a.Section, PlayRate: a.PlayRate})
	}
	return out
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Name         string                     `yaml:"name"`
	Health       float64                    `yaml:"health"`
	MoveSpeed    float64                    `yaml:"move_speed"`
	AgroRadius   float64                    `yaml:"agro_radius"`
	CombatRadius float64                    `yaml:"combat_radius"`
	AttackDamage float64                    `yaml:"attack_damage"`
	AttackDelay  float64                    `yaml:"attack_delay"`
	DeathDelay   float64                    `yaml:"death_delay"`
	Radius       float64                    `yaml:"radius"`
	Script       string                     `yaml:"script"`
	Sections     []component.MontageSection `yaml:"sections"`
}

func LoadEnemySpec(filename string) (*EnemySpec, error) {
	if filename == "" {
		filename = "enemy.yaml"
	}
	spec, err := LoadSpec[EnemySpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WeaponSpec struct {
	Name   string  `yaml:"name"`
	Damage float64 `yaml:"damage"`
	Reach  float64 `yaml:"reach"`
	Radius float64 `yaml:"radius"`
}

// WeaponCatalog maps saved weapon names to their specs.
type WeaponCatalog struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

// Lookup finds a weapon by name.
func (c *WeaponCatalog) Lookup(name string) (WeaponSpec, bool) {
	if c == nil {
		return WeaponSpec{}, false
	}
	for _, w := range c.Weapons {
		if w.Name == name {
			return w, true
		}
	}
	return WeaponSpec{}, false
}

func LoadWeaponCatalog() (*WeaponCatalog, error) {
	spec, err := LoadSpec[WeaponCatalog]("weapons.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// PickupSpec is the props block of a pickup level entity.
type PickupSpec struct {
	Kind         string  `yaml:"kind"`
	Count        int     `yaml:"count"`
	Amount       float64 `yaml:"amount"`
	Radius       float64 `yaml:"radius"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobSpeed     float64 `yaml:"bob_speed"`
}

// PlatformSpec is the props block of a floating platform.
type PlatformSpec struct {
	Offset      common.Vec3 `yaml:"offset"`
	InterpSpeed float64     `yaml:"interp_speed"`
	InterpTime  float64     `yaml:"interp_time"`
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
}

// FloorSwitchSpec is the props block of a floor switch and its door.
type FloorSwitchSpec struct {
	Door        common.Vec3 `yaml:"door"`
	HalfExtents common.Vec3 `yaml:"half_extents"`
	SwitchTime  float64     `yaml:"switch_time"`
	DoorRaise   float64     `yaml:"door_raise"`
	SwitchDrop  float64     `yaml:"switch_drop"`
	TweenSpeed  float64     `yaml:"tween_speed"`
	DoorWidth   float64     `yaml:"door_width"`
}

// WallSpec is the props block of a static wall segment.
type WallSpec struct {
	To        common.Vec3 `yaml:"to"`
	Thickness float64     `yaml:"thickness"`
}

// TransitionSpec is the props block of a level exit volume.
type TransitionSpec struct {
	Target string  `yaml:"target"`
	Radius float64 `yaml:"radius"`
}
