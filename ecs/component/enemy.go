package component

// Enemy holds tuning and runtime flags for a hostile actor.
type Enemy struct {
	Name         string
	MoveSpeed    float64
	AgroRadius   float64
	CombatRadius float64
	AttackDamage float64
	AttackDelay  float64
	DeathDelay   float64

	// Target is the handle of the character this enemy is fighting.
	Target uint64
	// HasValidTarget is cleared when the target dies so the enemy stops
	// attacking a corpse.
	HasValidTarget bool

	Attacking   bool
	AttackTimer float64
	DeathTimer  float64
}

var EnemyComponent = NewComponent[Enemy]()
