package entity

import (
	"fmt"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

func NewEnemy(w *ecs.World) (ecs.Entity, error) {
	return NewEnemyAt(w, "", common.Vec3{})
}

// NewEnemyAt builds the enemy described by prefab (enemy.yaml when empty)
// at the given location.
func NewEnemyAt(w *ecs.World, prefab string, at common.Vec3) (ecs.Entity, error) {
	enemySpec, err := prefabs.LoadEnemySpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add %s: %w", what, err)
	}

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return fail("enemy tag", err)
	}

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Name:         enemySpec.Name,
		MoveSpeed:    enemySpec.MoveSpeed,
		AgroRadius:   enemySpec.AgroRadius,
		CombatRadius: enemySpec.CombatRadius,
		AttackDamage: enemySpec.AttackDamage,
		AttackDelay:  enemySpec.AttackDelay,
		DeathDelay:   enemySpec.DeathDelay,
	}); err != nil {
		return fail("enemy component", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(enemySpec.Health)); err != nil {
		return fail("health", err)
	}

	if err := ecs.Add(w, entity, component.AIStateComponent.Kind(), &component.AIState{Script: enemySpec.Script}); err != nil {
		return fail("ai state", err)
	}

	if err := SetEntityTransform(w, entity, at, 0); err != nil {
		return fail("transform", err)
	}

	if err := ecs.Add(w, entity, component.MovementComponent.Kind(), &component.Movement{
		MaxSpeed: enemySpec.MoveSpeed,
		Grounded: true,
	}); err != nil {
		return fail("movement", err)
	}

	if err := ecs.Add(w, entity, component.AnimatorComponent.Kind(), component.NewAnimator(enemySpec.Sections)); err != nil {
		return fail("animator", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyActor,
		Radius: enemySpec.Radius,
	}); err != nil {
		return fail("physics body", err)
	}

	return entity, nil
}
