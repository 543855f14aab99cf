package system

import (
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

const enemyAttackSection = "Attack"

// EnemyAISystem drives enemies through their tengo state scripts. It owns
// target acquisition and turns attack animation notifies into damage.
type EnemyAISystem struct {
	runtimes map[ecs.Entity]*enemyScript
	failed   map[string]bool
}

func NewEnemyAISystem() *EnemyAISystem {
	return &EnemyAISystem{
		runtimes: make(map[ecs.Entity]*enemyScript),
		failed:   make(map[string]bool),
	}
}

// Invalidate drops every compiled runtime for path so the next tick reloads
// the script. An empty path drops all of them.
func (s *EnemyAISystem) Invalidate(path string) {
	if s == nil {
		return
	}
	for e, rt := range s.runtimes {
		if path == "" || rt.path == path {
			delete(s.runtimes, e)
		}
	}
	if path == "" {
		s.failed = make(map[string]bool)
		return
	}
	delete(s.failed, path)
}

// Reset forgets all runtimes. Used when the world is rebuilt.
func (s *EnemyAISystem) Reset() {
	if s == nil {
		return
	}
	s.runtimes = make(map[ecs.Entity]*enemyScript)
}

type enemyContext struct {
	w         *ecs.World
	self      ecs.Entity
	enemy     *component.Enemy
	tf        *component.Transform
	player    ecs.Entity
	playerPos common.Vec3
	hasPlayer bool
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	player, playerPos, playerAlive := findPlayer(w)

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.AIStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, state *component.AIState, tf *component.Transform) {
		dead := enemyDead(w, e)

		if enemy.AttackTimer > 0 {
			enemy.AttackTimer -= dt
		}

		if !dead {
			updateEnemyTarget(enemy, tf.Position, player, playerPos, playerAlive)
		}

		ctx := &enemyContext{
			w:         w,
			self:      e,
			enemy:     enemy,
			tf:        tf,
			player:    player,
			playerPos: playerPos,
			hasPlayer: playerAlive,
		}

		if !dead {
			s.handleAttackNotifies(ctx)
		}

		rt := s.runtimeFor(e, state)
		if rt == nil {
			return
		}
		if err := rt.step(state, ctx.engine(rt)); err != nil {
			log.Printf("ai: entity=%v script=%s: %v", e, rt.path, err)
			s.failed[rt.path] = true
			delete(s.runtimes, e)
		}
	})
}

func (s *EnemyAISystem) runtimeFor(e ecs.Entity, state *component.AIState) *enemyScript {
	if rt, ok := s.runtimes[e]; ok && rt.path == state.Script {
		return rt
	}
	if state.Script == "" || s.failed[state.Script] {
		return nil
	}
	rt, err := loadEnemyScript(state.Script)
	if err != nil {
		log.Printf("ai: entity=%v: %v", e, err)
		s.failed[state.Script] = true
		return nil
	}
	s.runtimes[e] = rt
	return rt
}

// updateEnemyTarget acquires the player when alive and inside the agro
// radius and drops it once the player is gone.
func updateEnemyTarget(enemy *component.Enemy, self common.Vec3, player ecs.Entity, playerPos common.Vec3, playerAlive bool) {
	if !playerAlive {
		enemy.HasValidTarget = false
		enemy.Target = 0
		return
	}
	if enemy.HasValidTarget {
		return
	}
	if self.Dist(playerPos) <= enemy.AgroRadius {
		enemy.HasValidTarget = true
		enemy.Target = player.Handle()
	}
}

// handleAttackNotifies deals damage on the ActivateCollision notify of the
// attack animation and clears the attacking flag when it ends.
func (s *EnemyAISystem) handleAttackNotifies(ctx *enemyContext) {
	anim, ok := ecs.Get(ctx.w, ctx.self, component.AnimatorComponent.Kind())
	if !ok {
		return
	}
	if !ctx.enemy.Attacking {
		return
	}
	if anim.HasFired(component.NotifyActivateCollision) && ctx.enemy.HasValidTarget && ctx.hasPlayer {
		if ctx.tf.Position.Dist(ctx.playerPos) <= ctx.enemy.CombatRadius {
			ctx.w.Events().Emit(EventDamage, DamageEvent{
				Target: ctx.player.Handle(),
				Causer: ctx.self.Handle(),
				Amount: ctx.enemy.AttackDamage,
			})
		}
	}
	if anim.HasFired(component.NotifyAttackEnd) || !anim.Playing || anim.Section != enemyAttackSection {
		ctx.enemy.Attacking = false
	}
}

func (c *enemyContext) engine(rt *enemyScript) *tengo.ImmutableMap {
	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) tengo.Object {
		return &tengo.UserFunction{Name: name, Value: f}
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"transition": fn("transition", func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			rt.request(objectAsString(args[0]))
			return tengo.UndefinedValue, nil
		}),
		"distance_to_player": fn("distance_to_player", func(args ...tengo.Object) (tengo.Object, error) {
			if !c.hasPlayer {
				return &tengo.Float{Value: -1}, nil
			}
			return &tengo.Float{Value: c.tf.Position.Dist(c.playerPos)}, nil
		}),
		"has_valid_target": fn("has_valid_target", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(c.enemy.HasValidTarget), nil
		}),
		"agro_radius": fn("agro_radius", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: c.enemy.AgroRadius}, nil
		}),
		"combat_radius": fn("combat_radius", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: c.enemy.CombatRadius}, nil
		}),
		"is_dead": fn("is_dead", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(enemyDead(c.w, c.self)), nil
		}),
		"is_attacking": fn("is_attacking", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(c.enemy.Attacking), nil
		}),
		"move_toward_player": fn("move_toward_player", func(args ...tengo.Object) (tengo.Object, error) {
			c.moveTowardPlayer()
			return tengo.UndefinedValue, nil
		}),
		"stop": fn("stop", func(args ...tengo.Object) (tengo.Object, error) {
			c.stop()
			return tengo.UndefinedValue, nil
		}),
		"face_player": fn("face_player", func(args ...tengo.Object) (tengo.Object, error) {
			if c.hasPlayer {
				c.tf.Rotation = common.LookAtYaw(c.tf.Position, c.playerPos)
			}
			return tengo.UndefinedValue, nil
		}),
		"attack_player": fn("attack_player", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(c.attack()), nil
		}),
		"log": fn("log", func(args ...tengo.Object) (tengo.Object, error) {
			parts := make([]string, 0, len(args))
			for _, a := range args {
				parts = append(parts, objectAsString(a))
			}
			log.Printf("ai: entity=%v script: %s", c.self, strings.Join(parts, " "))
			return tengo.UndefinedValue, nil
		}),
	}}
}

func (c *enemyContext) moveTowardPlayer() {
	mv, ok := ecs.Get(c.w, c.self, component.MovementComponent.Kind())
	if !ok || !c.hasPlayer {
		return
	}
	dir := c.playerPos.Sub(c.tf.Position)
	dir.Z = 0
	mv.Direction = dir.Normalize()
	mv.MaxSpeed = c.enemy.MoveSpeed
	mv.MovingForward = !mv.Direction.IsNearlyZero()
}

func (c *enemyContext) stop() {
	mv, ok := ecs.Get(c.w, c.self, component.MovementComponent.Kind())
	if !ok {
		return
	}
	mv.Direction = common.Vec3{}
	mv.MovingForward = false
	mv.MovingRight = false
}

// attack starts the attack montage when the cooldown has elapsed.
func (c *enemyContext) attack() bool {
	if c.enemy.Attacking || c.enemy.AttackTimer > 0 || !c.enemy.HasValidTarget {
		return false
	}
	anim, ok := ecs.Get(c.w, c.self, component.AnimatorComponent.Kind())
	if !ok || !anim.PlayMontage(1, enemyAttackSection) {
		return false
	}
	c.stop()
	c.enemy.Attacking = true
	c.enemy.AttackTimer = c.enemy.AttackDelay
	return true
}

func enemyDead(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	return ok && !h.IsAlive()
}

// findPlayer returns the player entity, its position and whether it can be
// targeted.
func findPlayer(w *ecs.World) (ecs.Entity, common.Vec3, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, common.Vec3{}, false
	}
	tf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return player, common.Vec3{}, false
	}
	if c, ok := ecs.Get(w, player, component.CharacterComponent.Kind()); ok && c.IsDead() {
		return player, tf.Position, false
	}
	return player, tf.Position, true
}
