// Package postgres persists player saves against a Postgres players table,
// deduplicating concurrent loads of the same PlayerId through a
// singleflight.Group the way the façade's reconnect race requires (§4.13).
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/cube"
	"github.com/tile-ward/gridworld/item"
	"github.com/tile-ward/gridworld/playerid"
)

// Schema is the DDL PlayerStore expects to already exist. Callers run it
// once at deploy time; PlayerStore never issues DDL itself.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
	id         text PRIMARY KEY,
	pos_x      integer NOT NULL,
	pos_y      integer NOT NULL,
	inventory  jsonb NOT NULL,
	health     integer NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PlayerStore persists creature.PlayerSave rows in Postgres via pgx.
type PlayerStore struct {
	pool  *pgxpool.Pool
	group singleflight.Group
}

// Open connects to Postgres using connString (a standard libpq DSN or URL).
func Open(ctx context.Context, connString string) (*PlayerStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &PlayerStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PlayerStore) Close() {
	s.pool.Close()
}

// SavePlayer upserts a player's current body snapshot.
func (s *PlayerStore) SavePlayer(ctx context.Context, save creature.PlayerSave) error {
	inv, err := json.Marshal(save.Inventory)
	if err != nil {
		return fmt.Errorf("postgres: marshal inventory: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO players (id, pos_x, pos_y, inventory, health, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			inventory = excluded.inventory,
			health = excluded.health,
			updated_at = now()`,
		string(save.Name), save.Pos.X, save.Pos.Y, inv, save.Health)
	if err != nil {
		return fmt.Errorf("postgres: save player %q: %w", save.Name, err)
	}
	return nil
}

// LoadPlayer fetches a player's last save. Concurrent LoadPlayer calls for
// the same id are collapsed into a single query via the singleflight group,
// so a client that opens two sockets before its first Join clears costs one
// round trip rather than two.
func (s *PlayerStore) LoadPlayer(ctx context.Context, id playerid.PlayerId) (creature.PlayerSave, bool, error) {
	v, err, _ := s.group.Do(string(id), func() (interface{}, error) {
		return s.loadPlayer(ctx, id)
	})
	if err != nil {
		return creature.PlayerSave{}, false, err
	}
	result := v.(loadResult)
	return result.save, result.found, nil
}

type loadResult struct {
	save  creature.PlayerSave
	found bool
}

func (s *PlayerStore) loadPlayer(ctx context.Context, id playerid.PlayerId) (loadResult, error) {
	var (
		posX, posY, health int
		invBuf             []byte
	)
	row := s.pool.QueryRow(ctx, `SELECT pos_x, pos_y, inventory, health FROM players WHERE id = $1`, string(id))
	if err := row.Scan(&posX, &posY, &invBuf, &health); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return loadResult{}, nil
		}
		return loadResult{}, fmt.Errorf("postgres: load player %q: %w", id, err)
	}
	var stacks []item.Stack
	if err := json.Unmarshal(invBuf, &stacks); err != nil {
		return loadResult{}, fmt.Errorf("postgres: unmarshal inventory for %q: %w", id, err)
	}
	return loadResult{
		save: creature.PlayerSave{
			Name:      id,
			Pos:       cube.Pos{X: posX, Y: posY},
			Inventory: stacks,
			Health:    health,
		},
		found: true,
	}, nil
}
