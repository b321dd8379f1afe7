// Command gridworld wires a World to the network façade and persistence
// adapters described by a TOML config file, and runs the tick loop until
// interrupted.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/creature"
	"github.com/tile-ward/gridworld/net/facade"
	"github.com/tile-ward/gridworld/persistence/leveldb"
	"github.com/tile-ward/gridworld/persistence/postgres"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/worldgen"
	"github.com/tile-ward/gridworld/worldsim"
)

// tickInterval is the engine's fixed step duration (§6 "step duration").
const tickInterval = 50 * time.Millisecond

func main() {
	log := slog.Default()

	configPath := flag.String("config", "gridworld.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		var malformed *ErrConfigMalformed
		if errors.As(err, &malformed) {
			log.Error("config: malformed, exiting", "err", err)
			os.Exit(1)
		}
		log.Warn("config: file not found, using defaults", "err", err)
		cfg = DefaultConfig()
	}

	base := buildBaseMap(log, cfg)

	var store *leveldb.WorldStore
	if cfg.Persistence.LevelDBDir != "" {
		store, err = leveldb.Open(cfg.Persistence.LevelDBDir)
		if err != nil {
			log.Error("leveldb: open failed, exiting", "err", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	var players *postgres.PlayerStore
	if cfg.Persistence.PostgresDSN != "" {
		players, err = postgres.Open(context.Background(), cfg.Persistence.PostgresDSN)
		if err != nil {
			log.Error("postgres: connect failed, player saves disabled", "err", err)
		} else {
			defer players.Close()
		}
	}

	w := openWorld(log, base, store)

	var rdb *redis.Client
	if cfg.Network.RedisAddr != "" {
		opts, err := redis.ParseURL(cfg.Network.RedisAddr)
		if err != nil {
			opts = &redis.Options{Addr: cfg.Network.RedisAddr}
		}
		rdb = redis.NewClient(opts)
	}

	srv := facade.New(256, facade.WithLogger(log), facade.WithSessionRegistry(rdb))
	http.Handle("/ws", srv)
	go func() {
		if err := http.ListenAndServe(cfg.Network.ListenAddr, nil); err != nil {
			log.Error("facade: listener stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runTickLoop(ctx, log, w, srv, cfg, players, store)
}

func buildBaseMap(log *slog.Logger, cfg Config) worldgen.BaseMap {
	if cfg.Map.Kind == "tiled" {
		f, err := os.Open(cfg.Map.Path)
		if err != nil {
			log.Error("worldgen: tiled map open failed, exiting", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		m, err := worldgen.ParseTiled(bufio.NewScanner(f))
		if err != nil {
			log.Error("worldgen: tiled map parse failed, exiting", "err", err)
			os.Exit(1)
		}
		return m
	}
	return worldgen.NewInfinite(cfg.Map.Seed)
}

func openWorld(log *slog.Logger, base worldgen.BaseMap, store *leveldb.WorldStore) *worldsim.World {
	if store == nil {
		return worldsim.New(base)
	}
	save, err := store.Load()
	if err != nil {
		log.Error("leveldb: load failed, exiting", "err", err)
		os.Exit(1)
	}
	return worldsim.Load(base, save)
}

// runTickLoop drives the engine's fixed-step heartbeat (§5): each tick,
// drain the façade's Action channel, apply every control to the World,
// advance one tick, assemble and deliver per-player views, then clear
// per-tick scratch state.
func runTickLoop(ctx context.Context, log *slog.Logger, w *worldsim.World, srv *facade.Server, cfg Config, players *postgres.PlayerStore, store *leveldb.WorldStore) {
	tc := time.NewTicker(tickInterval)
	defer tc.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("gridworld: shutting down")
			if store != nil {
				if err := store.Save(w.Save()); err != nil {
					log.Error("leveldb: final save failed", "err", err)
				}
			}
			return
		case <-tc.C:
			drainActions(ctx, log, w, srv, cfg, players)
			w.Tick()
			srv.Deliver(w.View())
			w.ClearStep()
			srv.RefreshSessions()
		}
	}
}

func drainActions(ctx context.Context, log *slog.Logger, w *worldsim.World, srv *facade.Server, cfg Config, players *postgres.PlayerStore) {
	for {
		select {
		case act := <-srv.Actions():
			applyAction(ctx, log, w, cfg, players, act)
		default:
			return
		}
	}
}

func applyAction(ctx context.Context, log *slog.Logger, w *worldsim.World, cfg Config, players *postgres.PlayerStore, act action.Action) {
	switch act.Kind {
	case action.Join:
		save := loadPlayerSave(ctx, log, players, act.Player)
		w.AddPlayer(act.Player, save, cfg.PlayerConfig())
	case action.Configure:
		w.Configure(act.Player, act.Config)
	case action.Leave:
		save, ok := w.RemovePlayer(act.Player)
		if ok {
			savePlayer(ctx, log, players, save)
		}
	case action.Input:
		w.ApplyControl(act.Player, act.Control)
	}
}

func loadPlayerSave(ctx context.Context, log *slog.Logger, players *postgres.PlayerStore, id playerid.PlayerId) *creature.PlayerSave {
	if players == nil {
		return nil
	}
	save, ok, err := players.LoadPlayer(ctx, id)
	if err != nil {
		log.Warn("postgres: load player failed, treating as new", "player", id, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &save
}

func savePlayer(ctx context.Context, log *slog.Logger, players *postgres.PlayerStore, save creature.PlayerSave) {
	if players == nil {
		return
	}
	if err := players.SavePlayer(ctx, save); err != nil {
		log.Warn("postgres: save player failed", "player", save.Name, "err", err)
	}
}
