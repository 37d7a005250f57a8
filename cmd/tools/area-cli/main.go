package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/annel0/mmo-blockarea/internal/app"
	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/config"
	"github.com/annel0/mmo-blockarea/internal/edit"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	_ "github.com/annel0/mmo-blockarea/internal/world/block/implementations"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (default $GAME_CONFIG)")
		command    = flag.String("cmd", "stats", "Command: export, paste, fill, stats, list")
		from       = flag.String("from", "", "Region corner x,y,z")
		to         = flag.String("to", "", "Opposite region corner x,y,z")
		at         = flag.String("at", "", "Paste position x,y,z")
		name       = flag.String("name", "", "Prefab name")
		strategy   = flag.String("strategy", "overwrite", "Merge strategy for paste")
		rotate     = flag.Int("rotate", 0, "Clockwise quarter turns before paste")
		mirror     = flag.String("mirror", "", "Mirror plane before paste: xy, xz, yz")
		state      = flag.String("block", "stone", "Block for fill: name[:meta] or id[:meta]")
		timeout    = flag.Duration("timeout", time.Minute, "Operation timeout")
	)
	flag.Parse()

	// Консоль отдаем под вывод команд
	logging.SetDefaultLogger(logging.NewWriterLogger("area-cli", os.Stderr, logging.WARN))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to start: %v", err)
	}
	defer a.Close()

	sess := a.Edit.OpenSession("area-cli")
	defer a.Edit.CloseSession(sess.ID)

	switch *command {
	case "export":
		err = exportPrefab(ctx, sess, mustRegion(*from, *to), *name)
	case "paste":
		err = pastePrefab(ctx, sess, &PasteOptions{
			Name:     *name,
			At:       mustVec(*at, "at"),
			Strategy: *strategy,
			Rotate:   *rotate,
			Mirror:   *mirror,
		})
	case "fill":
		err = fillRegion(ctx, sess, mustRegion(*from, *to), *state)
	case "stats":
		err = showStats(ctx, sess, mustRegion(*from, *to))
	case "list":
		err = listPrefabs(ctx, a)
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: export, paste, fill, stats, list")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("❌ %s failed: %v", *command, err)
	}

	// Измененные чанки сохраняются до выхода
	if *command == "paste" || *command == "fill" {
		n, err := a.World.SaveWorld(true)
		if err != nil {
			log.Fatalf("❌ Failed to save world: %v", err)
		}
		fmt.Printf("💾 Saved %d chunks\n", n)
	}
}

type PasteOptions struct {
	Name     string
	At       vec.Vec3
	Strategy string
	Rotate   int
	Mirror   string
}

// exportPrefab копирует регион мира и сохраняет его под именем
func exportPrefab(ctx context.Context, sess *edit.Session, region vec.Cuboid, name string) error {
	if err := sess.Copy(ctx, region); err != nil {
		return err
	}
	if err := sess.SaveClipboard(ctx, name); err != nil {
		return err
	}
	fmt.Printf("📦 Exported %s..%s as %q (%s)\n", region.P1, region.P2, name, sess.Clipboard().Size())
	return nil
}

// pastePrefab загружает заготовку, применяет преобразования и вставляет в мир
func pastePrefab(ctx context.Context, sess *edit.Session, opts *PasteOptions) error {
	s, err := blockarea.ParseMergeStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	if err := sess.LoadClipboard(ctx, opts.Name); err != nil {
		return err
	}

	turns := ((opts.Rotate % 4) + 4) % 4
	for i := 0; i < turns; i++ {
		if err := sess.RotateClipboardCW(); err != nil {
			return err
		}
	}
	if opts.Mirror != "" {
		plane, err := edit.ParsePlane(opts.Mirror)
		if err != nil {
			return err
		}
		if err := sess.MirrorClipboard(plane); err != nil {
			return err
		}
	}

	changed, err := sess.Paste(ctx, opts.At, s)
	if err != nil {
		return err
	}
	fmt.Printf("🧱 Pasted %q at %s with %s: %d blocks changed\n", opts.Name, opts.At, s, changed)
	return nil
}

func fillRegion(ctx context.Context, sess *edit.Session, region vec.Cuboid, spec string) error {
	st, err := block.ParseState(spec)
	if err != nil {
		return err
	}
	changed, err := sess.Fill(ctx, region, st)
	if err != nil {
		return err
	}
	fmt.Printf("🧱 Filled %s..%s with %s: %d blocks changed\n", region.P1, region.P2, st, changed)
	return nil
}

// showStats выводит статистику содержимого региона
func showStats(ctx context.Context, sess *edit.Session, region vec.Cuboid) error {
	st, err := sess.Stats(ctx, region)
	if err != nil {
		return err
	}

	fmt.Printf("📊 Region %s..%s\n", st.Bounds.P1, st.Bounds.P2)
	fmt.Printf("   Volume:  %d\n", st.Volume)
	fmt.Printf("   Non-air: %d\n", st.NonAir)
	fmt.Printf("   Solid:   %d\n", st.Solid)
	if st.NonAir > 0 {
		fmt.Printf("   Content: %s..%s\n", st.Content.P1, st.Content.P2)
	}

	types := make([]block.Type, 0, len(st.ByType))
	for t := range st.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return st.ByType[types[i]] > st.ByType[types[j]] })
	for _, t := range types {
		fmt.Printf("   %-20s %d\n", typeName(t), st.ByType[t])
	}
	return nil
}

func listPrefabs(ctx context.Context, a *app.App) error {
	names, err := a.Prefabs.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("📭 No prefabs")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func typeName(t block.Type) string {
	if b, ok := block.Get(t); ok {
		return b.Name()
	}
	return fmt.Sprintf("#%d", t)
}

func mustRegion(from, to string) vec.Cuboid {
	return vec.NewCuboid(mustVec(from, "from"), mustVec(to, "to"))
}

func mustVec(s, flagName string) vec.Vec3 {
	v, err := parseVec(s)
	if err != nil {
		log.Fatalf("❌ Invalid -%s: %v", flagName, err)
	}
	return v
}

// parseVec разбирает координаты вида "x,y,z"
func parseVec(s string) (vec.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vec.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return vec.Vec3{}, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		c[i] = n
	}
	return vec.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
