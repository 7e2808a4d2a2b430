package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/veldt-engine/veldt/internal/engine/block"
	"github.com/veldt-engine/veldt/internal/engine/config"
	"github.com/veldt-engine/veldt/internal/engine/cull"
	"github.com/veldt-engine/veldt/internal/engine/loader"
	"github.com/veldt-engine/veldt/internal/engine/world"
	"github.com/veldt-engine/veldt/internal/engine/world/gen"
)

// flyCamera is a fixed-lens camera moving along +X, standing in for the
// real renderer's camera.
type flyCamera struct {
	pos mgl32.Vec3
}

func (c flyCamera) Position() mgl32.Vec3 { return c.pos }

func (c flyCamera) ViewProjection() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 1000)
	view := mgl32.LookAtV(c.pos, c.pos.Add(mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func main() {
	cfg := config.Default()

	var (
		cfgPath string
		steps   int
	)
	flag.StringVar(&cfgPath, "config", "", "path to YAML config file")
	flag.IntVar(&steps, "steps", 600, "simulation steps to run")
	flag.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "render distance in chunks")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator (flat or noise)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain seed (0 = process-chosen)")
	flag.Float64Var(&cfg.Frequency, "frequency", cfg.Frequency, "noise frequency")
	flag.IntVar(&cfg.MinHeight, "min-height", cfg.MinHeight, "minimum terrain height")
	flag.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "maximum terrain height")
	flag.IntVar(&cfg.DirtDepth, "dirt-depth", cfg.DirtDepth, "dirt layer depth")
	flag.IntVar(&cfg.SurfaceHeight, "surface-height", cfg.SurfaceHeight, "flat generator surface height")
	flag.StringVar(&cfg.BlockData, "block-data", cfg.BlockData, "block definition JSON path")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if cfgPath != "" {
		fromFile, err := config.Load(cfgPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	registry := block.DefaultRegistry()
	if cfg.BlockData != "" {
		data, err := os.ReadFile(cfg.BlockData)
		if err != nil {
			log.Error("read block data", "error", err)
			os.Exit(1)
		}
		registry, err = block.LoadRegistry(data)
		if err != nil {
			log.Error("parse block data", "error", err)
			os.Exit(1)
		}
	}

	var (
		generator gen.Generator
		err       error
	)
	switch cfg.Generator {
	case "flat":
		generator, err = gen.NewFlatGenerator(cfg.SurfaceHeight, cfg.DirtDepth)
	default:
		if cfg.Seed == 0 {
			generator = gen.DefaultNoiseGenerator()
		} else {
			generator, err = gen.NewNoiseGenerator(cfg.Seed, cfg.Frequency, cfg.MinHeight, cfg.MaxHeight, cfg.DirtDepth)
		}
	}
	if err != nil {
		log.Error("build generator", "error", err)
		os.Exit(1)
	}

	w := world.NewWorld(generator, registry)
	ld, err := loader.New(w, cfg.RenderDistance, log)
	if err != nil {
		log.Error("build chunk loader", "error", err)
		os.Exit(1)
	}
	defer ld.Close()

	cm := cull.NewManager(cfg.RenderDistance, log)

	pos := mgl32.Vec3{8, float32(generator.HeightAt(8, 8) + 12), 8}
	ld.LoadInitialChunks(pos)

	// Fly east, one frame per step. With no real renderer attached the
	// loop doubles as the mesher: every generated chunk is marked ready.
	for i := 0; i < steps; i++ {
		pos = pos.Add(mgl32.Vec3{1.5, 0, 0})
		ld.Update(pos)

		for _, c := range w.LoadedChunks() {
			if c.Generated() && !c.HasMesh() {
				c.SetHasMesh(true)
			}
		}

		cm.Update(flyCamera{pos: pos}, pos)
		visible := cm.CullChunks(w.LoadedChunks())

		if i%60 == 0 {
			log.Info("frame",
				"step", i,
				"loaded", w.ChunkCount(),
				"visible", len(visible),
				"stats", cm.Stats().String())
		}
	}

	log.Info("simulation finished", "steps", steps, "loaded", w.ChunkCount())
}
