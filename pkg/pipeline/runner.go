package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/truchet/pkg/cache"
	"github.com/matzehuels/truchet/pkg/observability"
	"github.com/matzehuels/truchet/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// OnStage, if set, is called as Execute enters each stage.
	OnStage func(stage Stage, p Params)
}

// Stage names a step of [Runner.Execute].
type Stage string

const (
	StageGenerate Stage = "generate"
	StageRender   Stage = "render"
)

func (r *Runner) enter(stage Stage, p Params) {
	if r.OnStage != nil {
		r.OnStage(stage, p)
	}
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Resolve
	params, err := ResolveParams(opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("resolved parameters",
		"seed", params.Seed,
		"min_depth", params.MinDepth,
		"max_depth", params.MaxDepth,
		"split_chance", params.SplitChance,
		"max_lines", params.MaxLines,
		"line_spacing", params.LineSpacing)

	result := &Result{Params: params}

	// Stage 2: Generate
	r.enter(StageGenerate, params)
	scene, stats, sceneHit, err := r.GenerateWithCacheInfo(ctx, params, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Scene = scene
	result.Stats = stats
	result.CacheInfo.SceneHit = sceneHit

	sceneData, err := json.Marshal(scene)
	if err != nil {
		return nil, fmt.Errorf("serialize scene: %w", err)
	}
	result.SceneHash = cache.Hash(sceneData)

	if !sceneHit {
		for _, lvl := range stats.Levels {
			r.Logger.Debug("subdivided level", "level", lvl.Level, "split", lvl.Split, "leaves", lvl.Leaves)
		}
	}
	r.Logger.Info("generated pattern",
		"leaves", stats.Leaves,
		"instructions", stats.Instructions,
		"cached", sceneHit,
		"duration", stats.GenerateTime)

	// Stage 3: Render
	r.enter(StageRender, params)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, result.SceneHash, params, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedScene is the cache representation of a generated scene.
type cachedScene struct {
	Scene render.Scene `json:"scene"`
	Stats Stats        `json:"stats"`
}

// GenerateWithCacheInfo generates the scene for p with caching and returns
// cache hit info. With refresh set, the cache is neither read nor written.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, p Params, refresh bool) (render.Scene, Stats, bool, error) {
	cacheKey := r.Keyer.SceneKey(p.SceneKeyOpts())

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedScene
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return cached.Scene, cached.Stats, true, nil
			}
			// If deserialization fails, fall through to regenerate
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	observability.Pipeline().OnGenerateStart(ctx, p.Seed)
	scene, stats, err := Generate(ctx, p)
	observability.Pipeline().OnGenerateComplete(ctx, p.Seed, stats.Instructions, stats.GenerateTime, err)
	if err != nil {
		return render.Scene{}, Stats{}, false, err
	}

	if !refresh {
		if data, err := json.Marshal(cachedScene{Scene: scene, Stats: stats}); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err == nil {
				observability.Cache().OnCacheSet(ctx, "scene", len(data))
			}
		}
	}

	return scene, stats, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, sceneHash string, p Params, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(scene, p, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
