// Package pkg provides the core libraries for Truchet triangle patterns.
//
// # Overview
//
// A pattern starts as a regular hexagon tiled by six equilateral triangles.
// Each triangle is recursively split into four until a depth policy stops
// it, and every surviving triangle is decorated with concentric arcs centred
// on its corners. Arc counts are planned so that lines always meet across a
// shared edge, which turns the mosaic into continuous curves.
//
// The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (geometry, grid, subdivision, arc planning)
//  2. [render] - Scenes and output sinks (SVG, PNG, PDF, JSON)
//  3. [pipeline] - Orchestration (resolve → generate → render)
//  4. [cache] - Scene and artifact caching (file, Redis)
//  5. [observability] - Hooks for logging and metrics
//
// # Architecture
//
// The typical data flow:
//
//	seed + options
//	      ↓
//	[pipeline] ResolveParams (draw unset parameters)
//	      ↓
//	[core/grid] hexagon of six triangles
//	      ↓
//	[core/subdivide] recursive 4-way splits
//	      ↓
//	[core/pattern] arc budgets → draw instructions
//	      ↓
//	[render/sink] SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import "github.com/matzehuels/truchet/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Seed: 7})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("truchet_triangles.svg", result.Artifacts["svg"], 0o644)
//
// Or drive the stages yourself:
//
//	params, _ := pipeline.ResolveParams(pipeline.Options{Seed: 7})
//	scene, stats, _ := pipeline.Generate(ctx, params)
//	svg := sink.RenderSVG(scene)
//
// # Determinism
//
// Every random decision is drawn from a PCG stream seeded by the pattern
// seed, in a fixed order. The same options produce byte-identical SVG on
// every platform, sequential or parallel.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/truchet/pkg/core
// [render]: https://pkg.go.dev/github.com/matzehuels/truchet/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/truchet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/truchet/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/truchet/pkg/observability
package pkg
