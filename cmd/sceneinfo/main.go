// sceneinfo imports a scene file without a window and reports what the viewer would load.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/engine/camera"
	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/internal/engine/scene"
	"github.com/Faultbox/scenepick/internal/engine/texture"
	"github.com/Faultbox/scenepick/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "meshes", "ls":
		cmdMeshes(args)
	case "ray":
		cmdRay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sceneinfo - headless scene import and picking utility

Usage:
  sceneinfo <command> [options]

Commands:
  info <scene>                  Show scene totals and texture cache stats
  meshes <scene>                List imported meshes
  ray [options] <x> <y>         Print the pick ray for a click

Examples:
  sceneinfo info model.glb
  sceneinfo meshes -v scene.gltf
  sceneinfo ray -mode forward 400 300`)
}

// importScene loads path with an in-memory texture uploader.
func importScene(path string, maxTexture int, verbose bool) (*scene.Model, *texture.Cache) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	cache := texture.NewCache(texture.NewFileDecoder(maxTexture), texture.NewMemoryUploader(), nil)
	im := scene.NewImporter(nil, cache, nil)
	return scene.LoadModel(im, path), cache
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	maxTexture := fs.Int("max-texture", 4096, "Downsize textures larger than N pixels (0 = never)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sceneinfo info <scene>")
		os.Exit(1)
	}

	m, cache := importScene(fs.Arg(0), *maxTexture, *verbose)
	defer cache.Close()
	defer logger.Sync()

	vertices, triangles, textures := m.Stats()
	hits, misses, failures := cache.Stats()
	b := m.Bounds()

	fmt.Printf("Scene:     %s\n", fs.Arg(0))
	fmt.Printf("Meshes:    %d\n", len(m.Meshes))
	fmt.Printf("Vertices:  %d\n", vertices)
	fmt.Printf("Triangles: %d\n", triangles)
	fmt.Printf("Textures:  %d (%d unique)\n", textures, cache.Len())
	if !b.IsEmpty() {
		fmt.Printf("Bounds:    %v .. %v\n", b.Min, b.Max)
	}
	fmt.Println()
	fmt.Println("Texture cache:")
	fmt.Printf("  hits      %d\n", hits)
	fmt.Printf("  misses    %d\n", misses)
	fmt.Printf("  failures  %d\n", failures)
}

func cmdMeshes(args []string) {
	fs := flag.NewFlagSet("meshes", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose logging")
	sortBy := fs.String("sort", "", "Sort by: tris, verts (default: import order)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sceneinfo meshes <scene>")
		os.Exit(1)
	}

	m, cache := importScene(fs.Arg(0), 0, *verbose)
	defer cache.Close()
	defer logger.Sync()

	meshes := append([]*scene.MeshData(nil), m.Meshes...)
	switch *sortBy {
	case "tris":
		sort.SliceStable(meshes, func(i, j int) bool {
			return meshes[i].TriangleCount() > meshes[j].TriangleCount()
		})
	case "verts":
		sort.SliceStable(meshes, func(i, j int) bool {
			return len(meshes[i].Vertices) > len(meshes[j].Vertices)
		})
	}

	fmt.Printf("%-32s %8s %8s %s\n", "MESH", "VERTS", "TRIS", "TEXTURES")
	for _, md := range meshes {
		tex := ""
		for i, t := range md.Textures {
			if i > 0 {
				tex += ","
			}
			if t.Valid() {
				tex += t.Kind.String()
			} else {
				tex += t.Kind.String() + "(missing)"
			}
		}
		fmt.Printf("%-32s %8d %8d %s\n", md.Name, len(md.Vertices), md.TriangleCount(), tex)
	}
}

func cmdRay(args []string) {
	fs := flag.NewFlagSet("ray", flag.ExitOnError)
	mode := fs.String("mode", "screen", "Picking mode: screen or forward")
	width := fs.Float64("width", 800, "Viewport width")
	height := fs.Float64("height", 600, "Viewport height")
	px := fs.Float64("px", 0, "Camera position X")
	py := fs.Float64("py", 0, "Camera position Y")
	pz := fs.Float64("pz", 3, "Camera position Z")
	yaw := fs.Float64("yaw", float64(camera.DefaultYaw), "Camera yaw in degrees")
	pitch := fs.Float64("pitch", float64(camera.DefaultPitch), "Camera pitch in degrees")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sceneinfo ray [options] <x> <y>")
		os.Exit(1)
	}

	var x, y float32
	if _, err := fmt.Sscan(fs.Arg(0), &x); err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad x: %v\n", err)
		os.Exit(1)
	}
	if _, err := fmt.Sscan(fs.Arg(1), &y); err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad y: %v\n", err)
		os.Exit(1)
	}

	m, err := picking.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cam := camera.NewFlyCamera(mgl32.Vec3{float32(*px), float32(*py), float32(*pz)}, float32(*yaw), float32(*pitch))
	ray := picking.Raycaster{Mode: m}.Cast(picking.PickRequest{
		Screen:   mgl32.Vec2{x, y},
		Viewport: picking.Viewport{Width: float32(*width), Height: float32(*height)},
		Camera:   cam,
	})
	start, end := ray.DebugSegment()

	fmt.Printf("Mode:      %s\n", m)
	fmt.Printf("Origin:    %v\n", ray.Origin)
	fmt.Printf("Direction: %v\n", ray.Direction)
	fmt.Printf("Segment:   %v .. %v\n", start, end)
}
