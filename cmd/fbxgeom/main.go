// fbxgeom is a CLI for assembling FBX-style geometry into render-ready
// meshes and exporting them as glTF or OBJ.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/fbxgeom/internal/config"
	"github.com/Faultbox/fbxgeom/internal/logger"
	"github.com/Faultbox/fbxgeom/pkg/export"
	"github.com/Faultbox/fbxgeom/pkg/fbxtree"
	"github.com/Faultbox/fbxgeom/pkg/geometry"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "convert":
		cmdConvert(cfg, args[1:])
	case "inspect":
		cmdInspect(args[1:])
	case "selftest":
		cmdSelftest(cfg)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fbxgeom - FBX geometry assembly and export

Usage:
  fbxgeom [flags] <command>

Commands:
  convert <sample>   Assemble a bundled sample scene and export it
  inspect <sample>   Print a sample scene's element tree
  selftest           Assemble every sample and verify the results

Samples: ` + strings.Join(sampleNames(), ", ") + `

Flags (before the command):
  -config <path>     Config file
  -format <fmt>      Export format: gltf or obj
  -out <dir>         Output directory
  -debug             Debug logging
  -log-file <path>   Also log to file
  -no-normals, -no-tangents, -no-colors, -no-uvs, -no-materials

Examples:
  fbxgeom convert cube
  fbxgeom -format obj -out ./meshes convert multimat
  fbxgeom inspect quad`)
}

func cmdConvert(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fbxgeom convert <sample>")
		os.Exit(1)
	}

	doc, err := sampleDocument(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scene, err := geometry.ImportScene(doc, cfg.Import.Options())
	if err != nil {
		logger.Error("import failed", zap.Error(err))
		os.Exit(1)
	}

	for _, obj := range scene.Geometries() {
		logger.Info("assembled geometry",
			zap.String("name", obj.Name),
			zap.Int("triangles", obj.Geometry.TriangleCount()),
			zap.Int("vertices", len(obj.Geometry.Positions)),
			zap.Int("materials", len(obj.Geometry.Materials)))
	}

	if err := os.MkdirAll(cfg.Export.OutDir, 0755); err != nil {
		logger.Error("creating output directory", zap.Error(err))
		os.Exit(1)
	}

	var outPath string
	switch cfg.Export.Format {
	case "obj":
		outPath = filepath.Join(cfg.Export.OutDir, args[0]+".obj")
		err = export.SaveOBJ(scene, outPath)
	default:
		outPath = filepath.Join(cfg.Export.OutDir, args[0]+".gltf")
		err = export.SaveGLTF(scene, outPath)
	}
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Wrote: %s\n", outPath)
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fbxgeom inspect <sample>")
		os.Exit(1)
	}

	doc, err := sampleDocument(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for n := doc.FirstChild(doc.Root()); n != fbxtree.NilNode; n = doc.NextSibling(n) {
		dumpNode(doc, n, 0)
	}
}

// dumpNode prints one element with its properties, then recurses.
func dumpNode(doc *fbxtree.Document, n fbxtree.NodeID, depth int) {
	fmt.Printf("%s%s:", strings.Repeat("  ", depth), doc.Name(n))
	for p := doc.FirstProperty(n); p != fbxtree.NilProp; p = doc.NextProperty(p) {
		fmt.Printf(" %s", formatProperty(doc, p))
	}
	fmt.Println()
	for c := doc.FirstChild(n); c != fbxtree.NilNode; c = doc.NextSibling(c) {
		dumpNode(doc, c, depth+1)
	}
}

func formatProperty(doc *fbxtree.Document, p fbxtree.PropID) string {
	tag := doc.Tag(p)
	if doc.IsArray(p) {
		count, err := doc.ArrayCount(p)
		if err != nil {
			return fmt.Sprintf("%c[?]", tag)
		}
		return fmt.Sprintf("%c[%d]", tag, count)
	}

	switch tag {
	case fbxtree.TagString:
		s, _ := doc.StringValue(p)
		return fmt.Sprintf("%q", s)
	case fbxtree.TagInt32:
		v, _ := doc.Int32Value(p)
		return fmt.Sprintf("%d", v)
	case fbxtree.TagInt64:
		v, _ := doc.Int64Value(p)
		return fmt.Sprintf("%d", v)
	case fbxtree.TagFloat64:
		v, _ := doc.Float64Value(p)
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("<%c>", tag)
	}
}

func cmdSelftest(cfg *config.Config) {
	failed := 0
	for _, name := range sampleNames() {
		doc, err := sampleDocument(name)
		if err != nil {
			fmt.Printf("FAIL %-10s %v\n", name, err)
			failed++
			continue
		}
		scene, err := geometry.ImportScene(doc, cfg.Import.Options())
		if err != nil {
			fmt.Printf("FAIL %-10s %v\n", name, err)
			failed++
			continue
		}
		if err := verifyScene(scene); err != nil {
			fmt.Printf("FAIL %-10s %v\n", name, err)
			failed++
			continue
		}
		for _, obj := range scene.Geometries() {
			fmt.Printf("PASS %-10s %d triangles, %d vertices\n",
				name, obj.Geometry.TriangleCount(), len(obj.Geometry.Positions))
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d sample(s) failed\n", failed)
		os.Exit(1)
	}
}

// verifyScene checks the unified-vertex-space contract on every assembled
// geometry: triangle corners address valid vertices and each present
// attribute buffer matches the position buffer one to one.
func verifyScene(scene *geometry.Scene) error {
	for _, obj := range scene.Geometries() {
		g := obj.Geometry
		if len(g.Triangles)%3 != 0 {
			return fmt.Errorf("%s: %d corner indices do not form whole triangles", obj.Name, len(g.Triangles))
		}
		for _, idx := range g.Triangles {
			if idx < 0 || int(idx) >= len(g.Positions) {
				return fmt.Errorf("%s: triangle corner %d outside %d vertices", obj.Name, idx, len(g.Positions))
			}
		}
		for _, attr := range []struct {
			name string
			n    int
		}{
			{"normals", len(g.Normals)},
			{"tangents", len(g.Tangents)},
			{"colors", len(g.Colors)},
			{"uvs", len(g.UVs)},
		} {
			if attr.n != 0 && attr.n != len(g.Positions) {
				return fmt.Errorf("%s: %d %s for %d vertices", obj.Name, attr.n, attr.name, len(g.Positions))
			}
		}
		if len(g.Materials) != 0 && len(g.Materials) != g.TriangleCount() {
			return fmt.Errorf("%s: %d materials for %d triangles", obj.Name, len(g.Materials), g.TriangleCount())
		}
	}
	return nil
}
