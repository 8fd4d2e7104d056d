// subdivtool is a CLI utility for subdividing, inspecting and previewing
// triangle meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/subdivision/internal/config"
	"github.com/Faultbox/subdivision/internal/logger"
	"github.com/Faultbox/subdivision/internal/preview"
	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
	"github.com/Faultbox/subdivision/pkg/subdiv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = cmdRun(args, os.Stdout)
	case "compare", "cmp":
		err = cmdCompare(args, os.Stdout)
	case "validate", "check":
		err = cmdValidate(args, os.Stdout)
	case "render":
		err = cmdRender(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `subdivtool - triangle mesh subdivision utility

Usage:
  subdivtool <command> [options]

Commands:
  run        Subdivide the configured shape and print a mesh report
  compare    Run every scheme on the same shape and tabulate the results
  validate   Inspect the configured shape, optionally repairing it
  render     Subdivide and write a shaded WebP preview
  config     Write the default configuration file

Common options:
  -config <path>   Config file (default: ./subdivtool.yaml or user config dir)
  -scheme <name>   loop, butterfly, kobbelt (sqrt3), catmull-clark (cc)
  -levels <n>      Subdivision levels
  -shape <name>    Base shape
  -debug           Debug logging

Examples:
  subdivtool run -shape split-cube -scheme cc -levels 1
  subdivtool compare -shape terrain -levels 2
  subdivtool validate -shape split-cube -repair
  subdivtool render -scheme butterfly -levels 3 -out ico.webp`)
}

// command bundles a subcommand's flag set with the shared config flags.
type command struct {
	fs    *flag.FlagSet
	flags *config.Flags
}

func newCommand(name string) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &command{fs: fs, flags: config.RegisterFlags(fs)}
}

// load parses args, resolves the config and initializes logging.
func (c *command) load(args []string) (*config.Config, error) {
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(c.flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func baseMesh(cfg *config.Config) (*mesh.Mesh, error) {
	m, err := shapes.ByName(cfg.Input.Shape, cfg.Input.Params)
	if err != nil {
		return nil, err
	}
	logger.Debug("base mesh",
		zap.String("shape", cfg.Input.Shape),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
	return m, nil
}

func subdivide(cfg *config.Config, m *mesh.Mesh, scheme subdiv.Scheme) (*mesh.Mesh, time.Duration, error) {
	start := time.Now()
	out, err := subdiv.Subdivide(m, scheme, cfg.Subdivision.Levels, cfg.SubdivOptions(logger.Named("subdiv")))
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	logger.Info("subdivided",
		zap.Stringer("scheme", scheme),
		zap.Int("levels", cfg.Subdivision.Levels),
		zap.Int("vertices", out.VertexCount()),
		zap.Int("triangles", out.TriangleCount()),
		zap.Duration("elapsed", elapsed),
	)
	return out, elapsed, nil
}

func cmdRun(args []string, w io.Writer) error {
	c := newCommand("run")
	asYAML := c.fs.Bool("yaml", false, "Print the report as YAML")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	m, err := baseMesh(cfg)
	if err != nil {
		return err
	}
	out, _, err := subdivide(cfg, m, cfg.Subdivision.Scheme)
	if err != nil {
		return err
	}

	report := mesh.Inspect(out)
	if *asYAML {
		return yaml.NewEncoder(w).Encode(report)
	}
	fmt.Fprintf(w, "Shape:   %s\n", cfg.Input.Shape)
	fmt.Fprintf(w, "Scheme:  %s x%d\n", cfg.Subdivision.Scheme, cfg.Subdivision.Levels)
	fmt.Fprintln(w)
	printReport(w, report)
	return nil
}

func cmdCompare(args []string, w io.Writer) error {
	c := newCommand("compare")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	m, err := baseMesh(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Shape: %s, %d levels\n\n", cfg.Input.Shape, cfg.Subdivision.Levels)
	fmt.Fprintf(w, "%-14s %9s %9s %9s %9s %7s %11s %10s\n",
		"scheme", "vertices", "triangles", "edges", "boundary", "closed", "consistent", "time")
	for _, s := range subdiv.Schemes() {
		out, elapsed, err := subdivide(cfg, m, s)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		r := mesh.Inspect(out)
		fmt.Fprintf(w, "%-14s %9d %9d %9d %9d %7t %11t %10s\n",
			s, r.Vertices, r.Triangles, r.Edges, r.BoundaryEdges, r.Closed, r.Consistent,
			elapsed.Round(time.Microsecond))
	}
	return nil
}

func cmdValidate(args []string, w io.Writer) error {
	c := newCommand("validate")
	repair := c.fs.Bool("repair", false, "Weld, drop degenerate triangles and fix orientation")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	m, err := baseMesh(cfg)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Shape: %s\n\n", cfg.Input.Shape)
	printReport(w, mesh.Inspect(m))
	if !*repair {
		return nil
	}

	before := m.VertexCount()
	m = mesh.WeldWithin(m, cfg.Subdivision.WeldTolerance)
	m, dropped := mesh.RemoveDegenerate(m, mesh.DefaultDegenerateEpsilon)
	m, flipped := mesh.FixOrientation(m)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Repaired: merged %d vertices, dropped %d triangles, flipped %d triangles\n\n",
		before-m.VertexCount(), dropped, flipped)
	printReport(w, mesh.Inspect(m))
	return nil
}

func cmdRender(args []string, w io.Writer) error {
	c := newCommand("render")
	flat := c.fs.Bool("flat", false, "Flat shading")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	m, err := baseMesh(cfg)
	if err != nil {
		return err
	}
	out, _, err := subdivide(cfg, m, cfg.Subdivision.Scheme)
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Size = cfg.Preview.Size
	opts.Supersample = cfg.Preview.Supersample
	opts.Yaw = cfg.Preview.Yaw
	opts.Pitch = cfg.Preview.Pitch
	opts.Smooth = cfg.Preview.Smooth && !*flat

	img, err := preview.Render(out, opts)
	if err != nil {
		return err
	}
	if err := preview.SaveWebP(cfg.Preview.Output, img); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s (%dx%d, %d triangles)\n",
		cfg.Preview.Output, opts.Size, opts.Size, out.TriangleCount())
	return nil
}

func cmdConfig(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	toStdout := fs.Bool("print", false, "Print to stdout instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *toStdout {
		return yaml.NewEncoder(w).Encode(cfg)
	}

	var path string
	if fs.NArg() > 0 {
		path = fs.Arg(0)
		if err := cfg.SaveTo(path); err != nil {
			return err
		}
	} else {
		var err error
		if path, err = cfg.Save(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func printReport(w io.Writer, r mesh.Report) {
	fmt.Fprintf(w, "Vertices:             %d (%d isolated)\n", r.Vertices, r.IsolatedVertices)
	fmt.Fprintf(w, "Triangles:            %d (%d degenerate)\n", r.Triangles, r.DegenerateTriangles)
	fmt.Fprintf(w, "Edges:                %d\n", r.Edges)
	fmt.Fprintf(w, "  boundary:           %d\n", r.BoundaryEdges)
	fmt.Fprintf(w, "  manifold:           %d\n", r.ManifoldEdges)
	fmt.Fprintf(w, "  non-manifold:       %d\n", r.NonManifoldEdges)
	fmt.Fprintf(w, "Boundary vertices:    %d\n", r.BoundaryVertices)
	fmt.Fprintf(w, "Euler characteristic: %d\n", r.EulerCharacteristic)
	fmt.Fprintf(w, "Closed:               %t\n", r.Closed)
	fmt.Fprintf(w, "Consistent winding:   %t\n", r.Consistent)
}
