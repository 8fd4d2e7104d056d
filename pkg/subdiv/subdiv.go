package subdiv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// Options tunes a subdivision run. The zero value is usable and selects
// the documented defaults.
type Options struct {
	// Logger receives anomaly warnings and per-level debug output.
	// Nil discards everything.
	Logger *zap.Logger

	// Weld merges coincident vertices before the first level. Kobbelt and
	// Catmull-Clark always weld.
	Weld bool

	// FixOrientation runs the orientation fixer after the last level.
	// Kobbelt runs it after every level regardless.
	FixOrientation bool

	Butterfly ButterflyOptions
	Kobbelt   KobbeltOptions
}

// ButterflyOptions tunes the Butterfly scheme.
type ButterflyOptions struct {
	// SeamTolerance welds vertices closer than this distance before the
	// first level so that UV or normal seams do not open into cracks.
	// Zero disables tolerance welding.
	SeamTolerance float64

	// BoundaryCurve inserts boundary edge-points with the four-point
	// curve rule instead of the plain midpoint.
	BoundaryCurve bool
}

// KobbeltOptions tunes the √3-Kobbelt scheme.
type KobbeltOptions struct {
	// SkipFlip disables the edge flip sub-pass, leaving the plain 1-to-3
	// split around each inserted center.
	SkipFlip bool
}

type refineFunc func(m *mesh.Mesh, p *pass) *mesh.Mesh

// refiners is the dispatch table from scheme to single-level refinement.
var refiners = map[Scheme]refineFunc{
	Loop:         refineLoop,
	Butterfly:    refineButterfly,
	Kobbelt:      refineKobbelt,
	CatmullClark: refineCatmullClark,
}

// pass carries the per-level context shared by every scheme.
type pass struct {
	opts  *Options
	log   *zap.Logger
	level int
}

// Subdivide applies levels rounds of the given scheme to m and returns
// the refined mesh. The input is never modified. Zero levels returns an
// unmodified copy.
func Subdivide(m *mesh.Mesh, scheme Scheme, levels int, opts Options) (*mesh.Mesh, error) {
	if levels < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLevels, levels)
	}
	refine, ok := refiners[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(scheme))
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input mesh: %w", err)
	}
	if levels == 0 {
		return m.Clone(), nil
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("scheme", scheme))

	cur := prepare(m, scheme, &opts, log)
	if err := cur.Validate(); err != nil {
		return nil, fmt.Errorf("mesh after welding: %w", err)
	}
	for level := 1; level <= levels; level++ {
		p := &pass{opts: &opts, log: log.With(zap.Int("level", level)), level: level}
		next := refine(cur, p)

		if scheme == Kobbelt {
			var flipped int
			next, flipped = mesh.FixOrientation(next)
			if flipped > 0 {
				p.log.Debug("orientation repaired", zap.Int("flipped", flipped))
			}
		}

		p.log.Debug("level done",
			zap.Int("vertices_in", cur.VertexCount()),
			zap.Int("triangles_in", cur.TriangleCount()),
			zap.Int("vertices_out", next.VertexCount()),
			zap.Int("triangles_out", next.TriangleCount()),
		)
		cur = next
	}

	if opts.FixOrientation && scheme != Kobbelt {
		var flipped int
		cur, flipped = mesh.FixOrientation(cur)
		if flipped > 0 {
			log.Debug("orientation repaired", zap.Int("flipped", flipped))
		}
	}
	return cur, nil
}

// Refine applies a single level of the given scheme.
func Refine(m *mesh.Mesh, scheme Scheme, opts Options) (*mesh.Mesh, error) {
	return Subdivide(m, scheme, 1, opts)
}

// prepare runs the welding pre-pass each scheme needs before the first
// level.
func prepare(m *mesh.Mesh, scheme Scheme, opts *Options, log *zap.Logger) *mesh.Mesh {
	var out *mesh.Mesh
	switch {
	case scheme == Butterfly && opts.Butterfly.SeamTolerance > 0:
		out = mesh.WeldWithin(m, opts.Butterfly.SeamTolerance)
	case opts.Weld || scheme == Kobbelt || scheme == CatmullClark:
		out = mesh.Weld(m)
	default:
		return m
	}
	if merged := m.VertexCount() - out.VertexCount(); merged > 0 {
		log.Debug("welded input",
			zap.Int("merged", merged),
			zap.Int("dropped_triangles", m.TriangleCount()-out.TriangleCount()),
		)
	}
	return out
}
