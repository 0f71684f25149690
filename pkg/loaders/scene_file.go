package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// ParseError reports a problem in a scene file
type ParseError struct {
	Line int    // 1-based line number
	Msg  string // Description of the problem
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser error on line %d: %s", e.Line, e.Msg)
}

// geometryKeywords start a new shape definition
var geometryKeywords = map[string]bool{
	"plane":    true,
	"triangle": true,
	"sphere":   true,
	"spot":     true,
	"point":    true,
	"cube":     true,
	"volume":   true,
}

// pendingShape collects the properties of the shape currently being defined
type pendingShape struct {
	kind      string
	line      int // Line of the geometry keyword
	positions []core.Vec3
	direction *core.Vec3
	axes      [3]*core.Vec3 // Left, up and back
	extents   *core.Vec3
	scalars   map[string]float64 // R, F and S values
	material  material.Material
}

// SceneParser turns the line-based scene format into shapes. Properties
// accumulate on the current geometry, which is committed when the next
// geometry keyword or the end of input is reached.
type SceneParser struct {
	shapes  []geometry.Shape
	current *pendingShape
	line    int
}

// NewSceneParser creates a new scene parser instance
func NewSceneParser() *SceneParser {
	return &SceneParser{shapes: make([]geometry.Shape, 0)}
}

// ParseScene parses scene content from an io.Reader
func ParseScene(reader io.Reader) ([]geometry.Shape, error) {
	parser := NewSceneParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %v", err)
	}

	if err := parser.commit(); err != nil {
		return nil, err
	}

	return parser.shapes, nil
}

// LoadScene loads and parses a scene file
func LoadScene(filename string) ([]geometry.Shape, error) {
	if err := validateSceneFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %v", err)
	}
	defer file.Close()

	shapes, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return shapes, nil
}

// validateSceneFilePath rejects paths that cannot name a scene file
func validateSceneFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".txt" {
		return fmt.Errorf("invalid file type %q: only .txt scene files are allowed", ext)
	}

	return nil
}

func (p *SceneParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// processLine handles a single raw input line
func (p *SceneParser) processLine(raw string) error {
	p.line++

	if i := strings.Index(raw, "//"); i >= 0 {
		raw = raw[:i]
	}
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	if geometryKeywords[keyword] {
		if len(args) != 0 {
			return p.errorf("unexpected arguments after %q", keyword)
		}
		if err := p.commit(); err != nil {
			return err
		}
		p.current = &pendingShape{kind: keyword, line: p.line, scalars: make(map[string]float64)}
		return nil
	}

	if p.current == nil {
		return p.errorf("the property %q is not associated with any geometry", line)
	}

	return p.processProperty(keyword, args, line)
}

// processProperty applies one property line to the current geometry
func (p *SceneParser) processProperty(keyword string, args []string, line string) error {
	cur := p.current

	switch keyword {
	case "p":
		v, err := p.parseVec3(args)
		if err != nil {
			return err
		}
		cur.positions = append(cur.positions, v)

	case "d":
		v, err := p.parseVec3(args)
		if err != nil {
			return err
		}
		cur.direction = &v

	case "l", "u", "b":
		v, err := p.parseVec3(args)
		if err != nil {
			return err
		}
		cur.axes[strings.Index("lub", keyword)] = &v

	case "e":
		v, err := p.parseVec3(args)
		if err != nil {
			return err
		}
		cur.extents = &v

	case "r", "f", "s":
		values, err := p.parseFloats(args, 1)
		if err != nil {
			return err
		}
		cur.scalars[keyword] = values[0]

	case "c", "cd":
		color, _, err := p.parseColorArgs(args, 0)
		if err != nil {
			return err
		}
		cur.material = material.NewDiffuse(color)

	case "cr":
		color, values, err := p.parseColorArgs(args, 1)
		if err != nil {
			return err
		}
		cur.material = material.NewReflective(values[0], material.NewDiffuse(color))

	case "cg":
		color, values, err := p.parseColorArgs(args, 1)
		if err != nil {
			return err
		}
		cur.material = material.NewGlow(color, values[0])

	case "cs":
		color, values, err := p.parseColorArgs(args, 2)
		if err != nil {
			return err
		}
		cur.material = material.NewSpecular(color, values[0], values[1])

	case "ct":
		color, values, err := p.parseColorArgs(args, 4)
		if err != nil {
			return err
		}
		index := core.NewVec3(values[1], values[2], values[3])
		cur.material = material.NewRefractive(values[0], index, material.NewDiffuse(color))

	default:
		return p.errorf("unknown property or geometry identifier %q", line)
	}

	return nil
}

// parseFloats parses exactly n numeric arguments
func (p *SceneParser) parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, p.errorf("expected %d numeric values, got %d", n, len(args))
	}

	values := make([]float64, n)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", arg)
		}
		values[i] = v
	}
	return values, nil
}

func (p *SceneParser) parseVec3(args []string) (core.Vec3, error) {
	values, err := p.parseFloats(args, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// parseColorArgs parses a "#argb" color followed by n numeric values
func (p *SceneParser) parseColorArgs(args []string, n int) (core.Color, []float64, error) {
	if len(args) == 0 || !strings.HasPrefix(args[0], "#") {
		return core.Color{}, nil, p.errorf("expected a #argb color")
	}

	color, err := core.ParseHexColor(args[0])
	if err != nil {
		return core.Color{}, nil, p.errorf("%v", err)
	}

	values, err := p.parseFloats(args[1:], n)
	if err != nil {
		return core.Color{}, nil, err
	}
	return color, values, nil
}

// commit turns the pending geometry into a shape
func (p *SceneParser) commit() error {
	cur := p.current
	if cur == nil {
		return nil
	}
	p.current = nil

	fail := func(format string, args ...interface{}) error {
		return &ParseError{Line: cur.line, Msg: fmt.Sprintf("%s: ", cur.kind) + fmt.Sprintf(format, args...)}
	}

	if cur.material == nil {
		return fail("no material or color has been defined")
	}
	if len(cur.positions) == 0 {
		return fail("at least one position vector must be defined")
	}

	need := map[string]int{"plane": 4, "triangle": 3}[cur.kind]
	if len(cur.positions) < need {
		return fail("expected %d position vectors, got %d", need, len(cur.positions))
	}

	scalar := func(name string) (float64, error) {
		v, ok := cur.scalars[name]
		if !ok {
			return 0, fail("missing property %s", strings.ToUpper(name))
		}
		return v, nil
	}

	pos := cur.positions
	var shape geometry.Shape

	switch cur.kind {
	case "plane":
		shape = geometry.NewPlane(pos[0], pos[1], pos[2], pos[3], cur.material)

	case "triangle":
		shape = geometry.NewTriangle(pos[0], pos[1], pos[2], cur.material)

	case "sphere":
		radius, err := scalar("r")
		if err != nil {
			return err
		}
		shape = geometry.NewSphere(pos[0], radius, cur.material)

	case "cube":
		side, err := scalar("r")
		if err != nil {
			return err
		}
		if side <= 0 {
			return fail("side length R must be positive, got %g", side)
		}
		left, up, back := cur.axesOrDefault()
		half := side / 2
		shape = geometry.NewVolume(pos[0], left, up, back, half, half, half, cur.material)

	case "volume":
		if cur.extents == nil {
			return fail("missing property E")
		}
		e := *cur.extents
		if e.X <= 0 || e.Y <= 0 || e.Z <= 0 {
			return fail("extents E must be positive, got %v", e)
		}
		left, up, back := cur.axesOrDefault()
		shape = geometry.NewVolume(pos[0], left, up, back, e.X, e.Y, e.Z, cur.material)

	case "point", "spot":
		glow, ok := cur.material.(*material.Glow)
		if !ok {
			return fail("lights require a glow color (CG)")
		}
		falloff, err := scalar("f")
		if err != nil {
			return err
		}

		if cur.kind == "point" {
			shape = geometry.NewPointLight(pos[0], glow.BaseColor(), glow.Intensity, falloff)
			break
		}

		if cur.direction == nil {
			return fail("missing property D")
		}
		sharpness, err := scalar("s")
		if err != nil {
			return err
		}
		shape = geometry.NewSpotLight(pos[0], *cur.direction, glow.BaseColor(), glow.Intensity, falloff, sharpness)
	}

	p.shapes = append(p.shapes, shape)
	return nil
}

// axesOrDefault returns the volume axes, using world X, Y and Z for any left unset
func (s *pendingShape) axesOrDefault() (left, up, back core.Vec3) {
	defaults := [3]core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)}
	for i, axis := range s.axes {
		if axis != nil {
			defaults[i] = *axis
		}
	}
	return defaults[0], defaults[1], defaults[2]
}
