package particle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Harsh-Sinha/n-body-simulation/internal/geom"
)

// The particle config file is a line-oriented text format:
//
//	NumParticles: 2
//	Particle ID: 0
//	Position: (0.5, -1.25, 3)
//	Velocity: (0, 0, 0)
//	Acceleration: (0, 0, 0)
//	Mass: 1e20
//	Particle ID: 1
//	...
//
// The first line is a header and is skipped on read.

// Parse reads every particle from the config file at path.
func Parse(path string) ([]*Particle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses particles from r. See Parse.
func Read(r io.Reader) ([]*Particle, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	// header
	if _, ok := next(); !ok {
		return nil, fmt.Errorf("particle config: empty file")
	}

	var particles []*Particle
	for {
		line, ok := next()
		if !ok {
			break
		}

		p := &Particle{}

		id, err := parseField(line, "Particle ID:")
		if err != nil {
			return nil, fmt.Errorf("particle config line %d: %w", lineNo, err)
		}
		if p.ID, err = strconv.Atoi(id); err != nil {
			return nil, fmt.Errorf("particle config line %d: bad id %q", lineNo, id)
		}

		fields := []struct {
			prefix string
			dst    *geom.Vec3
		}{
			{"Position:", &p.Pos},
			{"Velocity:", &p.Vel},
			{"Acceleration:", &p.Acc},
		}
		for _, f := range fields {
			line, ok = next()
			if !ok {
				return nil, fmt.Errorf("particle config: truncated entry for particle %d", p.ID)
			}
			raw, err := parseField(line, f.prefix)
			if err != nil {
				return nil, fmt.Errorf("particle config line %d: %w", lineNo, err)
			}
			if *f.dst, err = parseTriple(raw); err != nil {
				return nil, fmt.Errorf("particle config line %d: %w", lineNo, err)
			}
		}

		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("particle config: truncated entry for particle %d", p.ID)
		}
		raw, err := parseField(line, "Mass:")
		if err != nil {
			return nil, fmt.Errorf("particle config line %d: %w", lineNo, err)
		}
		if p.Mass, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("particle config line %d: bad mass %q", lineNo, raw)
		}

		particles = append(particles, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("particle config: %w", err)
	}

	return particles, nil
}

// WriteConfig writes particles to the config file at path.
func WriteConfig(path string, particles []*Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, particles); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Write emits particles in the config format to w.
func Write(w io.Writer, particles []*Particle) error {
	if _, err := fmt.Fprintf(w, "NumParticles: %d\n", len(particles)); err != nil {
		return err
	}
	for _, p := range particles {
		_, err := fmt.Fprintf(w,
			"Particle ID: %d\nPosition: (%g, %g, %g)\nVelocity: (%g, %g, %g)\nAcceleration: (%g, %g, %g)\nMass: %g\n",
			p.ID,
			p.Pos.X, p.Pos.Y, p.Pos.Z,
			p.Vel.X, p.Vel.Y, p.Vel.Z,
			p.Acc.X, p.Acc.Y, p.Acc.Z,
			p.Mass)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseField(line, prefix string) (string, error) {
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("expected %q, got %q", prefix, line)
	}
	return strings.TrimSpace(strings.TrimPrefix(line, prefix)), nil
}

func parseTriple(raw string) (geom.Vec3, error) {
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")")
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("bad triple %q", raw)
	}

	var out [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("bad triple component %q", part)
		}
		out[i] = v
	}

	return geom.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
