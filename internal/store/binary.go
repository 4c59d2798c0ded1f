package store

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// The playback file is little-endian binary: N (uint64), dt (float64), N
// float32 masses, then numIterations+1 frames of N float32 position triples.
// Positions are truncated from float64 on write.

// WriteBinary dumps the store to path. The file is written to a temporary
// path in the same directory and renamed into place on success, so a failed
// run never leaves a truncated file that looks valid.
func (s *Store) WriteBinary(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".nbody-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := s.write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}

func (s *Store) write(f io.Writer) error {
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, uint64(s.n)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.dt); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.masses); err != nil {
		return err
	}

	triples := make([]float32, 3*s.n)
	for _, frame := range s.frames {
		for i, pos := range frame {
			triples[3*i] = float32(pos.X)
			triples[3*i+1] = float32(pos.Y)
			triples[3*i+2] = float32(pos.Z)
		}
		if err := binary.Write(w, binary.LittleEndian, triples); err != nil {
			return err
		}
	}

	return w.Flush()
}

// Playback is the in-memory form of a playback file.
type Playback struct {
	N      int
	Dt     float64
	Masses []float32
	Frames [][]float32 // each frame holds 3*N coordinates
}

// Position returns the (x, y, z) of particle id in the given frame.
func (p *Playback) Position(frame, id int) (float32, float32, float32) {
	f := p.Frames[frame]
	return f[3*id], f[3*id+1], f[3*id+2]
}

// ReadBinary loads a playback file written by WriteBinary. The frame count
// is implied by the file length; a trailing partial frame is an error.
func ReadBinary(path string) (*Playback, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	pb := &Playback{N: int(n)}

	if err := binary.Read(r, binary.LittleEndian, &pb.Dt); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pb.Masses = make([]float32, pb.N)
	if err := binary.Read(r, binary.LittleEndian, pb.Masses); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	for {
		frame := make([]float32, 3*pb.N)
		err := binary.Read(r, binary.LittleEndian, frame)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: truncated frame %d: %w", path, len(pb.Frames), err)
		}
		pb.Frames = append(pb.Frames, frame)
	}

	if len(pb.Frames) == 0 {
		return nil, fmt.Errorf("reading %s: no frames", path)
	}

	return pb, nil
}
