// Package persist serializes one Engine's learned categories — and, for
// an ARTMAP A-side engine, its map-field's a->b entries — to a binary
// snapshot and back, using encoding/binary the same way engine/learn.go's
// floatKey turns a pattern into an exact-bit cache key — no
// language-specific encoding (gob, yaml) touches the wire format, so a
// snapshot's bytes are defined purely by this package rather than by a Go
// runtime's private wire protocol.
package persist

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/resonantlabs/artengine/category"
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/kernel"
	"github.com/resonantlabs/artengine/pattern"
)

const magic uint32 = 0x41524d31 // "ARM1"

// Header identifies a snapshot's contents before any category or
// map-field entry is read.
type Header struct {
	ID       uuid.UUID
	Variant  kernel.Variant
	InputDim int
	Count    int
	// MapCount is the number of (A-id, B-id) map-field entries that
	// follow the category records — 0 for a plain Engine snapshot, or
	// len(artmap.MapField.Pairs()) for an ARTMAP A-side snapshot.
	MapCount int
}

// SaveSnapshot writes an Engine's ID, variant, dimension, every learned
// category, and (ARTMAP only) its map-field's a->b entries to path.
// mapPairs is nil for a plain Engine with no associated map-field.
func SaveSnapshot(path string, id uuid.UUID, variant kernel.Variant, inputDim int, records []category.Category, mapPairs map[int]int) error {
	const op = "persist.SaveSnapshot"
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.InvalidParameters, op, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	hdr := Header{ID: id, Variant: variant, InputDim: inputDim, Count: len(records), MapCount: len(mapPairs)}
	if err := writeHeader(w, hdr); err != nil {
		return errs.Wrap(errs.Internal, op, err)
	}
	for i := range records {
		if err := writeCategory(w, &records[i]); err != nil {
			return errs.Wrap(errs.Internal, op, err)
		}
	}
	for a, b := range mapPairs {
		if err := binary.Write(w, binary.LittleEndian, int64(a)); err != nil {
			return errs.Wrap(errs.Internal, op, err)
		}
		if err := binary.Write(w, binary.LittleEndian, int64(b)); err != nil {
			return errs.Wrap(errs.Internal, op, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.Internal, op, err)
	}
	return nil
}

// LoadSnapshot reads a Header, its category records, and (if MapCount>0)
// its map-field entries back from path. The returned map is nil when the
// snapshot carried no map-field entries.
func LoadSnapshot(path string) (Header, []category.Category, map[int]int, error) {
	const op = "persist.LoadSnapshot"
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, nil, errs.Wrap(errs.InvalidParameters, op, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	hdr, err := readHeader(r)
	if err != nil {
		return Header{}, nil, nil, errs.Wrap(errs.Internal, op, err)
	}
	records := make([]category.Category, hdr.Count)
	for i := 0; i < hdr.Count; i++ {
		c, err := readCategory(r)
		if err != nil {
			return Header{}, nil, nil, errs.Wrap(errs.Internal, op, err)
		}
		records[i] = c
	}
	var mapPairs map[int]int
	if hdr.MapCount > 0 {
		mapPairs = make(map[int]int, hdr.MapCount)
		for i := 0; i < hdr.MapCount; i++ {
			var a64, b64 int64
			if err := binary.Read(r, binary.LittleEndian, &a64); err != nil {
				return Header{}, nil, nil, errs.Wrap(errs.Internal, op, err)
			}
			if err := binary.Read(r, binary.LittleEndian, &b64); err != nil {
				return Header{}, nil, nil, errs.Wrap(errs.Internal, op, err)
			}
			mapPairs[int(a64)] = int(b64)
		}
	}
	return hdr, records, mapPairs, nil
}

func writeHeader(w io.Writer, h Header) error {
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return err
	}
	idBytes := h.ID
	if _, err := w.Write(idBytes[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(h.Variant)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(h.InputDim)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(h.Count)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int64(h.MapCount))
}

func readHeader(r io.Reader) (Header, error) {
	var gotMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return Header{}, err
	}
	if gotMagic != magic {
		return Header{}, errs.New(errs.InvalidInput, "persist.readHeader", "bad magic number")
	}
	var id uuid.UUID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return Header{}, err
	}
	var variant int32
	if err := binary.Read(r, binary.LittleEndian, &variant); err != nil {
		return Header{}, err
	}
	var dim, count, mapCount int64
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return Header{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return Header{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &mapCount); err != nil {
		return Header{}, err
	}
	return Header{ID: id, Variant: kernel.Variant(variant), InputDim: int(dim), Count: int(count), MapCount: int(mapCount)}, nil
}

func writeCategory(w io.Writer, c *category.Category) error {
	if err := binary.Write(w, binary.LittleEndian, int64(c.ID)); err != nil {
		return err
	}
	if err := writeFloats(w, c.Weight); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.CreatedAt); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(c.UpdateCount)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.LastActivation); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Radius); err != nil {
		return err
	}
	hasMomentum := c.Momentum != nil
	if err := binary.Write(w, binary.LittleEndian, hasMomentum); err != nil {
		return err
	}
	if hasMomentum {
		if err := writeFloats(w, c.Momentum); err != nil {
			return err
		}
	}
	return nil
}

func readCategory(r io.Reader) (category.Category, error) {
	var c category.Category
	var id64 int64
	if err := binary.Read(r, binary.LittleEndian, &id64); err != nil {
		return c, err
	}
	c.ID = int(id64)

	weight, err := readFloats(r)
	if err != nil {
		return c, err
	}
	c.Weight = pattern.WeightVector(weight)

	if err := binary.Read(r, binary.LittleEndian, &c.CreatedAt); err != nil {
		return c, err
	}
	var updateCount64 int64
	if err := binary.Read(r, binary.LittleEndian, &updateCount64); err != nil {
		return c, err
	}
	c.UpdateCount = int(updateCount64)
	if err := binary.Read(r, binary.LittleEndian, &c.LastActivation); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Radius); err != nil {
		return c, err
	}
	var hasMomentum bool
	if err := binary.Read(r, binary.LittleEndian, &hasMomentum); err != nil {
		return c, err
	}
	if hasMomentum {
		momentum, err := readFloats(r)
		if err != nil {
			return c, err
		}
		c.Momentum = momentum
	}
	return c, nil
}

func writeFloats(w io.Writer, vals []float64) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(vals))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, vals)
}

func readFloats(r io.Reader) ([]float64, error) {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	vals := make([]float64, n)
	if n == 0 {
		return vals, nil
	}
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}
