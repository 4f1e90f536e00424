package command

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes d in the stable tagged binary encoding: a 1-byte Kind tag
// followed by that variant's fields, each with an explicit width and
// little-endian byte order. Strings and argv slices are length-prefixed
// (uint32 count/length) so the format stays forward-navigable without a
// schema. Bind is recursive: BindInner is encoded inline, or a single
// zero byte if nil.
func Encode(w io.Writer, d *Data) error {
	if err := writeU8(w, uint8(d.Kind)); err != nil {
		return err
	}
	switch d.Kind {
	case KindQuit:
		return writeI32(w, d.Code)
	case KindFocus:
		return writeU8(w, uint8(d.Direction))
	case KindExec:
		return writeStrings(w, d.Argv)
	case KindBind:
		if err := writeU32(w, d.BindMods); err != nil {
			return err
		}
		if err := writeString(w, d.BindKey); err != nil {
			return err
		}
		if d.BindInner == nil {
			return writeU8(w, 0)
		}
		if err := writeU8(w, 1); err != nil {
			return err
		}
		return Encode(w, d.BindInner)
	case KindClose:
		return nil
	case KindWorkspaceSwitch, KindWorkspaceMove:
		return writeI32(w, d.N)
	case KindToggleFloating:
		return nil
	case KindMove:
		if err := writeI32(w, d.DX); err != nil {
			return err
		}
		return writeI32(w, d.DY)
	case KindResize:
		if err := writeI32(w, d.W); err != nil {
			return err
		}
		return writeI32(w, d.H)
	case KindInsertIntoColumn, KindPopFromColumn, KindCycleWidth:
		return nil
	case KindListOutputs, KindListWorkspaces, KindListViews, KindGetStatus:
		return nil
	case KindConfigMouseMod:
		return writeU32(w, d.Mods)
	case KindConfigGap:
		return writeI32(w, d.Gap)
	case KindConfigFocusColor:
		for _, f := range []float64{d.R, d.G, d.B, d.A} {
			if err := writeF64(w, f); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("command: cannot encode unknown kind %d", d.Kind)
	}
}

// Decode reads a Data value written by Encode.
func Decode(r io.Reader) (*Data, error) {
	kindByte, err := readU8(r)
	if err != nil {
		return nil, err
	}
	d := &Data{Kind: Kind(kindByte)}
	switch d.Kind {
	case KindQuit:
		d.Code, err = readI32(r)
	case KindFocus:
		var db uint8
		db, err = readU8(r)
		d.Direction = Direction(db)
	case KindExec:
		d.Argv, err = readStrings(r)
	case KindBind:
		if d.BindMods, err = readU32(r); err != nil {
			break
		}
		if d.BindKey, err = readString(r); err != nil {
			break
		}
		var has uint8
		if has, err = readU8(r); err != nil {
			break
		}
		if has == 1 {
			d.BindInner, err = Decode(r)
		}
	case KindClose, KindToggleFloating, KindInsertIntoColumn, KindPopFromColumn, KindCycleWidth,
		KindListOutputs, KindListWorkspaces, KindListViews, KindGetStatus:
		// no payload
	case KindWorkspaceSwitch, KindWorkspaceMove:
		d.N, err = readI32(r)
	case KindMove:
		if d.DX, err = readI32(r); err != nil {
			break
		}
		d.DY, err = readI32(r)
	case KindResize:
		if d.W, err = readI32(r); err != nil {
			break
		}
		d.H, err = readI32(r)
	case KindConfigMouseMod:
		d.Mods, err = readU32(r)
	case KindConfigGap:
		d.Gap, err = readI32(r)
	case KindConfigFocusColor:
		vals := make([]float64, 4)
		for i := range vals {
			if vals[i], err = readF64(r); err != nil {
				break
			}
		}
		d.R, d.G, d.B, d.A = vals[0], vals[1], vals[2], vals[3]
	default:
		return nil, fmt.Errorf("command: unknown wire kind %d", kindByte)
	}
	if err != nil {
		return nil, fmt.Errorf("command: decode %s: %w", d.Kind, err)
	}
	return d, nil
}

func writeU8(w io.Writer, v uint8) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeI32(w io.Writer, v int32) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeF64(w io.Writer, v float64) error {
	return binary.Write(w, binary.LittleEndian, math.Float64bits(v))
}

func readU8(r io.Reader) (uint8, error) {
	var v uint8
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readU32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readI32(r io.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readF64(r io.Reader) (float64, error) {
	var bits uint64
	if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeStrings(w io.Writer, ss []string) error {
	if err := writeU32(w, uint32(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func readStrings(r io.Reader) ([]string, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = readString(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
