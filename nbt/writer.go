package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

type encoder struct {
	w   io.Writer
	tmp [8]byte
}

func (e *encoder) write(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

func (e *encoder) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return errors.New("nbt: string too long")
	}
	binary.BigEndian.PutUint16(e.tmp[:2], uint16(len(s)))
	if err := e.write(e.tmp[:2]); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) writeNamed(name string, t Tag) error {
	e.tmp[0] = t.Type()
	if err := e.write(e.tmp[:1]); err != nil {
		return err
	}
	if err := e.writeString(name); err != nil {
		return err
	}
	return e.writePayload(t)
}

func (e *encoder) writePayload(t Tag) error {
	switch v := t.(type) {
	case Byte:
		e.tmp[0] = byte(v)
		return e.write(e.tmp[:1])
	case Short:
		binary.BigEndian.PutUint16(e.tmp[:2], uint16(v))
		return e.write(e.tmp[:2])
	case Int:
		binary.BigEndian.PutUint32(e.tmp[:4], uint32(v))
		return e.write(e.tmp[:4])
	case Long:
		binary.BigEndian.PutUint64(e.tmp[:8], uint64(v))
		return e.write(e.tmp[:8])
	case ByteArray:
		if len(v) > math.MaxInt32 {
			return errors.New("nbt: byte array too long")
		}
		binary.BigEndian.PutUint32(e.tmp[:4], uint32(len(v)))
		if err := e.write(e.tmp[:4]); err != nil {
			return err
		}
		return e.write(v)
	case String:
		return e.writeString(string(v))
	case Compound:
		for _, n := range v {
			if err := e.writeNamed(n.Name, n.Tag); err != nil {
				return err
			}
		}
		e.tmp[0] = TypeEnd
		return e.write(e.tmp[:1])
	default:
		return fmt.Errorf("nbt: unsupported tag %T", t)
	}
}

// Encode writes c to w as the root compound with the given name
func Encode(w io.Writer, name string, c Compound) error {
	e := encoder{w: w}
	return e.writeNamed(name, c)
}
