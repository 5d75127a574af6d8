package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Nesting deeper than this is rejected rather than risking the stack
const maxDepth = 512

var (
	errNotEnough = errors.New("nbt: not enough data")
	errNotRoot   = errors.New("nbt: root tag is not a compound")
	errTooDeep   = errors.New("nbt: compound nesting too deep")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	tmp [8]byte
}

func (d *decoder) readString() (string, error) {
	if err := readFull(d.r, d.tmp[:2]); err != nil {
		return "", err
	}
	b := make([]byte, binary.BigEndian.Uint16(d.tmp[:2]))
	if err := readFull(d.r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) readPayload(t byte, depth int) (Tag, error) {
	switch t {
	case TypeByte:
		if err := readFull(d.r, d.tmp[:1]); err != nil {
			return nil, err
		}
		return Byte(d.tmp[0]), nil
	case TypeShort:
		if err := readFull(d.r, d.tmp[:2]); err != nil {
			return nil, err
		}
		return Short(binary.BigEndian.Uint16(d.tmp[:2])), nil
	case TypeInt:
		if err := readFull(d.r, d.tmp[:4]); err != nil {
			return nil, err
		}
		return Int(binary.BigEndian.Uint32(d.tmp[:4])), nil
	case TypeLong:
		if err := readFull(d.r, d.tmp[:8]); err != nil {
			return nil, err
		}
		return Long(binary.BigEndian.Uint64(d.tmp[:8])), nil
	case TypeByteArray:
		if err := readFull(d.r, d.tmp[:4]); err != nil {
			return nil, err
		}
		n := int32(binary.BigEndian.Uint32(d.tmp[:4]))
		if n < 0 {
			return nil, fmt.Errorf("nbt: negative byte array length %d", n)
		}
		// Grow as data arrives rather than trusting the length up front
		b := make([]byte, 0, 4096)
		for remaining := int(n); remaining > 0; {
			chunk := remaining
			if chunk > 4096 {
				chunk = 4096
			}
			l := len(b)
			b = append(b, make([]byte, chunk)...)
			if err := readFull(d.r, b[l:]); err != nil {
				return nil, err
			}
			remaining -= chunk
		}
		return ByteArray(b), nil
	case TypeString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TypeCompound:
		if depth >= maxDepth {
			return nil, errTooDeep
		}
		var c Compound
		for {
			if err := readFull(d.r, d.tmp[:1]); err != nil {
				return nil, err
			}
			child := d.tmp[0]
			if child == TypeEnd {
				return c, nil
			}
			name, err := d.readString()
			if err != nil {
				return nil, err
			}
			v, err := d.readPayload(child, depth+1)
			if err != nil {
				return nil, err
			}
			c = append(c, Named{Name: name, Tag: v})
		}
	default:
		return nil, fmt.Errorf("nbt: unsupported tag type %d", t)
	}
}

// Decode reads a root compound and its name from r
func Decode(r io.Reader) (string, Compound, error) {
	d := decoder{r: r}

	if err := readFull(r, d.tmp[:1]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return "", nil, errNotEnough
		}
		return "", nil, err
	}
	if d.tmp[0] != TypeCompound {
		return "", nil, errNotRoot
	}

	name, err := d.readString()
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return "", nil, errNotEnough
		}
		return "", nil, err
	}

	t, err := d.readPayload(TypeCompound, 0)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return "", nil, errNotEnough
		}
		return "", nil, err
	}

	return name, t.(Compound), nil
}
