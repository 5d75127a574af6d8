/*
Package nbt implements the subset of the Named Binary Tag format needed to
read and write map item data.

A file is a single named compound tag. Every tag is written as a one byte type,
a big-endian 16-bit name length, the name and then the payload. Compounds are a
sequence of tags terminated by an end tag. Byte arrays are prefixed with a
big-endian 32-bit length.
*/
package nbt

import "fmt"

// Tag type identifiers
const (
	TypeEnd       byte = 0
	TypeByte      byte = 1
	TypeShort     byte = 2
	TypeInt       byte = 3
	TypeLong      byte = 4
	TypeByteArray byte = 7
	TypeString    byte = 8
	TypeCompound  byte = 10
)

// Tag is implemented by every supported tag payload
type Tag interface {
	Type() byte
}

// Byte is a signed 8-bit tag
type Byte int8

// Short is a signed 16-bit tag
type Short int16

// Int is a signed 32-bit tag
type Int int32

// Long is a signed 64-bit tag
type Long int64

// ByteArray is a length-prefixed array of bytes
type ByteArray []byte

// String is a length-prefixed UTF-8 string
type String string

// Compound is an ordered list of named tags
type Compound []Named

// Named is a tag along with its name
type Named struct {
	Name string
	Tag  Tag
}

func (Byte) Type() byte      { return TypeByte }
func (Short) Type() byte     { return TypeShort }
func (Int) Type() byte       { return TypeInt }
func (Long) Type() byte      { return TypeLong }
func (ByteArray) Type() byte { return TypeByteArray }
func (String) Type() byte    { return TypeString }
func (Compound) Type() byte  { return TypeCompound }

// Bool returns the Byte used to store a boolean
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

// Get returns the first tag with the given name
func (c Compound) Get(name string) (Tag, bool) {
	for _, n := range c {
		if n.Name == name {
			return n.Tag, true
		}
	}
	return nil, false
}

// Compound returns the compound tag with the given name
func (c Compound) Compound(name string) (Compound, error) {
	t, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("nbt: missing tag %q", name)
	}
	v, ok := t.(Compound)
	if !ok {
		return nil, fmt.Errorf("nbt: tag %q is type %d, not a compound", name, t.Type())
	}
	return v, nil
}
