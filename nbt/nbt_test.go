package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)
	err := Encode(b, "root", Compound{
		{"data", Compound{
			{"b", Byte(-1)},
			{"s", Short(128)},
			{"i", Int(-2)},
			{"a", ByteArray{1, 2}},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		TypeCompound, 0, 4, 'r', 'o', 'o', 't',
		TypeCompound, 0, 4, 'd', 'a', 't', 'a',
		TypeByte, 0, 1, 'b', 0xff,
		TypeShort, 0, 1, 's', 0x00, 0x80,
		TypeInt, 0, 1, 'i', 0xff, 0xff, 0xff, 0xfe,
		TypeByteArray, 0, 1, 'a', 0, 0, 0, 2, 1, 2,
		TypeEnd,
		TypeEnd,
	}, b.Bytes())
}

func TestRoundTrip(t *testing.T) {
	in := Compound{
		{"byte", Byte(42)},
		{"short", Short(-300)},
		{"int", Int(1 << 20)},
		{"long", Long(-1 << 40)},
		{"string", String("hello")},
		{"array", ByteArray(bytes.Repeat([]byte{0xab}, 10000))},
		{"empty", Compound{}},
		{"nested", Compound{{"flag", Bool(true)}}},
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, "", in))

	name, out, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].Name, out[i].Name)
		if in[i].Name == "empty" {
			assert.Empty(t, out[i].Tag)
			continue
		}
		assert.Equal(t, in[i].Tag, out[i].Tag)
	}

	nested, err := out.Compound("nested")
	require.NoError(t, err)
	flag, ok := nested.Get("flag")
	assert.True(t, ok)
	assert.Equal(t, Byte(1), flag)

	_, err = out.Compound("missing")
	assert.Error(t, err)
	_, err = out.Compound("byte")
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	tables := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"not compound", []byte{TypeByte, 0, 0, 1}},
		{"truncated name", []byte{TypeCompound, 0, 4, 'r'}},
		{"missing end", []byte{TypeCompound, 0, 0}},
		{"truncated array", []byte{TypeCompound, 0, 0, TypeByteArray, 0, 0, 0, 0, 0, 9, 1}},
		{"negative array", []byte{TypeCompound, 0, 0, TypeByteArray, 0, 0, 0xff, 0xff, 0xff, 0xff}},
		{"unknown type", []byte{TypeCompound, 0, 0, 99, 0, 0, TypeEnd}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, _, err := Decode(bytes.NewReader(table.in))
			assert.Error(t, err)
		})
	}
}

func TestDecodeTooDeep(t *testing.T) {
	b := []byte{TypeCompound, 0, 0}
	for i := 0; i < maxDepth+1; i++ {
		b = append(b, TypeCompound, 0, 0)
	}

	_, _, err := Decode(bytes.NewReader(b))
	assert.ErrorIs(t, err, errTooDeep)
}

func TestBool(t *testing.T) {
	assert.Equal(t, Byte(1), Bool(true))
	assert.Equal(t, Byte(0), Bool(false))
}
