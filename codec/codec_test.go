package codec_test

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Color string

func TestString_Identity(t *testing.T) {
	ctx := context.Background()
	s, err := codec.String().Encode(ctx, "asdf")
	require.NoError(t, err)
	require.Equal(t, "asdf", s)

	c, err := codec.StringAs[Color]().Decode(ctx, "red")
	require.NoError(t, err)
	require.Equal(t, Color("red"), c)
}

func TestNonEmpty(t *testing.T) {
	ctx := context.Background()
	c := codec.NonEmpty(codec.String())

	_, err := c.Encode(ctx, "  ")
	require.True(t, errors.Is(err, flatmap.ErrNoValue))

	_, err = c.Decode(ctx, "")
	require.Error(t, err)

	v, err := c.Decode(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "x", v)
}

func TestInt_RangeAndWhitespace(t *testing.T) {
	ctx := context.Background()

	v, err := codec.Int[int]().Decode(ctx, " 42 ")
	require.NoError(t, err)
	require.Equal(t, 42, v)

	_, err = codec.Int[int8]().Decode(ctx, "200")
	require.Error(t, err)
	require.True(t, flatmap.HasCode(err, flatmap.CodeParseError))

	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr), "cause should stay reachable")

	s, err := codec.Int[int64]().Encode(ctx, math.MinInt64)
	require.NoError(t, err)
	require.Equal(t, "-9223372036854775808", s)
}

func TestUintAndFloat(t *testing.T) {
	ctx := context.Background()

	u, err := codec.Uint[uint16]().Decode(ctx, "65535")
	require.NoError(t, err)
	require.Equal(t, uint16(65535), u)

	_, err = codec.Uint[uint]().Decode(ctx, "-1")
	require.Error(t, err)

	s, err := codec.Float[float64]().Encode(ctx, 0.1)
	require.NoError(t, err)
	require.Equal(t, "0.1", s)

	f, err := codec.Float[float32]().Decode(ctx, "1.5")
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f)
}

func TestBool_Spellings(t *testing.T) {
	ctx := context.Background()
	c := codec.Bool()

	for _, in := range []string{"True", "true", "1", "on", "YES"} {
		v, err := c.Decode(ctx, in)
		require.NoError(t, err, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"False", "0", "off", "no"} {
		v, err := c.Decode(ctx, in)
		require.NoError(t, err, in)
		assert.False(t, v, in)
	}
	_, err := c.Decode(ctx, "maybe")
	require.Error(t, err)

	s, _ := c.Encode(ctx, true)
	require.Equal(t, "True", s)
}

type Level int

const (
	Low Level = iota + 1
	High
)

func TestEnum(t *testing.T) {
	ctx := context.Background()
	c := codec.Enum(map[string]Level{"low": Low, "high": High})

	v, err := c.Decode(ctx, "high")
	require.NoError(t, err)
	require.Equal(t, High, v)

	s, err := c.Encode(ctx, Low)
	require.NoError(t, err)
	require.Equal(t, "low", s)

	_, err = c.Encode(ctx, Level(9))
	require.True(t, errors.Is(err, flatmap.ErrNoValue))

	_, err = c.Decode(ctx, "mid")
	require.Error(t, err)
	iss, ok := flatmap.AsIssues(err)
	require.True(t, ok)
	require.Contains(t, iss[0].Hint, "high, low")
}

func TestEnum_SharedValueEncodesSmallestName(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		c := codec.Enum(map[string]bool{"yes": true, "y": true, "on": true, "no": false})
		s, err := c.Encode(ctx, true)
		require.NoError(t, err)
		require.Equal(t, "on", s)

		for _, name := range []string{"yes", "y", "on"} {
			v, err := c.Decode(ctx, name)
			require.NoError(t, err)
			require.True(t, v, name)
		}
	}
}

func TestFuncs_OneWay(t *testing.T) {
	ctx := context.Background()
	c := codec.Funcs[int](func(v int) (string, error) { return strconv.Itoa(v), nil }, nil)

	s, err := c.Encode(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "7", s)

	_, err = c.Decode(ctx, "7")
	require.ErrorIs(t, err, codec.ErrOneWay)
}
