package codec

import (
	"context"
	"strconv"
	"strings"

	"github.com/reoring/flatmap"
)

// Bool converts booleans. Encoding emits "True"/"False", matching the value
// written for flag keys; decoding accepts anything strconv.ParseBool does
// plus the checkbox spellings on/off and yes/no, case-insensitively.
func Bool() flatmap.Converter[bool] { return boolCodec{} }

type boolCodec struct{}

func (boolCodec) Encode(_ context.Context, v bool) (string, error) {
	if v {
		return "True", nil
	}
	return "False", nil
}

func (boolCodec) Decode(_ context.Context, s string) (bool, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(t)
	if err != nil {
		return false, parseError("expected boolean", err)
	}
	return b, nil
}
