package codec

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/reoring/flatmap"
)

// UUID converts RFC 4122 identifiers in their canonical lower-case form.
// Decoding also accepts the braced and urn:uuid: spellings. The nil UUID
// encodes to nothing.
func UUID() flatmap.Converter[uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Encode(_ context.Context, v uuid.UUID) (string, error) {
	if v == uuid.Nil {
		return "", flatmap.ErrNoValue
	}
	return v.String(), nil
}

func (uuidCodec) Decode(_ context.Context, s string) (uuid.UUID, error) {
	v, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, formatError("expected a UUID", err)
	}
	return v, nil
}
