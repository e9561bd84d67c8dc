package codec

import (
	"context"
	"time"

	"github.com/reoring/flatmap"
)

// TimeRFC3339 returns a Converter between RFC3339 strings and time.Time.
// Encoding normalizes to UTC.
func TimeRFC3339() flatmap.Converter[time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Encode(_ context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", flatmap.ErrNoValue
	}
	return formatRFC3339Canonical(b), nil
}

func (rfc3339Codec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, formatError("invalid RFC3339 time", err)
	}
	return t, nil
}

// TimeLayout converts times with an arbitrary layout (for example
// "2006-01-02" for HTML date inputs) interpreted in loc; nil loc means UTC.
func TimeLayout(layout string, loc *time.Location) flatmap.Converter[time.Time] {
	if loc == nil {
		loc = time.UTC
	}
	return layoutCodec{layout: layout, loc: loc}
}

type layoutCodec struct {
	layout string
	loc    *time.Location
}

func (c layoutCodec) Encode(_ context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", flatmap.ErrNoValue
	}
	return b.In(c.loc).Format(c.layout), nil
}

func (c layoutCodec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := time.ParseInLocation(c.layout, a, c.loc)
	if err != nil {
		return time.Time{}, formatError("expected time in layout "+c.layout, err)
	}
	return t, nil
}

// Duration converts time.Duration using its String form ("1h30m").
func Duration() flatmap.Converter[time.Duration] { return durationCodec{} }

type durationCodec struct{}

func (durationCodec) Encode(_ context.Context, d time.Duration) (string, error) {
	return d.String(), nil
}

func (durationCodec) Decode(_ context.Context, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, formatError("expected duration", err)
	}
	return d, nil
}

// ---- helpers ----

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
