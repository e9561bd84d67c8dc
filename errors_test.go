package flatmap_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/codec"
	"github.com/reoring/flatmap/i18n"
)

// TestErrorModel_ValidateTreeCollectsAndAsIssues checks that tree validation
// gathers every broken node and that both AsIssues and errors.As work.
func TestErrorModel_ValidateTreeCollectsAndAsIssues(t *testing.T) {
	m := flatmap.NewClass[Holder]().Add(
		bind("Items", func(h Holder) []string { return h.Items }, func(h *Holder, v []string) { h.Items = v },
			flatmap.NewCollection[string](flatmap.NewSimpleFunc[string](nil, nil)).Window(5, 1)),
		bind("Nums", nil, func(h *Holder, v []int) { h.Nums = v },
			flatmap.NewCollection[int](flatmap.NewSimple(codec.Int[int]()))),
	)
	err := flatmap.ValidateTree(m)
	if err == nil {
		t.Fatalf("expected issues")
	}
	var iss flatmap.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("expected errors.As to extract Issues, got: %v", err)
	}
	// missing getter, empty window, simple without functions
	if len(iss) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(iss), iss)
	}
	for _, it := range iss {
		if it.Code != flatmap.CodeInvalidMapping {
			t.Fatalf("unexpected code %q in %v", it.Code, it)
		}
	}
	if !errors.Is(err, flatmap.ErrInvalidMapping) || errors.Is(err, flatmap.ErrMandatory) {
		t.Fatalf("sentinel matching broken: %v", err)
	}
	if iss[1].Params["min"] != 5 || iss[1].Key != "Items[]" {
		t.Fatalf("window issue lacks params or key: %+v", iss[1])
	}
}

func TestErrorModel_SummaryIsTruncated(t *testing.T) {
	var iss flatmap.Issues
	for i := 0; i < 5; i++ {
		iss = flatmap.AppendIssues(iss, flatmap.Issue{Key: "k" + strconv.Itoa(i), Code: flatmap.CodeParseError})
	}
	want := `parse_error at "k0"; parse_error at "k1"; parse_error at "k2"; ... (total 5)`
	if got := iss.Error(); got != want {
		t.Fatalf("summary:\n got %s\nwant %s", got, want)
	}
	if flatmap.Issues(nil).Error() != "" {
		t.Fatalf("empty issues must render empty")
	}
}

func TestErrorModel_CauseReachable(t *testing.T) {
	_, err := codec.Int[int8]().Decode(context.Background(), "300")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected *strconv.NumError behind %v", err)
	}
	if !flatmap.HasCode(err, flatmap.CodeParseError) || flatmap.HasCode(nil, flatmap.CodeParseError) {
		t.Fatalf("HasCode mismatch for %v", err)
	}
	if _, ok := flatmap.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors are not Issues")
	}
}

func TestErrorModel_MessagesFollowLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })

	_, _, err := flatmap.Serialize(context.Background(), flatmap.NewClass[Foo](), Foo{})
	iss, ok := flatmap.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Message != i18n.T(flatmap.CodeInvalidMapping, nil) || iss[0].Message == "invalid mapping" {
		t.Fatalf("message not localized: %q", iss[0].Message)
	}
}

func TestErrorModel_NilMapping(t *testing.T) {
	var m *flatmap.Class[Foo]
	_, _, err := flatmap.Deserialize(context.Background(), m, flatmap.Values{})
	if !errors.Is(err, flatmap.ErrMissingArgument) {
		t.Fatalf("expected missing_argument, got %v", err)
	}
}
