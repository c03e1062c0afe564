package filter

import (
	"testing"

	"jobboard/internal/domain/listing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []State{
		{},
		{Search: "backend"},
		{Location: "Remote"},
		{Type: "Contract"},
		{Search: "Backend Developer", Location: "San Francisco, CA", Type: "Full-Time"},
		{Search: "c++ & go", Location: "a=b?c#d"},
		{Search: "ingénieur", Location: "München"},
		{Type: "not-a-category"},
	}
	for _, want := range cases {
		got := Decode(Encode(want))
		if got != want {
			t.Errorf("round trip: got %+v want %+v (encoded %q)", got, want, Encode(want))
		}
	}
}

func TestEncode_TrimsAndDropsBlankFacets(t *testing.T) {
	blank := State{Search: "   ", Location: "\t", Type: " "}
	if got := Encode(blank); got != "" {
		t.Fatalf("blank facets must not be encoded, got %q", got)
	}
	if p := blank.Path("/jobs"); p != "/jobs" {
		t.Fatalf("got %q", p)
	}
	if !blank.IsEmpty() {
		t.Fatalf("whitespace-only state must be empty")
	}

	padded := State{Search: "  padded  "}
	if got := Decode(Encode(padded)); got != (State{Search: "padded"}) {
		t.Fatalf("padded search must round-trip trimmed, got %+v", got)
	}
}

func TestEncode_OmitsEmptyAndSortsKeys(t *testing.T) {
	if got := Encode(State{}); got != "" {
		t.Fatalf("empty state encodes to %q", got)
	}
	got := Encode(State{Type: "Contract", Search: "go"})
	if got != "search=go&type=Contract" {
		t.Fatalf("unexpected canonical form %q", got)
	}
}

func TestDecode_IgnoresUnknownAndMalformed(t *testing.T) {
	got := Decode("?search=dev&page=2&utm_source=x&location=%zz&type=Contract")
	want := State{Search: "dev", Type: "Contract"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	if got := Decode("%%%"); !got.IsEmpty() {
		t.Fatalf("garbage should decode to empty state, got %+v", got)
	}
}

func TestDecode_FirstValueWins(t *testing.T) {
	got := Decode("type=Contract&type=Part-Time")
	if got.Type != "Contract" {
		t.Fatalf("expected first value, got %q", got.Type)
	}
}

func TestPath(t *testing.T) {
	if p := (State{}).Path("/jobs"); p != "/jobs" {
		t.Fatalf("got %q", p)
	}
	if p := (State{Location: "Remote"}).Path("/jobs"); p != "/jobs?location=Remote" {
		t.Fatalf("got %q", p)
	}
}

func TestToPredicate_EmptyMatchesAll(t *testing.T) {
	p := ToPredicate(State{})
	if !p.IsEmpty() {
		t.Fatalf("empty state must produce the match-all predicate, got %+v", p)
	}
	l := listing.Listing{Title: "Anything", Company: "Any", Location: "Anywhere", Category: listing.CategoryPartTime}
	if !p.Matches(l) {
		t.Fatalf("match-all predicate rejected a listing")
	}
}

func TestToPredicate_BlankFacetsAreAbsent(t *testing.T) {
	p := ToPredicate(State{Location: "", Search: "   ", Type: " "})
	if !p.IsEmpty() {
		t.Fatalf("blank facets must impose no constraint, got %+v", p)
	}
}

func TestToPredicate_Semantics(t *testing.T) {
	l := listing.Listing{
		Title:    "Backend Developer",
		Company:  "Acme",
		Location: "Remote",
		Category: listing.CategoryFullTime,
	}

	cases := []struct {
		state State
		want  bool
	}{
		{State{Search: "backend"}, true},
		{State{Search: "ACME"}, true},
		{State{Search: "frontend"}, false},
		{State{Location: "rem"}, true},
		{State{Type: "Contract"}, false},
		{State{Type: "Full-Time"}, true},
		{State{Type: "full-time"}, false},
		{State{Search: "backend", Location: "remote", Type: "Full-Time"}, true},
	}
	for _, tc := range cases {
		if got := ToPredicate(tc.state).Matches(l); got != tc.want {
			t.Errorf("%+v: got %v want %v", tc.state, got, tc.want)
		}
	}
}
