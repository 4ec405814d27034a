package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xiaomi388/templater/pkg/types"
)

func TestRoundTrip(t *testing.T) {
	for _, desc := range []string{"Hello", "multi\nline\ttext", "quotes \" and \\ slashes", "ünïcödé ✓"} {
		tpl := types.Template{Description: desc}

		got, err := Decode(Encode(tpl))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", desc, err)
		}
		if got != tpl {
			t.Errorf("round-trip mismatch: got %+v, want %+v", got, tpl)
		}

		raw, err := Marshal(tpl)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		got, err = Unmarshal(raw)
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if got != tpl {
			t.Errorf("raw round-trip mismatch: got %+v, want %+v", got, tpl)
		}
	}
}

func TestEncodeShape(t *testing.T) {
	raw, err := Marshal(types.Template{Description: "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(raw) != `{"description":"x"}` {
		t.Errorf("unexpected record %s", raw)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]Record{
		"nil":         nil,
		"missing key": {"name": "x"},
		"number":      {"description": 3.0},
		"null":        {"description": nil},
	}
	for name, rec := range cases {
		if _, err := Decode(rec); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%s: expected ErrMalformedRecord, got %v", name, err)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := Unmarshal(json.RawMessage(`{"description":`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
	for _, raw := range []string{`"text"`, `[1]`, `42`, `null`} {
		if _, err := Unmarshal(json.RawMessage(raw)); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%s: expected ErrMalformedRecord, got %v", raw, err)
		}
	}
}

func TestDecodeAllIsCoarse(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"description":"a"}`),
		json.RawMessage(`{"title":"b"}`),
		json.RawMessage(`{"description":"c"}`),
	}

	if _, err := DecodeAll(raws); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}

	var skipped []int
	got := DecodeEach(raws, func(i int, _ error) { skipped = append(skipped, i) })
	want := []types.Template{{Description: "a"}, {Description: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeEach mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalAllKeepsOrder(t *testing.T) {
	in := []types.Template{{Description: "one"}, {Description: "two"}, {Description: "one"}}

	raws, err := MarshalAll(in)
	if err != nil {
		t.Fatalf("MarshalAll: %v", err)
	}
	out, err := DecodeAll(raws)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
