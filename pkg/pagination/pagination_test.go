package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        Params
		wantPage  int
		wantLimit int
	}{
		{"zero values", Params{}, 1, 10},
		{"negative page", Params{Page: -2, Limit: 5}, 1, 5},
		{"limit above max", Params{Page: 3, Limit: 500}, 3, 100},
		{"passthrough", Params{Page: 2, Limit: 25}, 2, 25},
	}
	for _, tc := range cases {
		got := Normalize(tc.in)
		if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
			t.Errorf("%s: got page=%d limit=%d, want page=%d limit=%d",
				tc.name, got.Page, got.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestOffset(t *testing.T) {
	p := Normalize(Params{Page: 3, Limit: 10})
	if p.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset())
	}
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Normalize(Params{Page: 1, Limit: 10}), 35)
	if meta.TotalPages != 4 {
		t.Errorf("expected 4 pages for 35 rows, got %d", meta.TotalPages)
	}
	meta = MetaFor(Normalize(Params{Page: 1, Limit: 10}), 30)
	if meta.TotalPages != 3 {
		t.Errorf("expected 3 pages for 30 rows, got %d", meta.TotalPages)
	}
	meta = MetaFor(Normalize(Params{Page: 1, Limit: 10}), 0)
	if meta.TotalPages != 0 {
		t.Errorf("expected 0 pages for empty set, got %d", meta.TotalPages)
	}
}
