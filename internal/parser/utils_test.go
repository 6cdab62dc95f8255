package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	if got := NormalizeColumnName("\ufeff Unit  Price "); got != "unitprice" {
		t.Fatalf("got=%q", got)
	}
	if got := NormalizeColumnName("판매 일시"); got != "판매일시" {
		t.Fatalf("got=%q", got)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3500", 3500, true},
		{"3,500", 3500, true},
		{"₩3,500", 3500, true},
		{"3500원", 3500, true},
		{" 2 ", 2, true},
		{"2.0", 2, true},
		{"2.9", 2, true},
		{"0", 0, true},
		{"-1", -1, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseAmount(%q)=(%d,%v) want=(%d,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseOptionalAmount_DistinguishesAbsentFromZero(t *testing.T) {
	t.Parallel()

	if p := ParseOptionalAmount(""); p != nil {
		t.Fatalf("empty should be absent, got %d", *p)
	}
	if p := ParseOptionalAmount("n/a"); p != nil {
		t.Fatalf("unparsable should be absent, got %d", *p)
	}
	p := ParseOptionalAmount("0")
	if p == nil || *p != 0 {
		t.Fatalf("zero should be present, got %v", p)
	}
}
