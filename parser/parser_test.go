package parser

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "korean man won", input: "35만원", want: 350000, ok: true},
		{name: "korean man only", input: "12만", want: 120000, ok: true},
		{name: "korean with spaces", input: "3 만 5 천원", want: 35000, ok: true},
		{name: "korean eok", input: "1억", want: 100000000, ok: true},
		{name: "korean baekman", input: "1백만원", want: 1000000, ok: true},
		{name: "korean baekman bare", input: "2백만", want: 2000000, ok: true},
		{name: "korean simman", input: "5십만원", want: 500000, ok: true},
		{name: "korean plain won", input: "8,500원", want: 8500, ok: true},
		{name: "dollar symbol", input: "$120", want: 120, ok: true},
		{name: "won symbol with comma", input: "₩1,250,000", want: 1250000, ok: true},
		{name: "krw prefix", input: "KRW 99000", want: 99000, ok: true},
		{name: "bare number", input: "가격 45000 입니다", want: 45000, ok: true},
		{name: "decimal", input: "$1,200.50", want: 1200.50, ok: true},
		{name: "no numeric content", input: "가격문의", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "punctuation only", input: "...,,", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePriceNeverNegative(t *testing.T) {
	inputs := []string{"35만원", "$120", "-500", "깨끗한 2021 모델"}
	for _, in := range inputs {
		if v, ok := ParsePrice(in); ok && v < 0 {
			t.Errorf("ParsePrice(%q) = %v, want non-negative", in, v)
		}
	}
}

func TestGuessYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "full year with marker", input: "2019년 구매", want: 2019, ok: true},
		{name: "apostrophe short year", input: "'21년 모델", want: 2021, ok: true},
		{name: "bare year", input: "bought in 2021", want: 2021, ok: true},
		{name: "model year suffix", input: "23년식", want: 2023, ok: true},
		{name: "short year pivots to 1900s", input: "98년식", want: 1998, ok: true},
		{name: "no year", input: "상태 좋습니다", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GuessYear(tt.input)
			if ok != tt.ok {
				t.Fatalf("GuessYear(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("GuessYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("2024-03-01 12:00:00"); !ok {
		t.Errorf("ParseDate should accept an ISO-like timestamp")
	}
	if _, ok := ParseDate("March 1, 2024"); !ok {
		t.Errorf("ParseDate should accept a fuzzy English date")
	}
	if _, ok := ParseDate("어제"); ok {
		t.Errorf("ParseDate should reject unparseable text")
	}
	if _, ok := ParseDate(""); ok {
		t.Errorf("ParseDate should reject empty input")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "case and punctuation", input: "iPhone 12, 128GB (Black)!", want: "iphone 12 128gb black"},
		{name: "whitespace collapse", input: "  iPhone   12\t128GB ", want: "iphone 12 128gb"},
		{name: "korean preserved", input: "아이폰 12 블랙", want: "아이폰 12 블랙"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
