package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Wireless Headphones", "wireless-headphones"},
		{"  Mixed   Spacing  ", "mixed-spacing"},
		{"Crème Brûlée!!", "cr-me-br-l-e"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER_case_99", "upper-case-99"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
