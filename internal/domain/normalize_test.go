package domain

import "testing"

func TestNormalizeHumanName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                      "",
		"   ":                   "",
		"Demo User":             "Demo User",
		"  Mike \t Chen\n":      "Mike Chen",
		"Richmond  St & Oxford": "Richmond St & Oxford",
	}
	for in, want := range cases {
		if got := NormalizeHumanName(in); got != want {
			t.Fatalf("NormalizeHumanName(%q)=%q, want %q", in, got, want)
		}
	}
}
