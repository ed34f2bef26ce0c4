package palette

import "testing"

func TestBaseType(t *testing.T) {
	cases := map[string]string{
		"DATE[22]":     "DATE",
		"DATE":         "DATE",
		"PER_NAME[3]":  "PER_NAME",
		"[7]":          "",
		"LOC[x]":       "LOC[x]",
		"Giving[1][2]": "Giving[1]",
		"":             "",
	}
	for in, want := range cases {
		if got := BaseType(in); got != want {
			t.Errorf("BaseType(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestColor_IndexedMatchesBase(t *testing.T) {
	if Color("DATE[22]") != Color("DATE") {
		t.Errorf("expected DATE[22] and DATE to share a color")
	}
	if Color("DATE") != "#5e4fa2" {
		t.Errorf("expected %q, got %q", "#5e4fa2", Color("DATE"))
	}
}

func TestColor_UnknownFallsBack(t *testing.T) {
	for _, in := range []string{"UNKNOWN", "", "[12]", "_"} {
		if got := Color(in); got != DefaultColor {
			t.Errorf("Color(%q): expected default, got %q", in, got)
		}
		if Known(in) {
			t.Errorf("Known(%q): expected false", in)
		}
	}
}

func TestIsDark(t *testing.T) {
	cases := []struct {
		hex  string
		dark bool
	}{
		{"#5e4fa2", true},
		{"#d7191c", true},
		{"#8dd3c7", false},
		{"#cccccc", false},
		{"#000000", true},
		{"#ffffff", false},
		{"transparent", false},
		{"", false},
		{"#zzzzzz", false},
		{"#abc", false},
	}
	for _, c := range cases {
		if got := IsDark(c.hex); got != c.dark {
			t.Errorf("IsDark(%q): expected %v, got %v", c.hex, c.dark, got)
		}
	}
	if TextColor("#5e4fa2") != "white" || TextColor("#cccccc") != "black" {
		t.Error("unexpected text colors")
	}
}

func TestLegend_GroupsInOrder(t *testing.T) {
	groups := Legend()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	sizes := []int{13, 11, 2}
	for i, g := range groups {
		if g.Category != Categories[i] {
			t.Errorf("group %d: expected %q, got %q", i, Categories[i], g.Category)
		}
		if len(g.Items) != sizes[i] {
			t.Errorf("group %d: expected %d items, got %d", i, sizes[i], len(g.Items))
		}
	}
	if groups[0].Items[0].Type != "LOC_NAME" {
		t.Errorf("expected LOC_NAME first, got %q", groups[0].Items[0].Type)
	}
}
