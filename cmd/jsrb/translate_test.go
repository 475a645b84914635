package main

import "testing"

func TestResolveProgressUI(t *testing.T) {
	cases := []struct {
		in   string
		tty  bool
		want bool
		ok   bool
	}{
		{"", true, true, true},
		{"", false, false, true},
		{"auto", false, false, true},
		{"On", false, true, true},
		{" off ", true, false, true},
		{"banana", true, false, false},
	}
	for _, tc := range cases {
		got, err := resolveProgressUI(tc.in, tc.tty)
		if tc.ok && err != nil {
			t.Fatalf("resolveProgressUI(%q, %v) failed: %v", tc.in, tc.tty, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("resolveProgressUI(%q, %v) should fail", tc.in, tc.tty)
		}
		if got != tc.want {
			t.Fatalf("resolveProgressUI(%q, %v) = %v, want %v", tc.in, tc.tty, got, tc.want)
		}
	}
}

func TestEffectiveJobs(t *testing.T) {
	cases := []struct {
		flag, manifest, want int
	}{
		{4, 8, 4},
		{0, 8, 8},
		{0, 0, 0},
		{-1, 2, 2},
	}
	for _, tc := range cases {
		if got := effectiveJobs(tc.flag, tc.manifest); got != tc.want {
			t.Fatalf("effectiveJobs(%d, %d) = %d, want %d", tc.flag, tc.manifest, got, tc.want)
		}
	}
}
