package config

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.html", "index.html", true},
		{"*.html", "src/index.html", true}, // base-name match for slashless patterns
		{"src/*.html", "src/index.html", true},
		{"src/*.html", "src/sub/index.html", false},
		{"src/**/*.html", "src/index.html", true},
		{"src/**/*.html", "src/a/b/c/index.html", true},
		{"src/**/*.html", "lib/index.html", false},
		{"**/dist/**", "pkg/dist/out.html", true},
		{"**/dist/**", "pkg/src/out.html", false},
		{"./src/*.html", "src/index.html", true},
		{"src/*.html", "./src/index.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			if got := Match(tt.pattern, tt.path); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestEffective_MatchesPath(t *testing.T) {
	eff := &Effective{
		Include: []string{"src/**/*.html"},
		Exclude: []string{"**/dist/**"},
	}

	if !eff.MatchesPath("src/pages/index.html") {
		t.Error("included path not matched")
	}
	if eff.MatchesPath("docs/index.html") {
		t.Error("non-included path matched")
	}
	if eff.MatchesPath("src/dist/index.html") {
		t.Error("excluded path matched")
	}

	empty := &Effective{}
	if !empty.MatchesPath("anything/at/all.html") {
		t.Error("empty include list must select every document")
	}
}
