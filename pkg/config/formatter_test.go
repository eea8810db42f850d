package config

import "testing"

func TestCompileFormatter(t *testing.T) {
	tests := []struct {
		spec    string
		in      string
		want    string
		wantErr bool
	}{
		{spec: "", in: "my-badge", want: "my-badge"},
		{spec: "identity", in: "my-badge", want: "my-badge"},
		{spec: "lower", in: "MyBadge", want: "mybadge"},
		{spec: "prefix:ui-", in: "badge", want: "ui-badge"},
		{spec: "suffix:-v2", in: "badge", want: "badge-v2"},
		{spec: "replace:wc-=ui-", in: "wc-badge", want: "ui-badge"},
		{spec: "lower|prefix:ui-", in: "Badge", want: "ui-badge"},
		{spec: "prefix:", wantErr: true},
		{spec: "replace:x", wantErr: true},
		{spec: "frobnicate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := CompileFormatter(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CompileFormatter(%q): expected error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileFormatter(%q) error: %v", tt.spec, err)
			}
			if got := f.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatter_IsIdentity(t *testing.T) {
	f, err := CompileFormatter("")
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsIdentity() {
		t.Error("empty spec must compile to identity")
	}

	f, err = CompileFormatter("lower")
	if err != nil {
		t.Fatal(err)
	}
	if f.IsIdentity() {
		t.Error("lower must not be identity")
	}
}
