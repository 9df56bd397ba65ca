package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.litecode.dev/pkg/env"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/testutil"
)

func TestRead(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"full.yaml":      "substitution: naive\nhistory: false\ndb: /tmp/h.bolt\nprompt: '> '\n",
		"partial.yaml":   "prompt: '$ '\n",
		"empty.yaml":     "",
		"bad-subst.yaml": "substitution: fuzzy\n",
		"unknown.yaml":   "colour: red\n",
		"invalid.yaml":   "history: [\n",
	})

	tests := []struct {
		file    string
		want    Config
		wantErr bool
	}{
		{"full.yaml", Config{eval.NaiveSubstitution, false, "/tmp/h.bolt", "> "}, false},
		{"partial.yaml", Config{eval.ExactSubstitution, true, "", "$ "}, false},
		{"empty.yaml", Default(), false},
		{"bad-subst.yaml", Default(), true},
		{"unknown.yaml", Default(), true},
		{"invalid.yaml", Default(), true},
		{"missing.yaml", Default(), true},
	}
	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			cfg, err := Read(test.file)
			if (err != nil) != test.wantErr {
				t.Errorf("got error %v, want error %v", err, test.wantErr)
			}
			if !test.wantErr && !cmp.Equal(cfg, test.want) {
				t.Errorf("(-want +got):\n%s", cmp.Diff(test.want, cfg))
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.Unsetenv(t, env.LITECODE_CONFIG)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)

	// A missing default file is fine.
	if cfg, err := Load(""); err != nil || !cmp.Equal(cfg, Default()) {
		t.Errorf("Load with no file -> (%v, %v)", cfg, err)
	}
	// A missing explicit file is not.
	if _, err := Load("nope.yaml"); err == nil {
		t.Errorf("Load of missing explicit file succeeded")
	}

	os.MkdirAll(filepath.Join(dir, "litecode"), 0755)
	os.WriteFile(filepath.Join(dir, "litecode", "config.yaml"), []byte("prompt: 'default> '\n"), 0644)
	os.WriteFile("env.yaml", []byte("prompt: 'env> '\n"), 0644)
	os.WriteFile("flag.yaml", []byte("prompt: 'flag> '\n"), 0644)

	if cfg, _ := Load(""); cfg.Prompt != "default> " {
		t.Errorf("default file not used, prompt %q", cfg.Prompt)
	}
	testutil.Setenv(t, env.LITECODE_CONFIG, "env.yaml")
	if cfg, _ := Load(""); cfg.Prompt != "env> " {
		t.Errorf("$LITECODE_CONFIG not used, prompt %q", cfg.Prompt)
	}
	if cfg, _ := Load("flag.yaml"); cfg.Prompt != "flag> " {
		t.Errorf("explicit file not used, prompt %q", cfg.Prompt)
	}
}
