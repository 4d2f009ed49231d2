package fenconfigs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fenlang/fen/configs"
)

func TestOptions(t *testing.T) {
	t.Setenv("FEN_STRICT", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "fen.cue")
	if err := os.WriteFile(path, []byte(`
max_steps: 5000
strict_mode: true
lexical_mode: false
`), 0644); err != nil {
		t.Fatal(err)
	}
	loader := configs.NewLoader([]string{path}, schema)

	var m Module
	if n := m.MaxSteps(loader); n != 5000 {
		t.Fatalf("got %v", n)
	}
	if n := m.MaxCallDepth(loader); n != 0 {
		t.Fatalf("got %v", n)
	}
	if !m.StrictMode(loader) {
		t.Fatal()
	}
	if m.LexicalMode(loader) {
		t.Fatal()
	}

	// defaults with no config
	empty := configs.NewLoader(nil, "")
	if m.StrictMode(empty) {
		t.Fatal()
	}
	if !m.LexicalMode(empty) {
		t.Fatal()
	}

	t.Setenv("FEN_STRICT", "yes")
	if !m.StrictMode(empty) {
		t.Fatal()
	}
}
