package clocktree

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseHexExport(t *testing.T) {
	in := `# LMK04828 export
R0 (INIT)	0x000090
R0	0x000010

R2	0x000200   # powerdown off
0x000306
`
	words, err := ParseHexExport(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseHexExport: %v", err)
	}
	want := []Word{0x000090, 0x000010, 0x000200, 0x000306}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
}

func TestParseHexExportErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"# only a comment\n",
		"R0 90\n",
		"R0 0x1000000\n",
		"R0 0xZZ\n",
	} {
		if _, err := ParseHexExport(strings.NewReader(in)); err == nil {
			t.Errorf("ParseHexExport(%q) succeeded", in)
		}
	}
}

func TestRegisterFromWord(t *testing.T) {
	r, err := RegisterFromWord(0x1FFF53)
	if err != nil || r != (Register{0x1FFF, 0x53}) {
		t.Fatalf("RegisterFromWord(0x1FFF53) = %v, %v", r, err)
	}
	for _, w := range []Word{0x800003, 0x200000, 0x400000} {
		if _, err := RegisterFromWord(w); err == nil {
			t.Errorf("RegisterFromWord(%v) succeeded", w)
		}
	}
}

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regs.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImages(t *testing.T) {
	lmk, err := LoadConditionerImage(writeExport(t, "R0 0x000090\nR0 0x000010\nR2 0x000200\n"), 0)
	if err != nil {
		t.Fatalf("LoadConditionerImage: %v", err)
	}
	want := []Register{{0x0000, 0x90}, {0x0000, 0x10}, {0x0002, 0x00}}
	if !reflect.DeepEqual(lmk.Entries(), want) {
		t.Fatalf("conditioner entries = %v", lmk.Entries())
	}

	lmx, err := LoadSynthesizerImage(writeExport(t, "R112 0x700000\nR111 0x6F0000\n"), 0)
	if err != nil {
		t.Fatalf("LoadSynthesizerImage: %v", err)
	}
	if !reflect.DeepEqual(lmx.Entries(), []Word{0x700000, 0x6F0000}) {
		t.Fatalf("synthesizer entries = %v", lmx.Entries())
	}

	if _, err := LoadSynthesizerImage(writeExport(t, "R0 0x80241C\n"), 0); err == nil {
		t.Fatal("read word accepted in synthesizer image")
	}
	if _, err := LoadConditionerImage(filepath.Join(t.TempDir(), "missing.txt"), 0); err == nil {
		t.Fatal("missing file accepted")
	}
}
