package hardware

import (
	"os"
	"path/filepath"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func newSysfsRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "export"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func addLine(t *testing.T, root string, n string) {
	t.Helper()
	dir := filepath.Join(root, "gpio"+n)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"direction", "value"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSysfsLifecycle(t *testing.T) {
	root := newSysfsRoot(t)
	lines := NewSysfsLines(root)

	if err := lines.Export(542); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := readFile(t, filepath.Join(root, "export")); got != "542" {
		t.Fatalf("export file = %q, want 542", got)
	}

	// The kernel creates gpio542/ in response to the export write.
	addLine(t, root, "542")

	if err := lines.SetDirection(542, Out); err != nil {
		t.Fatalf("SetDirection: %v", err)
	}
	if got := readFile(t, filepath.Join(root, "gpio542", "direction")); got != "out" {
		t.Fatalf("direction = %q, want out", got)
	}

	if err := lines.SetLevel(542, 1); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if got := readFile(t, filepath.Join(root, "gpio542", "value")); got != "1" {
		t.Fatalf("value = %q, want 1", got)
	}
}

func TestSysfsExportAlreadyExported(t *testing.T) {
	root := newSysfsRoot(t)
	addLine(t, root, "543")

	if err := NewSysfsLines(root).Export(543); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := readFile(t, filepath.Join(root, "export")); got != "" {
		t.Fatalf("export file = %q, want untouched", got)
	}
}

func TestSysfsDirectionMissingLine(t *testing.T) {
	lines := NewSysfsLines(newSysfsRoot(t))
	if err := lines.SetDirection(547, Out); err == nil {
		t.Fatal("SetDirection on unexported line succeeded")
	}
}

func TestNewLineDriverUnknown(t *testing.T) {
	if _, err := NewLineDriver(LineDriverConfig{Backend: "libgpiod"}); err == nil {
		t.Fatal("NewLineDriver(libgpiod) succeeded")
	}
}
