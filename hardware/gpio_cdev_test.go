package hardware

import (
	"strings"
	"testing"

	"github.com/warthog618/go-gpiocdev"
)

func TestCdevExportAfterClose(t *testing.T) {
	c := &CdevLines{chipPath: "gpiochip0", lines: make(map[int]*gpiocdev.Line)}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	err := c.Export(542)
	if err == nil || !strings.Contains(err.Error(), "closed") {
		t.Fatalf("Export after Close: err = %v", err)
	}
	if err := c.SetLevel(542, 1); err == nil {
		t.Fatal("SetLevel after Close succeeded")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
