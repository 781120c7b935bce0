package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWritesPrefixedLines(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(logrus.DebugLevel, &buf), "hwmon")
	log.WithField("addr", "0x48").Info("attached")
	out := buf.String()
	if !strings.Contains(out, "hwmon") || !strings.Contains(out, "attached") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(""); err != nil || l != logrus.InfoLevel {
		t.Fatalf("default: %v %v", l, err)
	}
	if l, err := ParseLevel("debug"); err != nil || l != logrus.DebugLevel {
		t.Fatalf("debug: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}
