package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/32bitkid/deathgate/resource"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, resource.Descriptor{
		Name: "STRINGS.TXT",
		Kind: resource.KindText,
		Size: 12,
		Text: resource.Text{"Haplo", "Alfred"},
	}, true)

	out := buf.String()
	for _, want := range []string{"STRINGS.TXT", "text", "2 lines", "Haplo", "Alfred"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	d := resource.Descriptor{Name: "INTRO.FLC", Kind: resource.KindVideo}
	d.Populate([]byte{1})
	report(&buf, d, false)

	if !strings.Contains(buf.String(), "error=") || !strings.Contains(buf.String(), "100 frames") {
		t.Fatalf("unexpected %q", buf.String())
	}
}
