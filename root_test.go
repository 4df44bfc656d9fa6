package deathgate

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/32bitkid/deathgate/resource"
)

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func textFile(flags uint16, payload string) []byte {
	b := make([]byte, 6, 6+len(payload))
	binary.LittleEndian.PutUint16(b[0:], 1)
	binary.LittleEndian.PutUint16(b[2:], uint16(len(payload)))
	binary.LittleEndian.PutUint16(b[4:], flags)
	return append(b, payload...)
}

func byName(descriptors []resource.Descriptor) map[string]resource.Descriptor {
	m := map[string]resource.Descriptor{}
	for _, d := range descriptors {
		m[d.Name] = d
	}
	return m
}

func TestScanImageAndUnknown(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"TITLE.SCR":  make([]byte, 2000),
		"readme.txt": []byte("not a resource"),
	})

	descriptors, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(descriptors))
	}
	d := descriptors[0]
	if d.Kind != resource.KindImage || d.Size != 2000 || d.Name != "TITLE.SCR" {
		t.Fatalf("unexpected %+v", d)
	}
	if d.Path != filepath.Join(dir, "TITLE.SCR") {
		t.Fatalf("unexpected path %s", d.Path)
	}
	if d.Image == nil {
		t.Fatal("expected image details")
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if IsValidResourceDirectory(dir) {
		t.Fatal("empty directory reported valid")
	}
	descriptors, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 0 {
		t.Fatalf("expected no descriptors, got %d", len(descriptors))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := Scan(context.Background(), missing); !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("expected directory not found, got %v", err)
	}
	if IsValidResourceDirectory(missing) {
		t.Fatal("missing directory reported valid")
	}

	file := writeFiles(t, map[string][]byte{"TITLE.SCR": {1}})
	if _, err := Scan(context.Background(), filepath.Join(file, "TITLE.SCR")); !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("expected directory not found for a file, got %v", err)
	}
}

func TestScanContainsFailures(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"strings.txt": {1, 2, 3},
		"DIALOG.TXT":  textFile(9, "hi\x00"),
		"ITEMS.TXT":   textFile(0, "Sword\x00Shield\x00"),
		"INTRO.FLC":   []byte("garbage"),
		"notes.doc":   []byte("ignored"),
	})
	if err := os.Mkdir(filepath.Join(dir, "MUSIC.XMI"), 0o755); err != nil {
		t.Fatal(err)
	}

	descriptors, err := Scan(context.Background(), dir, WithConcurrency(2))
	if err != nil {
		t.Fatal(err)
	}
	found := byName(descriptors)
	if len(found) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(found))
	}

	short := found["strings.txt"]
	if !errors.Is(short.Err, resource.ErrTruncatedHeader) || len(short.Text) != 1 {
		t.Fatalf("unexpected %+v", short)
	}

	dialog := found["DIALOG.TXT"]
	if !errors.Is(dialog.Err, resource.ErrUnsupportedVariant) || len(dialog.Text) != 1 {
		t.Fatalf("unexpected %+v", dialog)
	}
	if !strings.Contains(dialog.Text[0], "unsupported compression variant") {
		t.Fatalf("diagnostic does not name the failure: %q", dialog.Text[0])
	}

	items := found["ITEMS.TXT"]
	if items.Err != nil || !reflect.DeepEqual(items.Text, resource.Text{"Sword", "Shield"}) {
		t.Fatalf("unexpected %+v", items)
	}

	intro := found["INTRO.FLC"]
	if intro.Err == nil || intro.Video == nil || intro.Video.Frames != 100 {
		t.Fatalf("expected default video details, got %+v", intro)
	}
}

func TestScanSkip(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"TITLE.SCR":   make([]byte, 10),
		"DEATH.SCR":   make([]byte, 10),
		"DEATH.FLC":   make([]byte, 10),
		"STRINGS.TXT": textFile(0, "a\x00"),
	})

	descriptors, err := Scan(context.Background(), dir, WithSkip("*.scr", "DEATH.*"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"STRINGS.TXT"}) {
		t.Fatalf("unexpected %q", names)
	}
}

func TestScanCanceled(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"TITLE.SCR": make([]byte, 10)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"readme.txt": nil,
		"voice.wav":  nil,
	})
	if !NewRoot(dir).IsValid() {
		t.Fatal("expected valid directory")
	}

	dir = writeFiles(t, map[string][]byte{"readme.txt": nil})
	if IsValidResourceDirectory(dir) {
		t.Fatal("expected invalid directory")
	}
}

func TestSummarize(t *testing.T) {
	descriptors := []resource.Descriptor{
		{Kind: resource.KindImage},
		{Kind: resource.KindText},
		{Kind: resource.KindText},
	}
	expected := "3 resources: 1 image, 0 video, 0 audio, 2 text"
	if actual := Summarize(descriptors); actual != expected {
		t.Fatalf("expected(%q) != actual(%q)", expected, actual)
	}
	if actual := Summarize(nil); actual != "0 resources: 0 image, 0 video, 0 audio, 0 text" {
		t.Fatalf("unexpected %q", actual)
	}
}

func TestLoadResourceData(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"TITLE.SCR": {1, 2, 3}})
	b, err := LoadResourceData(filepath.Join(dir, "TITLE.SCR"))
	if err != nil || !reflect.DeepEqual(b, []byte{1, 2, 3}) {
		t.Fatalf("unexpected % x, %v", b, err)
	}
	b, err = LoadResourceData(filepath.Join(dir, "MISSING.SCR"))
	if err != nil || len(b) != 0 {
		t.Fatalf("unexpected % x, %v", b, err)
	}
}
