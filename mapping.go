package deathgate

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/32bitkid/deathgate/resource"
	"github.com/pkg/errors"
)

type diskMapping struct {
	name string
	path string
	kind resource.Kind
}

// Descriptor reads the file and parses it. The returned descriptor is not
// retained.
func (dm diskMapping) Descriptor() resource.Descriptor {
	d := resource.Descriptor{
		Name: dm.name,
		Kind: dm.kind,
		Path: dm.path,
	}

	info, err := os.Stat(dm.path)
	if err != nil {
		return unreadable(d, err)
	}
	d.Size = uint64(info.Size())

	b, err := os.ReadFile(dm.path)
	if err != nil {
		return unreadable(d, err)
	}
	d.Populate(b)
	return d
}

func unreadable(d resource.Descriptor, err error) resource.Descriptor {
	d.Err = errors.Wrap(err, "read")
	if d.Kind == resource.KindText {
		d.Text = resource.Text{fmt.Sprintf("Error loading text resource: %v", err)}
	}
	return d
}

// LoadResourceData returns the raw contents of a resource file. A missing
// file yields no data and no error.
func LoadResourceData(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []byte{}, nil
	}
	return b, errors.WithStack(err)
}

// Summarize counts descriptors per kind, e.g.
// "3 resources: 1 image, 0 video, 0 audio, 2 text".
func Summarize(descriptors []resource.Descriptor) string {
	counts := map[resource.Kind]int{}
	for _, d := range descriptors {
		counts[d.Kind]++
	}

	noun := "resources"
	if len(descriptors) == 1 {
		noun = "resource"
	}

	parts := make([]string, 0, len(resource.Kinds))
	for _, kind := range resource.Kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind.Label()))
	}
	return fmt.Sprintf("%d %s: %s", len(descriptors), noun, strings.Join(parts, ", "))
}
