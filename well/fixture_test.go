package well_test

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/welltris/well"
	"golang.org/x/tools/txtar"
)

var fixtureMaterial = well.NewMaterial(0x3366ff)

type fixture struct {
	grid    *well.Grid
	cleared []int
	want    string
}

// loadFixture reads a txtar archive whose comment carries a "size W H D" line
// and a "cleared ..." line, whose "y=N" files describe layers and whose
// "want" file is the expected rendering after clearing.
func loadFixture(t *testing.T, path string) fixture {
	t.Helper()

	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}

	var f fixture
	scanner := bufio.NewScanner(bytes.NewReader(archive.Comment))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "size "):
			var w, h, d int
			if _, err := fmt.Sscanf(line, "size %d %d %d", &w, &h, &d); err != nil {
				t.Fatalf("bad size line %q: %v", line, err)
			}
			f.grid = well.New(w, h, d)
		case strings.HasPrefix(line, "cleared"):
			for _, field := range strings.Fields(line)[1:] {
				y, err := strconv.Atoi(field)
				if err != nil {
					t.Fatalf("bad cleared line %q: %v", line, err)
				}
				f.cleared = append(f.cleared, y)
			}
		}
	}
	if f.grid == nil {
		t.Fatalf("fixture %s has no size line", path)
	}

	for _, file := range archive.Files {
		if file.Name == "want" {
			f.want = string(file.Data)
			continue
		}
		y, err := strconv.Atoi(strings.TrimPrefix(file.Name, "y="))
		if err != nil {
			t.Fatalf("bad layer name %q", file.Name)
		}
		if err := f.grid.ParseLayer(y, string(file.Data), fixtureMaterial); err != nil {
			t.Fatalf("fixture %s: %v", path, err)
		}
	}
	return f
}
