package layout

import (
	"bufio"
	"os"
	"strings"
	"testing"
)

// The seed tables are reference data, not derived. testdata/seed_maps.golden
// carries the authoritative copy; this test keeps the Go literals in sync
// with it, in both directions.
func TestSeedMapsMatchGolden(t *testing.T) {
	f, err := os.Open("testdata/seed_maps.golden")
	if err != nil {
		t.Fatalf("opening golden file: %v", err)
	}
	defer f.Close()

	golden := make(map[Layout]map[rune]rune)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			t.Fatalf("golden line %d: %d fields, want 3", line, len(fields))
		}
		l, err := Parse(fields[0])
		if err != nil {
			t.Fatalf("golden line %d: %v", line, err)
		}
		key := []rune(fields[1])
		val := []rune(fields[2])
		if len(key) != 1 || len(val) != 1 {
			t.Fatalf("golden line %d: key and value must be single characters", line)
		}
		if golden[l] == nil {
			golden[l] = make(map[rune]rune)
		}
		if _, dup := golden[l][key[0]]; dup {
			t.Fatalf("golden line %d: duplicate key %q for %s", line, fields[1], l)
		}
		golden[l][key[0]] = val[0]
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	seeds := seedMaps()
	if len(golden) != len(seeds) {
		t.Fatalf("golden file covers %d layouts, seeds cover %d", len(golden), len(seeds))
	}

	for l, want := range golden {
		got, ok := seeds[l]
		if !ok {
			t.Errorf("no seed map for %s", l)
			continue
		}
		if len(got) != len(want) {
			t.Errorf("%s seed map has %d entries, golden has %d", l, len(got), len(want))
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("%s seed maps %q -> %q, golden says %q",
					l, string(k), string(got[k]), string(v))
			}
		}
	}
}
