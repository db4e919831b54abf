package layout

import "testing"

func buildTable(t *testing.T) *Table {
	t.Helper()
	table, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return table
}

// Every ordered pair of distinct layouts must be materialized.
func TestBuildComplete(t *testing.T) {
	table := buildTable(t)

	for _, from := range Layouts() {
		for _, to := range Layouts() {
			if from == to {
				if _, ok := table.Lookup(from, to); ok {
					t.Errorf("Lookup(%s, %s) materialized a same-layout table", from, to)
				}
				continue
			}
			if _, ok := table.Lookup(from, to); !ok {
				t.Errorf("Lookup(%s, %s) missing", from, to)
			}
		}
	}
}

// The peripheral->hub map must be the functional inverse of the seed map,
// modulo the documented tie-break for non-injective seeds.
func TestInversion(t *testing.T) {
	table := buildTable(t)

	for peripheral, seed := range seedMaps() {
		inverse, ok := table.Lookup(peripheral, Qwerty)
		if !ok {
			t.Fatalf("Lookup(%s, qwerty) missing", peripheral)
		}

		// Size equals the number of distinct seed values.
		distinct := make(map[rune]bool, len(seed))
		for _, v := range seed {
			distinct[v] = true
		}
		if len(inverse) != len(distinct) {
			t.Errorf("%s inverse has %d entries, want %d", peripheral, len(inverse), len(distinct))
		}

		// Every inverse entry must round back through the seed.
		for v, k := range inverse {
			if seed[k] != v {
				t.Errorf("%s inverse maps %q -> %q but seed maps %q -> %q",
					peripheral, string(v), string(k), string(k), string(seed[k]))
			}
		}
	}
}

// The colemak seed maps both 'r' and ';' to 'p'. With sorted-key iteration
// the later source character wins, so the inverse must map 'p' back to 'r'.
func TestInversionTieBreak(t *testing.T) {
	table := buildTable(t)

	inverse, ok := table.Lookup(Colemak, Qwerty)
	if !ok {
		t.Fatal("Lookup(colemak, qwerty) missing")
	}
	if got := inverse['p']; got != 'r' {
		t.Errorf("colemak inverse 'p' -> %q, want 'r'", string(got))
	}
	if got := inverse['P']; got != 'R' {
		t.Errorf("colemak inverse 'P' -> %q, want 'R'", string(got))
	}
}

// Composite maps must chain through the hub: (A,B)[k] == (H,B)[(A,H)[k]]
// whenever the intermediate character has a second-hop entry, and equal the
// intermediate character itself otherwise.
func TestComposition(t *testing.T) {
	table := buildTable(t)

	for _, from := range Peripherals() {
		for _, to := range Peripherals() {
			if from == to {
				continue
			}

			toHub, _ := table.Lookup(from, Qwerty)
			hubTo, _ := table.Lookup(Qwerty, to)
			composed, ok := table.Lookup(from, to)
			if !ok {
				t.Fatalf("Lookup(%s, %s) missing", from, to)
			}

			if len(composed) != len(toHub) {
				t.Errorf("%s->%s has %d entries, want %d (one per %s->qwerty entry)",
					from, to, len(composed), len(toHub), from)
			}

			for k, mid := range toHub {
				want := mid
				if w, ok := hubTo[mid]; ok {
					want = w
				}
				if got := composed[k]; got != want {
					t.Errorf("%s->%s maps %q -> %q, want %q",
						from, to, string(k), string(got), string(want))
				}
			}
		}
	}
}

func TestLookupSameLayout(t *testing.T) {
	table := buildTable(t)

	for _, l := range Layouts() {
		if m, ok := table.Lookup(l, l); ok || m != nil {
			t.Errorf("Lookup(%s, %s) = (%v, %v), want (nil, false)", l, l, m, ok)
		}
	}
}
