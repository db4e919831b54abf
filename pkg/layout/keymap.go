package layout

import (
	"fmt"
	"log/slog"
	"sort"
)

// Pair is an ordered (from, to) layout pair keying the keymap table.
type Pair struct {
	From Layout
	To   Layout
}

// Table holds the complete set of pairwise substitution maps. It is built
// once by Build and never mutated afterwards, so it is safe to share by
// reference across goroutines without locking.
type Table struct {
	maps map[Pair]map[rune]rune
}

// Build derives the complete keymap table from the seed maps:
//
//  1. Each seed map is inserted under (Qwerty, peripheral).
//  2. The reverse direction (peripheral, Qwerty) is built by swapping every
//     (k, v) entry to (v, k). Source keys are iterated in sorted order, so
//     when a seed maps two keys to the same value the greater source
//     character wins deterministically. The published Colemak table has two
//     such collisions ('r' and ';' both produce 'p'); each one is logged.
//  3. Every ordered pair of distinct peripherals (A, B) is composed through
//     the hub: for each (k, v) in (A, Qwerty), k maps to the (Qwerty, B)
//     image of v, or to v itself when B has no entry for it. A key with no
//     equivalent keeps the hub character as its visible output; do not turn
//     this into an error, round-tripping depends on it.
//
// Build fails only when the resulting table is missing a pair, which would
// be a programming defect rather than a data condition.
func Build() (*Table, error) {
	maps := make(map[Pair]map[rune]rune)

	for peripheral, seed := range seedMaps() {
		maps[Pair{Qwerty, peripheral}] = seed
	}

	// Inversion.
	for _, peripheral := range Peripherals() {
		seed := maps[Pair{Qwerty, peripheral}]
		inverse := make(map[rune]rune, len(seed))
		for _, k := range sortedKeys(seed) {
			v := seed[k]
			if prev, dup := inverse[v]; dup {
				slog.Warn("seed map not injective, later entry wins",
					"layout", peripheral.String(),
					"value", string(v),
					"replaced_key", string(prev),
					"key", string(k),
				)
			}
			inverse[v] = k
		}
		maps[Pair{peripheral, Qwerty}] = inverse
	}

	// Composition through the hub.
	for _, from := range Peripherals() {
		for _, to := range Peripherals() {
			if from == to {
				continue
			}
			toHub := maps[Pair{from, Qwerty}]
			fromHub := maps[Pair{Qwerty, to}]
			composed := make(map[rune]rune, len(toHub))
			for k, v := range toHub {
				if w, ok := fromHub[v]; ok {
					composed[k] = w
				} else {
					composed[k] = v
				}
			}
			maps[Pair{from, to}] = composed
		}
	}

	t := &Table{maps: maps}
	if err := t.verifyComplete(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the substitution map for an ordered layout pair. The second
// return value is false when from == to (same-layout conversion is an
// identity pass, no table is materialized) or when the pair is unknown. The
// returned map is shared and must not be modified.
func (t *Table) Lookup(from, to Layout) (map[rune]rune, bool) {
	m, ok := t.maps[Pair{from, to}]
	return m, ok
}

// verifyComplete checks that every ordered pair of distinct supported
// layouts has a table entry.
func (t *Table) verifyComplete() error {
	for _, from := range Layouts() {
		for _, to := range Layouts() {
			if from == to {
				continue
			}
			if _, ok := t.maps[Pair{from, to}]; !ok {
				return fmt.Errorf("keymap table incomplete: missing %s -> %s", from, to)
			}
		}
	}
	return nil
}

// sortedKeys returns the keys of m in ascending rune order.
func sortedKeys(m map[rune]rune) []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
