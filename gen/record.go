package gen

import (
	"sort"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// record is the heterogeneous product arbitrary behind Record: each
// named field is drawn and shrunk independently and combined into a
// map[string]any, the Go stand-in for the spec's "record" shape since Go
// generics cannot quantify over a struct's field set. Field iteration
// order is the sorted key order, so two runs over the same fields map
// produce identical corner-case and shrink-candidate orderings.
type record struct {
	fields map[string]Arbitrary[any]
	keys   []string
}

// Record generates map[string]any values where each key is drawn from
// its own declared arbitrary.
func Record(fields map[string]Arbitrary[any]) Arbitrary[map[string]any] {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &record{fields: fields, keys: keys}
}

func cloneRecord(v map[string]any) map[string]any {
	out := make(map[string]any, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

func (rc *record) draw(r *prng.Prng) map[string]any {
	out := make(map[string]any, len(rc.keys))
	for _, k := range rc.keys {
		picks := rc.fields[k].Sample(r, 1)
		if len(picks) > 0 {
			out[k] = picks[0].Value
		}
	}
	return out
}

func (rc *record) Sample(r *prng.Prng, n int) []Pick[map[string]any] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[map[string]any], n)
	for i := range out {
		out[i] = NewPick(rc.draw(r))
	}
	return out
}

func (rc *record) SampleWithBias(r *prng.Prng, n int) []Pick[map[string]any] {
	return sampleWithBiasN(r, n, rc.Size(), pickValues(rc.CornerCases()), rc.draw)
}

func (rc *record) SampleUnique(r *prng.Prng, n int, exclude []map[string]any) []Pick[map[string]any] {
	return sampleUniqueN(r, n, rc.Size(), exclude, rc.draw)
}

// CornerCases returns the all-baseline record (every field at its first
// corner case) plus, for each field in turn, one variant substituting
// that field's other corner cases — the same bounded-combinatorics
// approach arrayCornerCases uses, rather than the full Cartesian product
// across every field.
func (rc *record) CornerCases() []Pick[map[string]any] {
	if len(rc.keys) == 0 {
		return []Pick[map[string]any]{NewPick(map[string]any{})}
	}
	baseline := make(map[string]any, len(rc.keys))
	fieldCorners := make(map[string][]any, len(rc.keys))
	for _, k := range rc.keys {
		cc := rc.fields[k].CornerCases()
		vals := pickValues(cc)
		fieldCorners[k] = vals
		if len(vals) > 0 {
			baseline[k] = vals[0]
		}
	}
	out := []Pick[map[string]any]{NewPick(cloneRecord(baseline))}
	for _, k := range rc.keys {
		for _, v := range fieldCorners[k][1:] {
			variant := cloneRecord(baseline)
			variant[k] = v
			out = append(out, NewPick(variant))
		}
	}
	return out
}

func (rc *record) Size() Size {
	if len(rc.keys) == 0 {
		return Exact(1)
	}
	sz := rc.fields[rc.keys[0]].Size()
	for _, k := range rc.keys[1:] {
		sz = combineSizeProduct(sz, rc.fields[k].Size())
	}
	return sz
}

func (rc *record) CanGenerate(pick Pick[map[string]any]) bool {
	for _, k := range rc.keys {
		v, ok := pick.Value[k]
		if !ok || !rc.fields[k].CanGenerate(NewPick(v)) {
			return false
		}
	}
	return true
}

func (rc *record) Shrink(towards Pick[map[string]any]) Arbitrary[map[string]any] {
	candidates := recordNeighbors(rc.fields, rc.keys, towards.Value)
	if len(candidates) == 0 {
		return NoArbitrary[map[string]any]()
	}
	return newEnumerated(candidates,
		func(base map[string]any) []map[string]any { return recordNeighbors(rc.fields, rc.keys, base) },
		func(cand, origin map[string]any) bool { return valueKey(cand) != valueKey(origin) },
		func(v map[string]any) bool { return rc.CanGenerate(NewPick(v)) },
	)
}

func recordNeighbors(fields map[string]Arbitrary[any], keys []string, base map[string]any) []map[string]any {
	var out []map[string]any
	for _, k := range keys {
		fieldArb, ok := fields[k]
		if !ok {
			continue
		}
		shrunk := fieldArb.Shrink(NewPick(base[k]))
		if IsNoArbitrary(shrunk) {
			continue
		}
		for _, p := range shrunk.CornerCases() {
			variant := cloneRecord(base)
			variant[k] = p.Value
			out = append(out, variant)
		}
	}
	return out
}

func (rc *record) CalculateIndex(pick Pick[map[string]any], precision int) float64 {
	return genericIndex(pick, precision)
}

func (rc *record) CalculateCoverage(seen []Pick[map[string]any], precision int) float64 {
	return genericCoverage(seen, rc.Size(), precision)
}
