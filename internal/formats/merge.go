package formats

import "github.com/famomatic/ytinfo/internal/types"

// Merge combines the primary list with auxiliary stub sets applied in the
// given order. The primary list is inserted first; a stub is added only when
// its id is not present yet, so earlier sources always win. The result
// follows first-occurrence order. Nil sets are skipped.
func Merge(primary []types.Format, aux ...*StubSet) []types.Format {
	index := make(map[string]int, len(primary))
	out := make([]types.Format, 0, len(primary))

	for _, f := range primary {
		if i, ok := index[f.ID]; ok {
			out[i] = f
			continue
		}
		index[f.ID] = len(out)
		out = append(out, f)
	}

	for _, set := range aux {
		for _, stub := range set.Stubs() {
			if _, ok := index[stub.ID]; ok {
				continue
			}
			index[stub.ID] = len(out)
			out = append(out, types.Format{
				ID:   stub.ID,
				Itag: types.ItagFromID(stub.ID),
				URL:  stub.URL,
			})
		}
	}
	return out
}
