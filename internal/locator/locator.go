package locator

import "github.com/mcncl/jsonsieve/internal/models"

// FindKey walks root in pre-order and collects every object that directly
// owns key. A matching object is still descended into, so an outer match is
// reported before any match nested inside it. Arrays are visited in index
// order, objects in insertion order; scalars end the walk.
func FindKey(root models.Value, key string) []*models.Object {
	var matches []*models.Object
	walk(root, key, &matches)
	return matches
}

func walk(value models.Value, key string, matches *[]*models.Object) {
	switch v := value.(type) {
	case models.Array:
		for _, element := range v {
			walk(element, key, matches)
		}
	case *models.Object:
		if v.Has(key) {
			*matches = append(*matches, v)
		}
		for _, k := range v.Keys() {
			walk(v.Value(k), key, matches)
		}
	}
}
