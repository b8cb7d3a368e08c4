package scenes

import "sort"

// Registry is the closed set of scenes, built once at machine construction.
// Breadcrumbs and transition targets resolve against it by id; unknown ids
// fail closed to the default scene instead of constructing behavior from
// stored data.
type Registry struct {
	scenes    map[string]Scene
	defaultID string
}

func newRegistry(defaultID string, all ...Scene) *Registry {
	r := &Registry{
		scenes:    make(map[string]Scene, len(all)),
		defaultID: defaultID,
	}
	for _, s := range all {
		r.scenes[s.ID()] = s
	}
	return r
}

// Get returns the scene for the id. The second return is false for ids
// outside the closed set.
func (r *Registry) Get(id string) (Scene, bool) {
	s, ok := r.scenes[id]
	return s, ok
}

// Default returns the entry scene.
func (r *Registry) Default() Scene {
	return r.scenes[r.defaultID]
}

// Contains reports whether the id names a registered scene.
func (r *Registry) Contains(id string) bool {
	_, ok := r.scenes[id]
	return ok
}

// IDs returns the registered scene ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.scenes))
	for id := range r.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
