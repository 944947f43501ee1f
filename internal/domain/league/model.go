package league

import (
	"sort"
	"strings"
)

// League is a competition the service knows how to query upstream.
type League struct {
	Name string
	ID   int
}

// DefaultIDByName returns the built-in competition registry keyed by
// display name. IDs are the API-Football league identifiers.
func DefaultIDByName() map[string]int {
	return map[string]int{
		"Premier League":          39,
		"Bundesliga":              78,
		"La Liga":                 140,
		"Serie A":                 135,
		"Ligue 1":                 61,
		"Eredivisie":              88,
		"Serie A (Brazil)":        71,
		"Primeira Liga":           94,
		"Liga MX":                 262,
		"Premier League (Russia)": 235,
	}
}

// Registry resolves league display names to provider IDs. Lookups are
// case-insensitive; the stored display casing is preserved for listings.
type Registry struct {
	idByKey   map[string]int
	nameByKey map[string]string
}

func NewRegistry(idByName map[string]int) *Registry {
	r := &Registry{
		idByKey:   make(map[string]int, len(idByName)),
		nameByKey: make(map[string]string, len(idByName)),
	}
	for name, id := range idByName {
		display := strings.TrimSpace(name)
		if display == "" || id <= 0 {
			continue
		}
		key := registryKey(display)
		r.idByKey[key] = id
		r.nameByKey[key] = display
	}
	return r
}

// ID resolves a league name. The second return is false for names the
// registry does not know; callers must not contact the provider in that case.
func (r *Registry) ID(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.idByKey[registryKey(name)]
	return id, ok
}

// Leagues lists the registered competitions sorted by display name.
func (r *Registry) Leagues() []League {
	if r == nil {
		return nil
	}
	out := make([]League, 0, len(r.idByKey))
	for key, id := range r.idByKey {
		out = append(out, League{Name: r.nameByKey[key], ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func registryKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
