package accessor

import "iter"

// Dedup remembers which accessor was generated first for a canonical
// member key, so later classes inheriting the same member can alias it
// instead of generating it again.
type Dedup struct {
	keys []string
	ids  map[string]string
	hits int
}

// NewDedup creates an empty wrapper table.
func NewDedup() *Dedup {
	return &Dedup{ids: make(map[string]string)}
}

// MethodKey is the key of a member function: the owning base qualified
// member name plus the parameter types.
func MethodKey(member, parms string) string {
	return member + "+" + parms
}

// StaticKey is the key of a static member function.
func StaticKey(cname, parms string) string {
	return cname + "+" + parms
}

// Lookup returns the identity stored for key.
func (d *Dedup) Lookup(key string) (string, bool) {
	id, ok := d.ids[key]
	return id, ok
}

// Resolve returns the identity already stored for key and true, or stores
// id for key and returns false.
func (d *Dedup) Resolve(key, id string) (string, bool) {
	if prev, ok := d.ids[key]; ok {
		d.hits++
		return prev, true
	}
	d.keys = append(d.keys, key)
	d.ids[key] = id
	return "", false
}

// Len returns the number of keys.
func (d *Dedup) Len() int {
	return len(d.keys)
}

// Hits returns how many Resolve calls found an existing key.
func (d *Dedup) Hits() int {
	return d.hits
}

// All iterates keys and identities in insertion order.
func (d *Dedup) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range d.keys {
			if !yield(k, d.ids[k]) {
				return
			}
		}
	}
}
