// Package accessor builds the low-level C accessor functions a binding
// exposes for class members, names them, and shares them between classes
// that inherit a member unchanged.
package accessor

import (
	"errors"
	"fmt"
	"strings"
)

// Default name formats.
const (
	DefaultMember    = "%c_%m"
	DefaultGet       = "%v_get"
	DefaultSet       = "%v_set"
	DefaultConstruct = "new_%c"
	DefaultDestroy   = "delete_%c"
)

var ErrBadFormat = errors.New("accessor: bad name format")

// Naming holds the format strings used to derive accessor names.
// %c expands to a class name, %m to a member name and %v to an already
// qualified member name such as "Shape_area".
type Naming struct {
	Member    string `yaml:"member" json:"member"`
	Get       string `yaml:"get" json:"get"`
	Set       string `yaml:"set" json:"set"`
	Construct string `yaml:"construct" json:"construct"`
	Destroy   string `yaml:"destroy" json:"destroy"`
}

// DefaultNaming returns the stock formats.
func DefaultNaming() Naming {
	return Naming{
		Member:    DefaultMember,
		Get:       DefaultGet,
		Set:       DefaultSet,
		Construct: DefaultConstruct,
		Destroy:   DefaultDestroy,
	}
}

// WithDefaults fills empty formats from DefaultNaming.
func (n Naming) WithDefaults() Naming {
	d := DefaultNaming()
	if n.Member == "" {
		n.Member = d.Member
	}
	if n.Get == "" {
		n.Get = d.Get
	}
	if n.Set == "" {
		n.Set = d.Set
	}
	if n.Construct == "" {
		n.Construct = d.Construct
	}
	if n.Destroy == "" {
		n.Destroy = d.Destroy
	}
	return n
}

// Validate checks that every format mentions the placeholder it needs.
func (n Naming) Validate() error {
	checks := []struct {
		field, format, verb string
	}{
		{"member", n.Member, "%m"},
		{"get", n.Get, "%v"},
		{"set", n.Set, "%v"},
		{"construct", n.Construct, "%c"},
		{"destroy", n.Destroy, "%c"},
	}
	for _, c := range checks {
		if !strings.Contains(c.format, c.verb) {
			return fmt.Errorf("%w: %s format %q lacks %s", ErrBadFormat, c.field, c.format, c.verb)
		}
	}
	return nil
}

func expand(format, class, member string) string {
	return strings.NewReplacer("%c", class, "%m", member, "%v", member).Replace(format)
}

// MemberName names the accessor of member in class, "Shape_area".
func (n Naming) MemberName(class, member string) string {
	return expand(n.Member, class, member)
}

// GetName names the getter for a qualified member name.
func (n Naming) GetName(v string) string {
	return expand(n.Get, "", v)
}

// SetName names the setter for a qualified member name.
func (n Naming) SetName(v string) string {
	return expand(n.Set, "", v)
}

// ConstructName names the constructor accessor of class.
func (n Naming) ConstructName(class string) string {
	return expand(n.Construct, class, "")
}

// DestroyName names the destructor accessor of class.
func (n Naming) DestroyName(class string) string {
	return expand(n.Destroy, class, "")
}
