package vivado

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hdltools/fbt/design"
)

// xdcSeparator returns a banner comment opening a constraint-file section.
func xdcSeparator(msg string) string {
	r := strings.Repeat("#", 80) + "\n"
	r += "# " + msg + "\n"
	r += strings.Repeat("#", 80) + "\n"
	return r
}

// formatConstraint renders one constraint as a set_property statement without
// the trailing port reference. Constraints with no textual representation
// report ok == false.
func formatConstraint(c design.Constraint) (stmt string, ok bool, err error) {
	switch c := c.(type) {
	case design.Location:
		return "set_property LOC " + c.Sites[0], true, nil
	case design.IOStandard:
		return "set_property IOSTANDARD " + c.Name, true, nil
	case design.Drive:
		return "set_property DRIVE " + strconv.Itoa(c.Strength), true, nil
	case design.Attribute:
		if c.Value == "" {
			return "set_property " + c.Key, true, nil
		}
		return "set_property " + c.Key + " " + strings.ReplaceAll(c.Value, "=", " "), true, nil
	case design.Inverted:
		return "", false, nil
	default:
		return "", false, &ConfigurationError{Reason: fmt.Sprintf("unknown constraint %T", c)}
	}
}

// formatSignal renders the constraint block of one scalar signal: a comment
// restating the resource name, one line per representable constraint, and a
// trailing blank line.
func formatSignal(name string, res design.ResourceName, constraints ...design.Constraint) (string, error) {
	r := fmt.Sprintf("# %s\n", res)
	for _, c := range constraints {
		stmt, ok, err := formatConstraint(c)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		r += stmt + " [get_ports " + name + "]\n"
	}
	return r + "\n", nil
}

// BuildXDC assembles the constraint file from the resolved per-signal
// constraints and the free-form design constraints. Vector signals are
// expanded into one block per bit, each bound to its own site.
func BuildXDC(signals []design.NamedSignal, constraints []string) (string, error) {
	r := xdcSeparator("IO constraints")
	for _, sig := range signals {
		switch {
		case len(sig.Sites) > 1:
			for i, site := range sig.Sites {
				cs := append([]design.Constraint{design.Location{Sites: []string{site}}}, sig.Others...)
				block, err := formatSignal(fmt.Sprintf("%s[%d]", sig.Name, i), sig.Resource, cs...)
				if err != nil {
					return "", err
				}
				r += block
			}
		case len(sig.Sites) == 1:
			cs := append([]design.Constraint{design.Location{Sites: sig.Sites}}, sig.Others...)
			block, err := formatSignal(sig.Name, sig.Resource, cs...)
			if err != nil {
				return "", err
			}
			r += block
		default:
			block, err := formatSignal(sig.Name, sig.Resource, sig.Others...)
			if err != nil {
				return "", err
			}
			r += block
		}
	}
	r += xdcSeparator("Design constraints")
	if len(constraints) > 0 {
		r += "\n" + strings.Join(constraints, "\n\n")
	}
	return r, nil
}
