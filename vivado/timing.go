package vivado

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/hdltools/fbt/design"
)

// AttrTranslate maps elaboration signal attributes to the Vivado attribute
// and value emitted by the HDL renderer. Attributes mapped to nil have no
// Vivado equivalent and are dropped.
var AttrTranslate = map[string][]string{
	"keep":             {"dont_touch", "true"},
	"no_retiming":      {"dont_touch", "true"},
	"async_reg":        {"async_reg", "true"},
	"mr_ff":            {"mr_ff", "true"},
	"ars_ff1":          {"ars_ff1", "true"},
	"ars_ff2":          {"ars_ff2", "true"},
	"no_shreg_extract": nil,
}

// TranslateAttrs maps the elaboration attributes of a signal to the
// Attribute constraints understood by Vivado. Unknown attributes are skipped.
// HDL renderers call this to annotate the signals of their generated output.
func TranslateAttrs(sig *design.Signal) []design.Attribute {
	var attrs []design.Attribute
	for _, a := range sig.Attrs() {
		t, ok := AttrTranslate[a]
		if !ok || t == nil {
			continue
		}
		attrs = append(attrs, design.Attribute{Key: t[0], Value: t[1]})
	}
	return attrs
}

// TimingConstraints collects the clock periods and asynchronous clock-domain
// pairs of one build. A registry accepts registrations until Drain converts
// it into constraint-file fragments; any registration after that fails with
// a StateError.
type TimingConstraints struct {
	clocks     map[string]float64
	seq        map[string]int
	nextSeq    int
	falsePaths [][2]string
	finalized  bool
}

// NewTimingConstraints creates an empty, open registry.
func NewTimingConstraints() *TimingConstraints {
	return &TimingConstraints{
		clocks: map[string]float64{},
		seq:    map[string]int{},
	}
}

// roundPeriod rounds a period in nanoseconds down to the next picosecond.
func roundPeriod(periodNS float64) float64 {
	return math.Floor(periodNS*1e3) / 1e3
}

// seqFor returns the registration-order key of a signal, assigning the next
// one on first sight. Drain sorts by this key instead of map iteration order.
func (t *TimingConstraints) seqFor(name string) int {
	if s, ok := t.seq[name]; ok {
		return s
	}
	s := t.nextSeq
	t.seq[name] = s
	t.nextSeq++
	return s
}

// AddPeriodConstraint registers the period of clk in nanoseconds, rounded
// down to the next picosecond. Re-registering an identical period is a no-op;
// a differing period is a ConflictingConstraintError.
func (t *TimingConstraints) AddPeriodConstraint(clk *design.Signal, periodNS float64) error {
	if t.finalized {
		return &StateError{Op: "add period constraint"}
	}
	clk.AddAttr("keep")
	period := roundPeriod(periodNS)
	if existing, ok := t.clocks[clk.Name]; ok {
		if existing != period {
			return &ConflictingConstraintError{Clock: clk.Name, Existing: existing, New: period}
		}
		return nil
	}
	t.seqFor(clk.Name)
	t.clocks[clk.Name] = period
	return nil
}

// AddFalsePathConstraint declares the clock domains of from and to as
// asynchronous to each other. The pair is unordered: a pair that was already
// registered in either order is a no-op.
func (t *TimingConstraints) AddFalsePathConstraint(from, to *design.Signal) error {
	if t.finalized {
		return &StateError{Op: "add false path constraint"}
	}
	from.AddAttr("keep")
	to.AddAttr("keep")
	for _, p := range t.falsePaths {
		if (p[0] == from.Name && p[1] == to.Name) || (p[0] == to.Name && p[1] == from.Name) {
			return nil
		}
	}
	t.seqFor(from.Name)
	t.seqFor(to.Name)
	t.falsePaths = append(t.falsePaths, [2]string{from.Name, to.Name})
	return nil
}

// Drain converts the registry into constraint-file fragments and finalizes
// it: one create_clock fragment per registered clock and one set_clock_groups
// fragment per false-path pair, both in registration order, followed by the
// synchronizer boilerplate. After Drain the registry accepts no further
// registrations.
func (t *TimingConstraints) Drain() ([]string, error) {
	if t.finalized {
		return nil, &StateError{Op: "drain"}
	}
	t.finalized = true

	fragments := []string{xdcSeparator("Clock constraints")}

	names := make([]string, 0, len(t.clocks))
	for name := range t.clocks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return t.seq[names[i]] < t.seq[names[j]] })
	for _, name := range names {
		fragments = append(fragments, fmt.Sprintf(
			"create_clock -name %s -period %s [get_nets %s]",
			name, strconv.FormatFloat(t.clocks[name], 'f', -1, 64), name))
	}

	pairs := append([][2]string{}, t.falsePaths...)
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return t.seq[pairs[i][0]] < t.seq[pairs[j][0]]
		}
		return t.seq[pairs[i][1]] < t.seq[pairs[j][1]]
	})
	for _, p := range pairs {
		fragments = append(fragments, fmt.Sprintf(
			"set_clock_groups "+
				"-group [get_clocks -include_generated_clocks -of [get_nets %s]] "+
				"-group [get_clocks -include_generated_clocks -of [get_nets %s]] "+
				"-asynchronous", p[0], p[1]))
	}

	fragments = append(fragments, xdcSeparator("False path constraints"))
	// A net crossing clock domains through a bit synchronizer is a false path.
	fragments = append(fragments,
		"set_false_path -quiet "+
			"-through [get_nets -hierarchical -filter {mr_ff == TRUE}]")
	// The asynchronous reset input to a reset synchronizer is a false path.
	fragments = append(fragments,
		"set_false_path -quiet "+
			"-to [get_pins -filter {REF_PIN_NAME == PRE} "+
			"-of_objects [get_cells -hierarchical -filter {ars_ff1 == TRUE || ars_ff2 == TRUE}]]")
	// clock_period-2ns to resolve metastability on the wire between the reset synchronizer FFs.
	fragments = append(fragments,
		"set_max_delay 2 -quiet "+
			"-from [get_pins -filter {REF_PIN_NAME == C} "+
			"-of_objects [get_cells -hierarchical -filter {ars_ff1 == TRUE}]] "+
			"-to [get_pins -filter {REF_PIN_NAME == D} "+
			"-of_objects [get_cells -hierarchical -filter {ars_ff2 == TRUE}]]")

	return fragments, nil
}
