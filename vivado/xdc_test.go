package vivado

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdltools/fbt/design"
)

type bogusConstraint struct{}

func (bogusConstraint) IsConstraint() {}

func TestFormatConstraint(t *testing.T) {
	tests := []struct {
		name string
		c    design.Constraint
		stmt string
		ok   bool
	}{
		{"location", design.Location{Sites: []string{"A1"}}, "set_property LOC A1", true},
		{"location uses first site", design.Location{Sites: []string{"B1", "B2"}}, "set_property LOC B1", true},
		{"iostandard", design.IOStandard{Name: "LVCMOS33"}, "set_property IOSTANDARD LVCMOS33", true},
		{"drive", design.Drive{Strength: 8}, "set_property DRIVE 8", true},
		{"attribute", design.Attribute{Key: "SLEW", Value: "FAST"}, "set_property SLEW FAST", true},
		{"attribute normalizes separator", design.Attribute{Key: "PULLMODE", Value: "MODE=UP"}, "set_property PULLMODE MODE UP", true},
		{"attribute without value", design.Attribute{Key: "IOB"}, "set_property IOB", true},
		{"inverted has no output", design.Inverted{Invert: true}, "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stmt, ok, err := formatConstraint(test.c)
			require.NoError(t, err)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.stmt, stmt)
		})
	}
}

func TestFormatConstraintIsPure(t *testing.T) {
	c := design.IOStandard{Name: "LVCMOS18"}
	first, ok1, err1 := formatConstraint(c)
	second, ok2, err2 := formatConstraint(c)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestFormatConstraintUnknown(t *testing.T) {
	_, _, err := formatConstraint(bogusConstraint{})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuildXDCSingleBit(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:     "clk",
		Sites:    []string{"A1"},
		Others:   []design.Constraint{design.IOStandard{Name: "LVCMOS33"}},
		Resource: design.ResourceName{Group: "X", Index: 0},
	}}
	xdc, err := BuildXDC(signals, nil)
	require.NoError(t, err)

	expected := xdcSeparator("IO constraints") +
		"# X:0\n" +
		"set_property LOC A1 [get_ports clk]\n" +
		"set_property IOSTANDARD LVCMOS33 [get_ports clk]\n" +
		"\n" +
		xdcSeparator("Design constraints")
	assert.Equal(t, expected, xdc)
}

func TestBuildXDCVector(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:     "data",
		Sites:    []string{"B1", "B2"},
		Resource: design.ResourceName{Group: "io", Index: 3},
	}}
	xdc, err := BuildXDC(signals, nil)
	require.NoError(t, err)

	expected := xdcSeparator("IO constraints") +
		"# io:3\n" +
		"set_property LOC B1 [get_ports data[0]]\n" +
		"\n" +
		"# io:3\n" +
		"set_property LOC B2 [get_ports data[1]]\n" +
		"\n" +
		xdcSeparator("Design constraints")
	assert.Equal(t, expected, xdc)
}

func TestBuildXDCVectorSharesConstraints(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:  "led",
		Sites: []string{"C1", "C2", "C3"},
		Others: []design.Constraint{
			design.IOStandard{Name: "LVCMOS25"},
			design.Drive{Strength: 4},
		},
		Resource: design.ResourceName{Group: "leds", Index: 0},
	}}
	xdc, err := BuildXDC(signals, nil)
	require.NoError(t, err)

	for i, site := range []string{"C1", "C2", "C3"} {
		assert.Contains(t, xdc, fmt.Sprintf("set_property LOC %s [get_ports led[%d]]\n", site, i))
	}
	assert.Equal(t, 3, strings.Count(xdc, "set_property IOSTANDARD LVCMOS25"))
	assert.Equal(t, 3, strings.Count(xdc, "set_property DRIVE 4"))
}

func TestBuildXDCNoSites(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:     "irq",
		Others:   []design.Constraint{design.Attribute{Key: "PULLUP", Value: "TRUE"}},
		Resource: design.ResourceName{Group: "misc", Index: 1, Sub: "irq"},
	}}
	xdc, err := BuildXDC(signals, nil)
	require.NoError(t, err)

	assert.Contains(t, xdc, "# misc:1.irq\nset_property PULLUP TRUE [get_ports irq]\n\n")
	assert.NotContains(t, xdc, "LOC")
}

func TestBuildXDCInvertedOnlyBlockKeepsBlankLine(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:     "rst_n",
		Others:   []design.Constraint{design.Inverted{Invert: true}},
		Resource: design.ResourceName{Group: "rst", Index: 0},
	}}
	xdc, err := BuildXDC(signals, nil)
	require.NoError(t, err)

	assert.Contains(t, xdc, "# rst:0\n\n")
	assert.NotContains(t, xdc, "get_ports rst_n")
}

func TestBuildXDCDesignConstraints(t *testing.T) {
	xdc, err := BuildXDC(nil, []string{"first fragment", "second fragment"})
	require.NoError(t, err)

	expected := xdcSeparator("IO constraints") +
		xdcSeparator("Design constraints") +
		"\nfirst fragment\n\nsecond fragment"
	assert.Equal(t, expected, xdc)
}

func TestBuildXDCUnknownConstraint(t *testing.T) {
	signals := []design.NamedSignal{{
		Name:   "bad",
		Others: []design.Constraint{bogusConstraint{}},
	}}
	_, err := BuildXDC(signals, nil)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}
