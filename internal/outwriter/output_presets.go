package outwriter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// PrintPresets renders the sensitivity gates and the active policy bands.
// Purely informational; no data analysis is performed.
func PrintPresets(cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if err := writeSensitivityTable(w, cfg); err != nil {
			return err
		}
		return writePolicyTable(w, cfg)
	}, "Wrote presets")
}

// writeSensitivityTable lists every preset, marking the active one.
func writeSensitivityTable(w io.Writer, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "Sensitivity presets (a change must pass BOTH gates):"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Preset", "Z Gate", "Pct Gate", "Active"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, sens := range []schema.Sensitivity{schema.LowSensitivity, schema.MediumSensitivity, schema.HighSensitivity} {
		z, pct, ok := contract.PresetGate(sens)
		if !ok {
			continue
		}
		active := ""
		if sens == cfg.Sensitivity {
			active = "*"
		}
		data = append(data, []string{
			string(sens),
			fmt.Sprintf("%.1f", z),
			fmt.Sprintf("%.0f%%", pct*100),
			active,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writePolicyTable lists the classifier and escalation constants in effect,
// including any config-file overrides.
func writePolicyTable(w io.Writer, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "\nClassifier and escalation policy:"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Constant", "Value", "Meaning"})

	pol := cfg.Policy
	data := [][]string{
		{"spike_ratio", fmt.Sprintf("%.1f", pol.SpikeRatio), "spike when |current-recent| exceeds ratio x |recent-baseline|"},
		{"spike_high_abs", fmt.Sprintf("$%.0f", pol.SpikeHighAbs), "spike delta at which base severity is HIGH"},
		{"high_pct", fmt.Sprintf("%.0f%%", pol.HighPct*100), "deviation escalating any finding to HIGH"},
		{"high_abs", fmt.Sprintf("$%.0f", pol.HighAbs), "absolute delta escalating any finding to HIGH"},
		{"medium_pct", fmt.Sprintf("%.0f%%", pol.MediumPct*100), "deviation escalating any finding to MEDIUM"},
		{"medium_abs", fmt.Sprintf("$%.0f", pol.MediumAbs), "absolute delta escalating any finding to MEDIUM"},
		{"no_pct_high_abs", fmt.Sprintf("$%.0f", pol.NoPctHighAbs), "HIGH threshold when the percentage is undefined"},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
