// Package report renders resolved dependency sets for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/manifold/internal/manifest"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be 'text', 'json' or 'yaml'", s)
	}
}

// Options tune what a report includes.
type Options struct {
	// Explain adds the collapsed duplicates of each unit.
	Explain bool
}

type unitView struct {
	Unit         string           `json:"unit" yaml:"unit"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	Plugins      []string         `json:"plugins" yaml:"plugins"`
	Dependencies []dependencyView `json:"dependencies" yaml:"dependencies"`
	Collapsed    []collapseView   `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

type dependencyView struct {
	Kind    string `json:"kind" yaml:"kind"`
	ID      string `json:"id" yaml:"id"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type collapseView struct {
	Key            string `json:"key" yaml:"key"`
	FirstIndex     int    `json:"firstIndex" yaml:"firstIndex"`
	DuplicateIndex int    `json:"duplicateIndex" yaml:"duplicateIndex"`
	ReasonAdopted  bool   `json:"reasonAdopted,omitempty" yaml:"reasonAdopted,omitempty"`
}

func toViews(results []manifest.Result, opts Options) []unitView {
	views := make([]unitView, 0, len(results))
	for _, res := range results {
		v := unitView{
			Unit:         res.Set.Unit,
			Description:  res.Set.Description,
			Plugins:      res.Set.Plugins,
			Dependencies: make([]dependencyView, 0, len(res.Set.Dependencies)),
		}
		for _, d := range res.Set.Dependencies {
			v.Dependencies = append(v.Dependencies, dependencyView{
				Kind:    string(d.Kind),
				ID:      d.ID(),
				Version: d.External.Version,
				Reason:  d.Reason,
			})
		}
		if opts.Explain {
			for _, c := range res.Collapsed {
				v.Collapsed = append(v.Collapsed, collapseView(c))
			}
		}
		views = append(views, v)
	}
	return views
}

// Render writes results to w in the given format.
func Render(w io.Writer, format Format, results []manifest.Result, opts Options) error {
	views := toViews(results, opts)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return renderText(w, results, opts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderText(w io.Writer, results []manifest.Result, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		set := res.Set
		fmt.Fprintf(tw, "unit %s\n", set.Unit)
		if set.Description != "" {
			fmt.Fprintf(tw, "  %s\n", set.Description)
		}
		fmt.Fprintf(tw, "  plugins: %s\n", strings.Join(set.Plugins, ", "))
		fmt.Fprintf(tw, "  dependencies: %d\n", len(set.Dependencies))
		for n, d := range set.Dependencies {
			reason := ""
			if d.Reason != "" {
				reason = "because: " + d.Reason
			}
			fmt.Fprintf(tw, "    %d.\t%s\t%s\t%s\n", n+1, d.Kind, d, reason)
		}
		if opts.Explain && len(res.Collapsed) > 0 {
			fmt.Fprintf(tw, "  collapsed: %d\n", len(res.Collapsed))
			for _, c := range res.Collapsed {
				note := ""
				if c.ReasonAdopted {
					note = "reason adopted"
				}
				fmt.Fprintf(tw, "    #%d\tinto #%d\t%s\t%s\n", c.DuplicateIndex, c.FirstIndex, c.Key, note)
			}
		}
	}
	return tw.Flush()
}
