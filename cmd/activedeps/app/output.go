package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/fossas/activedeps/buildtools/cargo"
	"github.com/fossas/activedeps/pkg"
)

// A Result is one active dependency as printed by the command.
type Result struct {
	Name string
	pkg.ActiveDependency
	Locked string `json:",omitempty"`
}

// Results orders deps by name and, when lock is given, attaches the locked
// version of each dependency.
func Results(deps pkg.Dependencies, lock *cargo.Lockfile) []Result {
	results := make([]Result, 0, len(deps))
	for _, name := range deps.Names() {
		r := Result{Name: name, ActiveDependency: deps[name]}
		if lock != nil {
			if v, ok := lock.Locked(name); ok {
				r.Locked = v.String()
			}
		}
		results = append(results, r)
	}
	return results
}

func PrintJSON(w io.Writer, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func PrintTemplate(w io.Writer, filename string, results []Result) error {
	tmpl, err := template.ParseFiles(filename)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, results)
}

func PrintText(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		columns := []string{
			r.Name,
			r.Source.String(),
			fmt.Sprintf("default-features=%t", r.DefaultFeatures),
			"features=" + r.Features.String(),
		}
		if r.Locked != "" {
			columns = append(columns, "locked="+r.Locked)
		}
		fmt.Fprintln(tw, strings.Join(columns, "\t"))
	}
	return tw.Flush()
}
