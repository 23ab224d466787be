package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harborcrest/userdesk/pkg/permset"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatPermissions renders permission maps as "read=true write=false", in
// stored order.
func formatPermissions(perms []*permset.Map) string {
	var parts []string
	for _, p := range perms {
		for _, key := range p.Keys() {
			v, _ := p.Get(key)
			parts = append(parts, fmt.Sprintf("%s=%t", key, v))
		}
	}
	if len(parts) == 0 {
		return "(no permissions)"
	}
	return strings.Join(parts, " ")
}

// newPermPrompt collects permission pairs interactively until a blank key.
func newPermPrompt(r *Runner) *permset.Map {
	perms := permset.New()
	for {
		key := r.prompt("Permission key (blank to finish)")
		if key == "" {
			return perms
		}
		literal := r.prompt(fmt.Sprintf("Value for %q (true/false)", key))
		value, err := permset.ParseBool(literal)
		if err != nil {
			fmt.Fprintf(r.Out, "  %v\n", err)
			continue
		}
		if err := perms.Add(key, value); err != nil {
			fmt.Fprintf(r.Out, "  %v\n", err)
		}
	}
}
