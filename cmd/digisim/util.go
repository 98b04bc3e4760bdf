package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseAssignments parses a comma-separated "name=value,name2=value2" flag
// value into a port-name -> int assignment map, the shape core.Run expects
// for its initial argument.
func parseAssignments(s string) (map[string]int, error) {
	out := map[string]int{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			return nil, errors.Errorf("malformed assignment %q, want name=value", pair)
		}
		v, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing value for %q", kv[0])
		}
		out[strings.TrimSpace(kv[0])] = v
	}
	return out, nil
}

// printPorts prints the output ports (names starting with "out") of a
// port->value map, sorted by name, for stable output.
func printPorts(out map[string]int) {
	names := make([]string, 0, len(out))
	for name := range out {
		if !strings.HasPrefix(name, "out") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %d\n", name, out[name])
	}
}
