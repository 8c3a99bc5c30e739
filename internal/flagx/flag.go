// Package flagx lets several components share one command line: each picks
// out only the flags it owns before handing them to a flag.FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is listed in owned,
// together with their values. Both "-n value" and "-n=value" are recognized.
// A value is only consumed when it does not itself start with "-".
func FilterArgs(args []string, owned []string) []string {
	set := make(map[string]struct{}, len(owned))
	for _, f := range owned {
		set[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, own := set[name]; own {
				out = append(out, arg)
			}
			continue
		}

		if _, own := set[arg]; !own {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// ConfigPath returns the JSON config file given with -c or -config, or ""
// when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
