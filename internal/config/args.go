package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// filterArgs returns the subset of args naming one of the allowed flags,
// together with their values. A value is either joined with '='
// ("-s=redis") or the next argument, unless that argument is itself a flag.
// Negative numbers are values. Flags listed in boolFlags never take a
// separate value.
func filterArgs(args []string, allowed []string, boolFlags ...string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = struct{}{}
	}
	boolSet := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		boolSet[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowedSet[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowedSet[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if _, ok := boolSet[arg]; ok {
			continue
		}
		if i+1 < len(args) && !isFlag(args[i+1]) {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

func isFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}

// jsonConfigPath extracts the config file path given with -c or -config.
// It returns "" when neither is present.
func jsonConfigPath() string {
	var path string

	args := filterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}
