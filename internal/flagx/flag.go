package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed, with their values, in
// their original order. Values come either inline ("-c=conf.json") or from
// the next argument when it does not start with "-". Loaders use it to parse
// their own flags out of os.Args without tripping over the others.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		keep[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, _, inline := strings.Cut(args[i], "=")
		if !strings.HasPrefix(name, "-") || !keep[name] {
			continue
		}
		out = append(out, args[i])

		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// JsonConfigFlags returns the JSON config file path given with -c or
// -config, or "" when neither is present. Other arguments are ignored.
func JsonConfigFlags() string {
	return pathFlag("json", "config", "c", "Path to config file")
}

// EnvFileFlags returns the dotenv file path given with -env, or "".
func EnvFileFlags() string {
	return pathFlag("env", "env", "", "Path to .env file")
}

// pathFlag parses a single string flag (long form, optional short form) out
// of os.Args, leaving everything else alone.
func pathFlag(set, long, short, usage string) string {
	var value string

	allowed := []string{"-" + long}
	if short != "" {
		allowed = append(allowed, "-"+short)
	}
	args := FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet(set, flag.ContinueOnError)
	fs.StringVar(&value, long, "", usage)
	if short != "" {
		fs.StringVar(&value, short, "", usage+" (short)")
	}
	_ = fs.Parse(args)

	return value
}
