package cli

import "flag"

// ParseInterleaved parses args with fs while allowing flags after
// positional arguments ("input.k -o out.c"). A bare "--" ends flag
// parsing; everything after it is positional.
func ParseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// flag.Parse stops at the first non-flag, or consumes "--" and
		// stops; tell the two apart by what preceded rest.
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
