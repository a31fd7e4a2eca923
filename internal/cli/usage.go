package cli

import (
	"flag"
	"fmt"
	"io"
)

// FlagInfo represents information about a command flag
type FlagInfo struct {
	Name    string
	Usage   string
	Default string
}

// CommandInfo represents information about a CLI command
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
	Examples    []string
	Flags       []FlagInfo
}

// PrintCommandUsage prints usage for a translator tool
func PrintCommandUsage(w io.Writer, cmd CommandInfo) {
	fmt.Fprintf(w, "%s - %s\n\n", cmd.Name, cmd.Description)
	fmt.Fprintf(w, "USAGE:\n")
	fmt.Fprintf(w, "    %s\n\n", cmd.Usage)

	if len(cmd.Flags) > 0 {
		fmt.Fprintf(w, "OPTIONS:\n")
		for _, f := range cmd.Flags {
			fmt.Fprintf(w, "%-20s %s\n", "    -"+f.Name, f.Usage)
			if f.Default != "" {
				fmt.Fprintf(w, "%-20s Default: %s\n", "", f.Default)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(cmd.Examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range cmd.Examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
		fmt.Fprintf(w, "\n")
	}
}

// flagInfos lists the flags of fs in the form PrintCommandUsage expects.
func flagInfos(fs *flag.FlagSet) []FlagInfo {
	var out []FlagInfo
	fs.VisitAll(func(f *flag.Flag) {
		info := FlagInfo{Name: f.Name, Usage: f.Usage}
		switch f.DefValue {
		case "", "false", "0", "0s":
		default:
			info.Default = f.DefValue
		}
		out = append(out, info)
	})
	return out
}
