package keywords

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	semver "github.com/Masterminds/semver/v3"

	"github.com/klang-lang/klang/internal/errors"
	"github.com/klang-lang/klang/internal/vfs"
)

// SupportedFormat is the range of dictionary format versions this build reads.
const SupportedFormat = ">= 1.0.0, < 2.0.0"

//go:embed default.dict
var defaultDict []byte

// Pair is one dictionary line: a K token and the C token it stands for.
type Pair struct {
	K string
	C string
}

// Dictionary is the master word list both translation directions derive
// their tables from.
type Dictionary struct {
	Source  string
	Version *semver.Version
	Pairs   []Pair
}

// Default returns the dictionary compiled into the binary.
func Default() *Dictionary {
	d, err := Parse("default.dict", defaultDict)
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary is invalid: %v", err))
	}
	return d
}

// Load reads and parses a dictionary file through fsys.
func Load(fsys vfs.FileSystem, path string) (*Dictionary, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.IOFailure("read dictionary", path, err)
	}
	return Parse(path, data)
}

// Parse reads the dictionary text format: one "K C" pair per line, extra
// columns ignored, blank lines and '#' comments skipped. A comment of the
// form "# version: X.Y.Z" declares the format version.
func Parse(source string, data []byte) (*Dictionary, error) {
	constraint, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{Source: source}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if v, ok := versionDirective(line); ok {
				if d.Version != nil {
					return nil, errors.InvalidDictionary(source, lineNo, "duplicate version directive")
				}
				ver, err := semver.NewVersion(v)
				if err != nil {
					return nil, errors.InvalidDictionary(source, lineNo, fmt.Sprintf("bad version %q: %v", v, err))
				}
				if !constraint.Check(ver) {
					return nil, errors.InvalidDictionary(source, lineNo,
						fmt.Sprintf("format version %s not in %s", ver, SupportedFormat))
				}
				d.Version = ver
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.InvalidDictionary(source, lineNo, "expected a K token and a C token")
		}
		d.Pairs = append(d.Pairs, Pair{K: fields[0], C: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.IOFailure("scan dictionary", source, err)
	}
	if len(d.Pairs) == 0 {
		return nil, errors.InvalidDictionary(source, lineNo, "no keyword pairs")
	}
	if d.Version == nil {
		d.Version = semver.MustParse("1.0.0")
	}
	return d, nil
}

func versionDirective(line string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	if !strings.HasPrefix(rest, "version:") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(rest, "version:")), true
}

// Reverse returns the K -> C table in dictionary order.
func (d *Dictionary) Reverse() Table {
	t := make(Table, len(d.Pairs))
	for i, p := range d.Pairs {
		t[i] = Entry{Source: p.K, Mapped: p.C}
	}
	return t
}

// Forward returns the C -> K table ordered by C token length, longest
// first. Pairs of equal length keep dictionary order.
func (d *Dictionary) Forward() Table {
	t := d.Reverse().Invert()
	sort.SliceStable(t, func(i, j int) bool {
		return len(t[i].Source) > len(t[j].Source)
	})
	return t
}
