// pre_processor.go expands include directives in WGSL source. A directive is a line comment of the form
//
//	// @prism:include camera
//
// and is replaced by the registered WGSL source for that name. Each name is expanded at most once per
// Process call, so two pipelines can include the same shared struct without redefinition errors.
package shader

import (
	"fmt"
	"strings"
)

// includePrefix marks an include directive inside a WGSL line comment.
const includePrefix = "@prism:include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	includes map[string]string
}

// PreProcessor expands include directives in raw WGSL source.
type PreProcessor interface {
	// Process replaces every include directive with its registered source.
	//
	// Parameters:
	//   - source: raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: if a directive is malformed or names an unregistered include
	Process(source string) (string, error)

	// Register adds or replaces a named include.
	//
	// Parameters:
	//   - name: the name used in directives
	//   - source: the WGSL text substituted for the directive
	Register(name, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor seeded with the given includes.
//
// Parameters:
//   - includes: WGSL sources keyed by include name (may be nil)
//
// Returns:
//   - PreProcessor: the pre-processor
func NewPreProcessor(includes map[string]string) PreProcessor {
	pp := &preProcessor{includes: make(map[string]string, len(includes))}
	for name, src := range includes {
		pp.includes[name] = src
	}
	return pp
}

func (pp *preProcessor) Register(name, source string) {
	pp.includes[name] = source
}

func (pp *preProcessor) Process(source string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(source))
	seen := make(map[string]bool)

	for i, line := range strings.Split(source, "\n") {
		name, ok, err := parseIncludeDirective(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		if !ok {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}
		if seen[name] {
			continue
		}
		src, found := pp.includes[name]
		if !found {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		seen[name] = true
		sb.WriteString(strings.TrimRight(src, "\n"))
		sb.WriteByte('\n')
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// parseIncludeDirective reports whether line is an include directive and returns its name.
func parseIncludeDirective(line string) (string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return "", false, nil
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	if !strings.HasPrefix(body, includePrefix) {
		return "", false, nil
	}
	fields := strings.Fields(strings.TrimPrefix(body, includePrefix))
	if len(fields) != 1 {
		return "", false, fmt.Errorf("include directive needs exactly one name, got %d", len(fields))
	}
	return fields[0], true, nil
}
