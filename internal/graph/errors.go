package graph

import (
	"fmt"
	"strings"
)

// CircularDependencyError represents a circular dependency in the container.
type CircularDependencyError struct {
	Node NodeKey
	Path []NodeKey
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	if len(e.Path) == 0 {
		fmt.Fprintf(&b, "    %s\n", e.Node.String())
		b.WriteString("      ↓\n")
		fmt.Fprintf(&b, "    %s (cycle)\n", e.Node.String())
	} else {
		for i, node := range e.Path {
			fmt.Fprintf(&b, "    %s\n", node.String())
			if i < len(e.Path)-1 {
				b.WriteString("      ↓\n")
			}
		}
		b.WriteString("      ↓\n")
		fmt.Fprintf(&b, "    %s (cycle)\n", e.Path[0].String())
	}

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Take an Injector parameter and resolve the dependency lazily\n")
	b.WriteString("  • Depend on an interface bound to a different implementation\n")
	b.WriteString("  • Restructure to remove the circular relationship\n")

	return b.String()
}

var _ error = CircularDependencyError{}
