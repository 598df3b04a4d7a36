package theme

import (
	"go.uber.org/zap"
)

// MaxInheritanceDepth is the longest allowed extends chain, root included.
const MaxInheritanceDepth = 5

// link is one theme of an extends chain.
type link struct {
	name   string
	tokens Tokens
}

// buildChain follows extends from root and returns the chain leaf first.
func (e *Engine) buildChain(rootName string, root Tokens) ([]link, error) {
	chain := []link{{name: rootName, tokens: root}}
	seen := map[string]bool{rootName: true}
	if root.Meta.Name != "" {
		seen[root.Meta.Name] = true
	}

	current := root
	for current.Meta.Extends != "" {
		parent := current.Meta.Extends
		if seen[parent] {
			return nil, &CycleError{Chain: append(chainNames(chain), parent)}
		}
		if len(chain) >= MaxInheritanceDepth {
			return nil, &DepthError{Chain: append(chainNames(chain), parent), Max: MaxInheritanceDepth}
		}

		text, err := e.loadNamed(parent)
		if err != nil {
			return nil, err
		}
		tokens, err := e.parse(parent, text)
		if err != nil {
			return nil, err
		}

		seen[parent] = true
		chain = append(chain, link{name: parent, tokens: tokens})
		current = tokens
	}

	e.logger.Debug("theme chain built", zap.Strings("chain", chainNames(chain)))
	return chain, nil
}

// fold merges a leaf-first chain from the outermost ancestor down to the leaf.
func fold(chain []link) (Tokens, error) {
	merged := chain[len(chain)-1].tokens
	for i := len(chain) - 2; i >= 0; i-- {
		var err error
		merged, err = Merge(merged, chain[i].tokens)
		if err != nil {
			return Tokens{}, err
		}
	}
	return merged, nil
}

func chainNames(chain []link) []string {
	names := make([]string, len(chain))
	for i, l := range chain {
		names[i] = l.name
	}
	return names
}
