package nfa

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quadfa/quadfa/internal/symbol"
)

// tableFile is the YAML shape of a user-supplied table definition:
//
//	name: mytable
//	accepting: [2, 3, 4]
//	transitions:
//	  - {from: 0, symbol: "2", to: [0, 1]}
type tableFile struct {
	Name        string     `yaml:"name"`
	Accepting   []int      `yaml:"accepting"`
	Transitions []ruleFile `yaml:"transitions"`
}

type ruleFile struct {
	From   int    `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     []int  `yaml:"to"`
}

// LoadFile reads a table definition from a YAML file and validates it the
// same way the presets are validated.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}
	return parseTable(data, path)
}

func parseTable(data []byte, origin string) (*Table, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse table file %s: %w", origin, err)
	}
	if tf.Name == "" {
		tf.Name = origin
	}
	if len(tf.Transitions) == 0 {
		return nil, fmt.Errorf("table %s defines no transitions", tf.Name)
	}

	rules := make([]Rule, 0, len(tf.Transitions))
	for i, rf := range tf.Transitions {
		if len(rf.Symbol) != 1 {
			return nil, fmt.Errorf("table %s transition %d: symbol must be a single character, got %q", tf.Name, i, rf.Symbol)
		}
		sym, err := symbol.Of(rf.Symbol[0])
		if err != nil {
			return nil, fmt.Errorf("table %s transition %d: %w", tf.Name, i, err)
		}
		rules = append(rules, Rule{From: rf.From, Sym: sym, To: rf.To})
	}

	return NewTable(tf.Name, rules, tf.Accepting)
}
