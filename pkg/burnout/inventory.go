// Package burnout scores the twelve item burnout inventory.
package burnout

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Subscale string

const (
	Exhaustion    Subscale = "exhaustion"
	Disengagement Subscale = "disengagement"
)

const (
	QuestionCount = 12
	MinAnswer     = 1
	MaxAnswer     = 4
)

type Question struct {
	Index    int      `yaml:"index" json:"index"`
	Subscale Subscale `yaml:"subscale" json:"subscale"`
	Positive bool     `yaml:"positive" json:"positive"`
	Text     string   `yaml:"text" json:"text"`
}

type Inventory struct {
	Scale     []string   `yaml:"scale" json:"scale"`
	Questions []Question `yaml:"questions" json:"questions"`
}

//go:embed inventory.yaml
var inventoryYAML []byte

var inventory = mustLoad(inventoryYAML)

func mustLoad(b []byte) Inventory {
	inv, err := parseInventory(b)
	if err != nil {
		panic(err)
	}
	return inv
}

func parseInventory(b []byte) (Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(b, &inv); err != nil {
		return Inventory{}, fmt.Errorf("parse burnout inventory: %w", err)
	}
	if len(inv.Questions) != QuestionCount {
		return Inventory{}, fmt.Errorf("burnout inventory has %d questions, want %d", len(inv.Questions), QuestionCount)
	}
	for i, q := range inv.Questions {
		if q.Index != i+1 {
			return Inventory{}, fmt.Errorf("burnout question %d has index %d", i+1, q.Index)
		}
		if q.Subscale != Exhaustion && q.Subscale != Disengagement {
			return Inventory{}, fmt.Errorf("burnout question %d: unknown subscale %q", q.Index, q.Subscale)
		}
	}
	return inv, nil
}

// Questions returns the inventory in index order.
func Questions() Inventory {
	out := inventory
	out.Scale = append([]string(nil), inventory.Scale...)
	out.Questions = append([]Question(nil), inventory.Questions...)
	return out
}

func question(index int) (Question, bool) {
	if index < 1 || index > QuestionCount {
		return Question{}, false
	}
	return inventory.Questions[index-1], true
}
