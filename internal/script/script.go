// Package script drives a paired set from YAML step files or from
// single REPL lines.
//
//	steps:
//	  - op: pass
//	    name: pass
//	    args: [herald, ruth]
//	  - op: receive
//	    name: receive
//	    label: h1
//	  - op: clear
package script

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpPass    Op = "pass"
	OpReceive Op = "receive"
	OpClear   Op = "clear"
	OpHistory Op = "history"
)

// Step is one operation against the set.
type Step struct {
	Op    Op     `yaml:"op" validate:"required,oneof=pass receive clear history"`
	Name  string `yaml:"name,omitempty" validate:"required_unless=Op clear"`
	Args  []any  `yaml:"args,omitempty"`
	Label string `yaml:"label,omitempty"` // receive only; defaults to Name
}

type Script struct {
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return Parse(data)
}
