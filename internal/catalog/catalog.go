package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/roles.yaml
var defaultData []byte

// Role describes one engineering job category.
type Role struct {
	Name          string   `yaml:"name" json:"name"`
	Skills        []string `yaml:"skills" json:"skills"`
	QuestionTypes []string `yaml:"question_types" json:"questionTypes"`
}

// Question is one predefined question with its reference answer.
type Question struct {
	Question       string `yaml:"question" json:"question"`
	ExpectedAnswer string `yaml:"expected_answer" json:"expectedAnswer"`
}

type roleEntry struct {
	Key           string     `yaml:"key"`
	Name          string     `yaml:"name"`
	Skills        []string   `yaml:"skills"`
	QuestionTypes []string   `yaml:"question_types"`
	Questions     []Question `yaml:"questions"`
}

type document struct {
	Roles []roleEntry `yaml:"roles"`
}

// Catalog holds the role catalog and per-role question banks.
// Read-only after Load.
type Catalog struct {
	keys      []string
	roles     map[string]Role
	questions map[string][]Question
}

// Default parses the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return parse(defaultData)
}

// Load reads a catalog from a YAML file.
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", filename, err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filename, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		roles:     make(map[string]Role, len(doc.Roles)),
		questions: make(map[string][]Question, len(doc.Roles)),
	}
	for _, e := range doc.Roles {
		c.keys = append(c.keys, e.Key)
		c.roles[e.Key] = Role{
			Name:          e.Name,
			Skills:        e.Skills,
			QuestionTypes: e.QuestionTypes,
		}
		c.questions[e.Key] = e.Questions
	}
	return c, nil
}

func validate(doc *document) error {
	if len(doc.Roles) == 0 {
		return fmt.Errorf("catalog has no roles")
	}
	seen := make(map[string]bool, len(doc.Roles))
	for i, e := range doc.Roles {
		if e.Key == "" {
			return fmt.Errorf("role %d has no key", i)
		}
		if seen[e.Key] {
			return fmt.Errorf("duplicate role key %q", e.Key)
		}
		seen[e.Key] = true
		if e.Name == "" {
			return fmt.Errorf("role %q has no name", e.Key)
		}
		if len(e.Skills) == 0 {
			return fmt.Errorf("role %q has no skills", e.Key)
		}
		for j, q := range e.Questions {
			if q.Question == "" {
				return fmt.Errorf("role %q question %d is empty", e.Key, j)
			}
			if q.ExpectedAnswer == "" {
				return fmt.Errorf("role %q question %d has no expected answer", e.Key, j)
			}
		}
	}
	return nil
}

// Keys returns the role keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Roles returns the entire catalog mapping.
func (c *Catalog) Roles() map[string]Role {
	roles := make(map[string]Role, len(c.roles))
	for k, v := range c.roles {
		roles[k] = v
	}
	return roles
}

// Role looks up a single role by key.
func (c *Catalog) Role(key string) (Role, bool) {
	r, ok := c.roles[key]
	return r, ok
}

// Questions returns the ordered question bank for a role.
// Unknown roles get an empty bank.
func (c *Catalog) Questions(key string) []Question {
	return c.questions[key]
}
