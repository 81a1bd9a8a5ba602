package seed

import "time"

// Fixture is the top-level structure of a seed YAML file.
type Fixture struct {
	Buckets []BucketFixture `yaml:"buckets"`
}

// BucketFixture describes one bucket and the items created inside it.
type BucketFixture struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Items       []ItemFixture `yaml:"items,omitempty"`
}

// ItemFixture describes one item. due_date is a YAML date, completed_time a
// YAML timestamp.
type ItemFixture struct {
	Title         string     `yaml:"title"`
	Description   string     `yaml:"description,omitempty"`
	Flagged       bool       `yaml:"flagged,omitempty"`
	DueDate       *time.Time `yaml:"due_date,omitempty"`
	CompletedTime *time.Time `yaml:"completed_time,omitempty"`
}
