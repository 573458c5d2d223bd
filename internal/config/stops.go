package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// StopEntry describes one monitored stop in the stops file. Origin stops use
// the trip's departure time; other stops prefer arrival time.
type StopEntry struct {
	Name      string `yaml:"name" validate:"required"`
	Route     string `yaml:"route" validate:"required"`
	Stop      string `yaml:"stop" validate:"required"`
	Direction int    `yaml:"direction" validate:"min=0,max=1"`
	Origin    bool   `yaml:"origin"`
}

// StopGroup is a titled set of stops rendered as one grid block.
type StopGroup struct {
	Title string      `yaml:"title" validate:"required"`
	Stops []StopEntry `yaml:"stops" validate:"required,min=1"`
}

type stopsFile struct {
	Groups []StopGroup `yaml:"groups"`
}

// LoadStops reads and validates the stop groups from a YAML file.
func LoadStops(path string) ([]StopGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f stopsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Groups) == 0 {
		return nil, fmt.Errorf("%s: no stop groups defined", path)
	}

	v := validator.New()
	for _, g := range f.Groups {
		if err := v.Struct(g); err != nil {
			return nil, fmt.Errorf("invalid stop group %q: %w", g.Title, err)
		}
		for _, s := range g.Stops {
			if err := v.Struct(s); err != nil {
				return nil, fmt.Errorf("invalid stop %q in group %q: %w", s.Name, g.Title, err)
			}
		}
	}
	return f.Groups, nil
}
