// Package automation plays scripted sequences of pattern and speed changes.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted animation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep selects a pattern (empty keeps the current one), optionally
// sets the speed, and renders Frames frames.
type ScenarioStep struct {
	Pattern string   `yaml:"pattern"`
	Speed   *float64 `yaml:"speed"`
	Frames  int      `yaml:"frames"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, step := range s.Steps {
		if step.Frames < 0 {
			return fmt.Errorf("step %d: frames must not be negative", i+1)
		}
	}
	return nil
}

// TotalFrames is the number of frames a full playback renders.
func (s *Scenario) TotalFrames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// Commands returns the controller commands that start a step.
func (st ScenarioStep) Commands() []anim.Command {
	var cmds []anim.Command
	if st.Pattern != "" {
		cmds = append(cmds, anim.SelectCommand{Name: st.Pattern})
	}
	if st.Speed != nil {
		cmds = append(cmds, anim.SpeedCommand{Value: *st.Speed})
	}
	return cmds
}

// Play executes all steps against ctrl, calling frame after every tick. It
// stops at the first command or frame error, or when ctx is cancelled, and
// returns the number of frames rendered.
func Play(ctx context.Context, scenario *Scenario, ctrl *anim.Controller, frame func(anim.State) error) (int, error) {
	if err := scenario.Validate(); err != nil {
		return 0, err
	}

	rendered := 0
	for i, step := range scenario.Steps {
		for _, cmd := range step.Commands() {
			if err := cmd.Apply(ctrl); err != nil {
				return rendered, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		log.Debug().Int("step", i+1).Str("pattern", ctrl.State().Pattern).Str("speed", ctrl.SpeedLabel()).Int("frames", step.Frames).Msg("scenario step")

		for f := 0; f < step.Frames; f++ {
			if err := ctx.Err(); err != nil {
				return rendered, err
			}
			ctrl.Tick()
			rendered++
			if frame != nil {
				if err := frame(ctrl.State()); err != nil {
					return rendered, fmt.Errorf("step %d frame %d: %w", i+1, f, err)
				}
			}
		}
	}
	return rendered, nil
}
