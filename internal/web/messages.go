package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/san-kum/patternlab/internal/anim"
)

var ErrBadControl = errors.New("web: bad control message")

type frameMessage struct {
	Type    string  `json:"type"`
	T       int64   `json:"t"`
	FrameID uint64  `json:"frame_id"`
	Pattern string  `json:"pattern"`
	Elapsed float64 `json:"elapsed"`
	Speed   float64 `json:"speed"`
	Label   string  `json:"label"`
	PNG     string  `json:"png"`
}

type slider struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

type helloMessage struct {
	Type     string   `json:"type"`
	Patterns []string `json:"patterns"`
	Pattern  string   `json:"pattern"`
	Baseline float64  `json:"baseline"`
	Label    string   `json:"label"`
	Slider   slider   `json:"slider"`
}

type ackMessage struct {
	Type   string `json:"type"`
	Queued int    `json:"queued"`
	Error  string `json:"error,omitempty"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// parseControl turns {"pattern": "spiral", "speed": "0.1"} into commands.
// speed may be a number or the raw slider text.
func parseControl(data []byte) ([]anim.Command, error) {
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadControl, err)
	}

	var cmds []anim.Command
	if v, ok := msg["pattern"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: pattern must be a string", ErrBadControl)
		}
		cmds = append(cmds, anim.SelectCommand{Name: name})
	}
	if v, ok := msg["speed"]; ok {
		switch sp := v.(type) {
		case float64:
			cmds = append(cmds, anim.SpeedCommand{Value: sp})
		case string:
			cmds = append(cmds, anim.SpeedTextCommand{Raw: sp})
		default:
			return nil, fmt.Errorf("%w: speed must be a number or string", ErrBadControl)
		}
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("%w: nothing to do", ErrBadControl)
	}
	return cmds, nil
}
