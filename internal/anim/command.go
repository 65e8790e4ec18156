package anim

// Command is input applied to a controller between frames.
type Command interface {
	Apply(c *Controller) error
}

type SelectCommand struct {
	Name string
}

func (s SelectCommand) Apply(c *Controller) error { return c.SelectPattern(s.Name) }

type SpeedCommand struct {
	Value float64
}

func (s SpeedCommand) Apply(c *Controller) error {
	c.SetSpeed(s.Value)
	return nil
}

// SpeedTextCommand carries raw slider text.
type SpeedTextCommand struct {
	Raw string
}

func (s SpeedTextCommand) Apply(c *Controller) error { return c.SetSpeedValue(s.Raw) }
