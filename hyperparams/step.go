package hyperparams

type step struct {
	Epoch int
	Val   float64
}

type stepper []step

// Step returns a schedule that starts at 'base' and changes at the epochs given to Add.
func Step(base float64) *stepper {
	s := make([]step, 1)
	s[0] = step{0, base}

	st := stepper(s)
	return &st
}

// Add adds a step to the schedule: from 'epoch' onwards, the value is 'value'. Steps must be
// added in increasing epoch order.
func (s *stepper) Add(epoch int, value float64) *stepper {
	*s = append(*s, step{epoch, value})
	return s
}

func (s *stepper) TypeString() string {
	return "step"
}

func (s *stepper) Value(epoch int) float64 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Epoch > epoch {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}
