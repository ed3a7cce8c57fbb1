package engine_test

// scriptedRoller implements dice.Roller returning queued values, so tests
// can steer every random decision. When the queue runs dry it returns the
// middle face, which keeps long simulations deterministic.
type scriptedRoller struct {
	queue []int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	if len(r.queue) > 0 {
		v := r.queue[0]
		r.queue = r.queue[1:]
		if v > size {
			v = size
		}
		if v < 1 {
			v = 1
		}
		return v, nil
	}
	return (size + 1) / 2, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
