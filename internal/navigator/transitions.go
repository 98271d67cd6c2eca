package navigator

// OnKeyDown computes the action for a key press. It is pure: the caller
// applies the result with ApplyAction (or Navigator.Dispatch).
func OnKeyDown(key Key, focused, count int, policy Policy) Action {
	switch key {
	case KeyUp, KeyDown, KeyEnter:
	default:
		return NoAction(false)
	}

	if count <= 0 {
		return NoAction(true)
	}

	switch key {
	case KeyDown:
		from := focused
		if from == None {
			from = -1
		}
		return Focus(clamp(from+1, count))

	case KeyUp:
		if focused == None {
			if policy.UpFromNone == UpFromNoneFirst {
				return Focus(0)
			}
			return Focus(count - 1)
		}
		return Focus(clamp(focused-1, count))

	default: // KeyEnter
		if focused == None || focused < 0 || focused >= count {
			return NoAction(true)
		}
		return Select(focused)
	}
}

// ApplyAction returns the state after action. Actions addressing an index
// outside the list are rejected and the state is returned unchanged.
func ApplyAction(s State, a Action) State {
	if a.Kind == KindNone || !s.InRange(a.Index) {
		return s
	}
	switch a.Kind {
	case KindFocus:
		s.Focused = a.Index
	case KindSelect:
		s.Focused = a.Index
		s.Selected = a.Index
	}
	return s
}

func clamp(index, count int) int {
	if index > count-1 {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
