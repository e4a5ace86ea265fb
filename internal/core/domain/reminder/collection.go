package reminder

// Collection is the ordered reminder list as it is stored.
type Collection []Reminder

func (c Collection) Find(id ID) (Reminder, bool) {
	for _, rem := range c {
		if rem.ID == id {
			return rem, true
		}
	}
	return Reminder{}, false
}

func (c Collection) Append(rem Reminder) (Collection, error) {
	if _, ok := c.Find(rem.ID); ok {
		return c, ErrReminderAlreadyExists
	}
	return append(c, rem), nil
}

func (c Collection) Remove(id ID) (Collection, bool) {
	kept, dropped := c.Retain(func(rem Reminder) bool { return rem.ID != id })
	return kept, len(dropped) > 0
}

func (c Collection) Update(id ID, mutate func(*Reminder)) (Collection, Reminder, error) {
	for ix := range c {
		if c[ix].ID == id {
			mutate(&c[ix])
			return c, c[ix], nil
		}
	}
	return c, Reminder{}, ErrReminderDoesNotExist
}

func (c Collection) Retain(keep func(Reminder) bool) (Collection, []Reminder) {
	kept := make(Collection, 0, len(c))
	var dropped []Reminder
	for _, rem := range c {
		if keep(rem) {
			kept = append(kept, rem)
		} else {
			dropped = append(dropped, rem)
		}
	}
	return kept, dropped
}
