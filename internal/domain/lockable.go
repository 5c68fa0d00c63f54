package domain

// LockableField describes one admin-gated profile field through accessor
// funcs, so the resolver below works over the fixed set without per-field
// branches or reflection.
type LockableField struct {
	Name     string
	Value    func(p *Profile) *string
	Pending  func(p *Profile) **string
	Approved func(p *Profile) *bool
	Locked   func(p *Profile) *bool
}

var LockableFields = []LockableField{
	{
		Name:     "firstName",
		Value:    func(p *Profile) *string { return &p.FirstName },
		Pending:  func(p *Profile) **string { return &p.FirstNamePending },
		Approved: func(p *Profile) *bool { return &p.FirstNameApproved },
		Locked:   func(p *Profile) *bool { return &p.FirstNameLocked },
	},
	{
		Name:     "lastName",
		Value:    func(p *Profile) *string { return &p.LastName },
		Pending:  func(p *Profile) **string { return &p.LastNamePending },
		Approved: func(p *Profile) *bool { return &p.LastNameApproved },
		Locked:   func(p *Profile) *bool { return &p.LastNameLocked },
	},
	{
		Name:     "phone",
		Value:    func(p *Profile) *string { return &p.Phone },
		Pending:  func(p *Profile) **string { return &p.PhonePending },
		Approved: func(p *Profile) *bool { return &p.PhoneApproved },
		Locked:   func(p *Profile) *bool { return &p.PhoneLocked },
	},
	{
		Name:     "address",
		Value:    func(p *Profile) *string { return &p.Address },
		Pending:  func(p *Profile) **string { return &p.AddressPending },
		Approved: func(p *Profile) *bool { return &p.AddressApproved },
		Locked:   func(p *Profile) *bool { return &p.AddressLocked },
	},
	{
		Name:     "workPlace",
		Value:    func(p *Profile) *string { return &p.WorkPlace },
		Pending:  func(p *Profile) **string { return &p.WorkPlacePending },
		Approved: func(p *Profile) *bool { return &p.WorkPlaceApproved },
		Locked:   func(p *Profile) *bool { return &p.WorkPlaceLocked },
	},
}

func LockableFieldByName(name string) (LockableField, bool) {
	for _, f := range LockableFields {
		if f.Name == name {
			return f, true
		}
	}
	return LockableField{}, false
}

// ApplyFieldUpdate runs one lockable field through the update rule.
// A nil newValue means the field was omitted from the request. A field that
// has been approved and locked diverts a differing value into its pending
// slot; submitting the current value again is a no-op. An ungated field is
// written directly. Returns whether a new pending request was opened.
func ApplyFieldUpdate(p *Profile, f LockableField, newValue *string) (pended bool) {
	if newValue == nil {
		return false
	}
	if *f.Approved(p) && *f.Locked(p) {
		if *newValue == *f.Value(p) {
			return false
		}
		v := *newValue
		*f.Pending(p) = &v
		p.ChangeRequested = true
		return true
	}
	*f.Value(p) = *newValue
	return false
}

// ApproveField commits the pending value: it becomes live, the field stays
// permanently gated, and the slot is cleared. Returns false when nothing is
// pending, so a replayed approval cannot double-apply.
func ApproveField(p *Profile, f LockableField) bool {
	pending := *f.Pending(p)
	if pending == nil {
		return false
	}
	*f.Value(p) = *pending
	*f.Approved(p) = true
	*f.Locked(p) = true
	*f.Pending(p) = nil
	p.ChangeRequested = p.HasPending()
	return true
}

// RejectField discards the pending value without touching the live one.
func RejectField(p *Profile, f LockableField) bool {
	if *f.Pending(p) == nil {
		return false
	}
	*f.Pending(p) = nil
	p.ChangeRequested = p.HasPending()
	return true
}
