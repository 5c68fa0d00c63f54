package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestLockableFieldByName(t *testing.T) {
	for _, name := range []string{"firstName", "lastName", "phone", "address", "workPlace"} {
		f, ok := LockableFieldByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, f.Name)
	}

	_, ok := LockableFieldByName("email")
	assert.False(t, ok)
}

func TestApplyFieldUpdate_UngatedWritesDirectly(t *testing.T) {
	p := &Profile{FirstName: "Anna"}
	f, _ := LockableFieldByName("firstName")

	pended := ApplyFieldUpdate(p, f, strPtr("Berta"))

	assert.False(t, pended)
	assert.Equal(t, "Berta", p.FirstName)
	assert.Nil(t, p.FirstNamePending)
	assert.False(t, p.ChangeRequested)
}

func TestApplyFieldUpdate_OmittedIsNoop(t *testing.T) {
	p := &Profile{Phone: "123", PhoneApproved: true, PhoneLocked: true}
	f, _ := LockableFieldByName("phone")

	pended := ApplyFieldUpdate(p, f, nil)

	assert.False(t, pended)
	assert.Equal(t, "123", p.Phone)
	assert.Nil(t, p.PhonePending)
}

func TestApplyFieldUpdate_LockedDivertsToPending(t *testing.T) {
	p := &Profile{Phone: "123", PhoneApproved: true, PhoneLocked: true}
	f, _ := LockableFieldByName("phone")

	pended := ApplyFieldUpdate(p, f, strPtr("456"))

	assert.True(t, pended)
	assert.Equal(t, "123", p.Phone, "live value must not change")
	require.NotNil(t, p.PhonePending)
	assert.Equal(t, "456", *p.PhonePending)
	assert.True(t, p.ChangeRequested)
}

func TestApplyFieldUpdate_SameValueOnLockedIsNoop(t *testing.T) {
	p := &Profile{Address: "Main St 1", AddressApproved: true, AddressLocked: true}
	f, _ := LockableFieldByName("address")

	pended := ApplyFieldUpdate(p, f, strPtr("Main St 1"))

	assert.False(t, pended)
	assert.Nil(t, p.AddressPending)
	assert.False(t, p.ChangeRequested)
}

func TestApplyFieldUpdate_ApprovedButUnlockedWritesDirectly(t *testing.T) {
	// only the approved AND locked combination gates a field
	p := &Profile{WorkPlace: "Acme", WorkPlaceApproved: true}
	f, _ := LockableFieldByName("workPlace")

	pended := ApplyFieldUpdate(p, f, strPtr("Globex"))

	assert.False(t, pended)
	assert.Equal(t, "Globex", p.WorkPlace)
	assert.Nil(t, p.WorkPlacePending)
}

func TestApplyFieldUpdate_OverwritesOpenPending(t *testing.T) {
	p := &Profile{
		LastName:         "Smith",
		LastNameApproved: true,
		LastNameLocked:   true,
		LastNamePending:  strPtr("Jones"),
		ChangeRequested:  true,
	}
	f, _ := LockableFieldByName("lastName")

	pended := ApplyFieldUpdate(p, f, strPtr("Miller"))

	assert.True(t, pended)
	assert.Equal(t, "Smith", p.LastName)
	require.NotNil(t, p.LastNamePending)
	assert.Equal(t, "Miller", *p.LastNamePending)
}

func TestApproveField(t *testing.T) {
	p := &Profile{
		FirstName:        "Anna",
		FirstNamePending: strPtr("Berta"),
		ChangeRequested:  true,
	}
	f, _ := LockableFieldByName("firstName")

	applied := ApproveField(p, f)

	require.True(t, applied)
	assert.Equal(t, "Berta", p.FirstName)
	assert.Nil(t, p.FirstNamePending)
	assert.True(t, p.FirstNameApproved)
	assert.True(t, p.FirstNameLocked)
	assert.False(t, p.ChangeRequested)

	// replay finds the slot empty
	assert.False(t, ApproveField(p, f))
	assert.Equal(t, "Berta", p.FirstName)
}

func TestRejectField(t *testing.T) {
	p := &Profile{
		Phone:           "123",
		PhoneApproved:   true,
		PhoneLocked:     true,
		PhonePending:    strPtr("456"),
		ChangeRequested: true,
	}
	f, _ := LockableFieldByName("phone")

	applied := RejectField(p, f)

	require.True(t, applied)
	assert.Equal(t, "123", p.Phone, "rejection keeps the live value")
	assert.Nil(t, p.PhonePending)
	assert.True(t, p.PhoneLocked, "rejection does not unlock the field")
	assert.False(t, p.ChangeRequested)

	assert.False(t, RejectField(p, f))
}

func TestChangeRequestedAggregatesAcrossFields(t *testing.T) {
	p := &Profile{
		FirstNamePending: strPtr("Berta"),
		PhonePending:     strPtr("456"),
		ChangeRequested:  true,
	}
	firstName, _ := LockableFieldByName("firstName")
	phone, _ := LockableFieldByName("phone")

	require.True(t, ApproveField(p, firstName))
	assert.True(t, p.ChangeRequested, "phone request is still open")

	require.True(t, RejectField(p, phone))
	assert.False(t, p.ChangeRequested)
	assert.False(t, p.HasPending())
}
