package wizard_test

import (
	"testing"
	"time"

	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

var daySlots = []string{"08:00", "08:30", "09:00", "19:30"}

func cleaning(t *testing.T) wizard.ServiceChoice {
	t.Helper()

	choice, err := wizard.NewServiceChoice("svc-1", "Cleaning", 45)
	require.NoError(t, err)

	return choice
}

// atContact walks a fresh wizard to the contact step.
func atContact(t *testing.T) wizard.Wizard {
	t.Helper()

	w := wizard.New("wz-1", today)
	require.NoError(t, w.ChooseService(cleaning(t)))
	require.NoError(t, w.Next())
	require.NoError(t, w.ChooseProvider(wizard.ProviderChoice{ID: "dr-a", Name: "Dr. A"}))
	require.NoError(t, w.Next())
	require.NoError(t, w.ChooseDate("2025-06-11", today, daySlots))
	require.NoError(t, w.ChooseTime("09:00", daySlots))
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepContact, w.Step)

	return w
}

func TestWizard_HappyPath(t *testing.T) {
	w := atContact(t)

	contact, err := wizard.NewContactChoice("  Jane Doe ", " 555-0100 ", "not-an-email", " first visit ")
	require.NoError(t, err)
	require.NoError(t, w.ChooseContact(contact))

	booking, err := w.Payload(today)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", booking.ContactName)
	assert.Equal(t, "555-0100", booking.ContactPhone)
	assert.Equal(t, "not-an-email", booking.ContactEmail)
	assert.Equal(t, "first visit", booking.Notes)
	assert.Equal(t, "svc-1", booking.ServiceID)
	assert.Equal(t, "Cleaning", booking.ServiceName)
	assert.Equal(t, 45, booking.ServiceDuration)
	assert.Equal(t, "dr-a", booking.Provider())
	assert.Equal(t, "Dr. A", booking.ProviderName)
	assert.Equal(t, "2025-06-11", booking.Date())
	assert.Equal(t, "09:00", booking.StartTime)
	assert.Equal(t, "09:45", booking.EndTime)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.SourceOnline, booking.Source)
	assert.False(t, booking.ReminderSent)

	booking.ID = "b-1"
	require.NoError(t, w.Complete(booking))

	assert.Equal(t, wizard.StepSubmitted, w.Step)
	assert.Equal(t, "b-1", w.Confirmation.BookingID)
	assert.True(t, w.Ready())
}

func TestWizard_NoPreferenceProvider(t *testing.T) {
	w := wizard.New("wz-2", today)
	require.NoError(t, w.ChooseService(cleaning(t)))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next(), "provider step is optional")
	require.NotNil(t, w.Provider)
	assert.True(t, w.Provider.NoPreference())

	require.NoError(t, w.ChooseDate("2025-06-10", today, daySlots))
	require.NoError(t, w.ChooseTime("19:30", daySlots))
	require.NoError(t, w.Next())

	contact, err := wizard.NewContactChoice("Jane", "555", "", "")
	require.NoError(t, err)
	require.NoError(t, w.ChooseContact(contact))

	booking, err := w.Payload(today)
	require.NoError(t, err)
	assert.Nil(t, booking.ProviderID)
	assert.Equal(t, "20:15", booking.EndTime, "ends past closing are allowed")
}

func TestWizard_Guards(t *testing.T) {
	t.Run("service required", func(t *testing.T) {
		w := wizard.New("wz", today)
		assert.ErrorIs(t, w.Next(), wizard.ErrServiceRequired)
		assert.Equal(t, wizard.StepService, w.Step)
	})

	t.Run("date and time required", func(t *testing.T) {
		w := wizard.New("wz", today)
		require.NoError(t, w.ChooseService(cleaning(t)))
		require.NoError(t, w.Next())
		require.NoError(t, w.Next())

		assert.ErrorIs(t, w.Next(), wizard.ErrDateRequired)
		assert.ErrorIs(t, w.ChooseTime("08:00", daySlots), wizard.ErrDateRequired)

		require.NoError(t, w.ChooseDate("2025-06-12", today, daySlots))
		assert.ErrorIs(t, w.Next(), wizard.ErrTimeRequired)
		assert.Equal(t, wizard.StepDateTime, w.Step)
	})

	t.Run("past date refused", func(t *testing.T) {
		w := wizard.New("wz", today)
		require.NoError(t, w.ChooseService(cleaning(t)))
		require.NoError(t, w.Next())
		require.NoError(t, w.Next())

		assert.ErrorIs(t, w.ChooseDate("2025-06-09", today, daySlots), wizard.ErrDateInPast)
		assert.ErrorIs(t, w.ChooseDate("10/06/2025", today, daySlots), wizard.ErrDateInvalid)
		assert.NoError(t, w.ChooseDate("2025-06-10", today, daySlots), "today is allowed")
	})

	t.Run("time must be offered", func(t *testing.T) {
		w := wizard.New("wz", today)
		require.NoError(t, w.ChooseService(cleaning(t)))
		require.NoError(t, w.Next())
		require.NoError(t, w.Next())
		require.NoError(t, w.ChooseDate("2025-06-12", today, daySlots))

		assert.ErrorIs(t, w.ChooseTime("10:00", daySlots), wizard.ErrTimeUnavailable)
		assert.Empty(t, w.Schedule.Time)
	})

	t.Run("contact required", func(t *testing.T) {
		_, err := wizard.NewContactChoice("   ", "555", "", "")
		assert.ErrorIs(t, err, wizard.ErrNameRequired)

		_, err = wizard.NewContactChoice("Jane", "\t", "", "")
		assert.ErrorIs(t, err, wizard.ErrPhoneRequired)

		w := atContact(t)
		_, err = w.Payload(today)
		assert.ErrorIs(t, err, wizard.ErrIncomplete)
		assert.ErrorIs(t, w.Next(), wizard.ErrCannotAdvance)
	})

	t.Run("only the current step is editable", func(t *testing.T) {
		w := wizard.New("wz", today)
		assert.ErrorIs(t, w.ChooseProvider(wizard.ProviderChoice{}), wizard.ErrWrongStep)
		assert.ErrorIs(t, w.ChooseDate("2025-06-12", today, daySlots), wizard.ErrWrongStep)
	})
}

func TestWizard_SlotsUnavailableBlocksTime(t *testing.T) {
	w := wizard.New("wz", today)
	require.NoError(t, w.ChooseService(cleaning(t)))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	require.NoError(t, w.MarkSlotsUnavailable("2025-06-12"))
	assert.Equal(t, "2025-06-12", w.Schedule.Date)
	assert.False(t, w.Schedule.SlotsLoaded)
	assert.ErrorIs(t, w.Next(), wizard.ErrSlotsUnavailable)

	require.NoError(t, w.ChooseDate("2025-06-12", today, daySlots))
	assert.True(t, w.Schedule.SlotsLoaded)
}

func TestWizard_ChangesClearChosenTime(t *testing.T) {
	w := atContact(t)

	require.NoError(t, w.Back())
	require.NoError(t, w.ChooseDate("2025-06-13", today, daySlots))
	assert.Empty(t, w.Schedule.Time, "a new date clears the time")

	require.NoError(t, w.ChooseTime("08:30", daySlots))
	require.NoError(t, w.Back())
	require.NoError(t, w.ChooseProvider(wizard.ProviderChoice{ID: "dr-a", Name: "Dr. A"}))
	assert.Equal(t, "08:30", w.Schedule.Time, "same provider keeps the time")

	require.NoError(t, w.ChooseProvider(wizard.ProviderChoice{ID: "dr-b", Name: "Dr. B"}))
	assert.Empty(t, w.Schedule.Time)
	assert.False(t, w.Schedule.SlotsLoaded)
	assert.Equal(t, "2025-06-13", w.Schedule.Date, "the date survives")
}

func TestWizard_Revision(t *testing.T) {
	w := wizard.New("wz", today)
	assert.Equal(t, 0, w.Revision)

	require.NoError(t, w.ChooseService(cleaning(t)))
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.Revision)

	current := w.Revision
	stale := current - 1

	assert.NoError(t, w.CheckRevision(nil))
	assert.NoError(t, w.CheckRevision(&current))
	assert.ErrorIs(t, w.CheckRevision(&stale), wizard.ErrStaleRevision)

	before := w.Revision
	assert.Error(t, w.ChooseDate("2025-06-12", today, daySlots))
	assert.Equal(t, before, w.Revision, "refused transitions leave the revision alone")
}

func TestWizard_SubmittedIsTerminal(t *testing.T) {
	w := atContact(t)

	contact, err := wizard.NewContactChoice("Jane", "555", "", "")
	require.NoError(t, err)
	require.NoError(t, w.ChooseContact(contact))

	booking, err := w.Payload(today)
	require.NoError(t, err)
	require.NoError(t, w.Complete(booking))

	assert.ErrorIs(t, w.Back(), wizard.ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Next(), wizard.ErrAlreadySubmitted)
	assert.ErrorIs(t, w.ChooseContact(contact), wizard.ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Complete(booking), wizard.ErrAlreadySubmitted)

	_, err = w.Payload(today)
	assert.ErrorIs(t, err, wizard.ErrAlreadySubmitted)
}

func TestWizard_BackNavigation(t *testing.T) {
	w := wizard.New("wz", today)
	assert.ErrorIs(t, w.Back(), wizard.ErrCannotGoBack)

	w = atContact(t)
	for _, expected := range []wizard.Step{wizard.StepDateTime, wizard.StepProvider, wizard.StepService} {
		require.NoError(t, w.Back())
		assert.Equal(t, expected, w.Step)
	}

	require.NotNil(t, w.Service, "going back keeps earlier choices")
}

// Any sequence of transitions that ends in Submitted went through every guard.
func TestWizard_SubmittedImpliesComplete(t *testing.T) {
	actions := []func(w *wizard.Wizard){
		func(w *wizard.Wizard) { _ = w.Next() },
		func(w *wizard.Wizard) { _ = w.Back() },
		func(w *wizard.Wizard) { _ = w.ChooseService(wizard.ServiceChoice{ID: "svc", Name: "X", Duration: 30}) },
		func(w *wizard.Wizard) { _ = w.ChooseProvider(wizard.ProviderChoice{}) },
		func(w *wizard.Wizard) { _ = w.ChooseDate("2025-06-11", today, daySlots) },
		func(w *wizard.Wizard) { _ = w.ChooseTime("08:00", daySlots) },
		func(w *wizard.Wizard) { _ = w.MarkSlotsUnavailable("2025-06-11") },
		func(w *wizard.Wizard) { _ = w.ChooseContact(wizard.ContactChoice{Name: "Jane", Phone: "555"}) },
		func(w *wizard.Wizard) {
			if booking, err := w.Payload(today); err == nil {
				_ = w.Complete(booking)
			}
		},
	}

	// Deterministic walk over many interleavings.
	for seed := 0; seed < 2000; seed++ {
		w := wizard.New("wz", today)
		state := seed

		for i := 0; i < 40; i++ {
			state = (state*1103515245 + 12345) & 0x7fffffff
			actions[state%len(actions)](&w)
		}

		if w.Step == wizard.StepSubmitted {
			require.True(t, w.Ready(), "seed %d reached Submitted without all fields", seed)
		}
	}
}

func TestWizard_PayloadAfterMidnightRefusesPastDate(t *testing.T) {
	w := atContact(t)

	contact, err := wizard.NewContactChoice("Jane Doe", "555-0100", "", "")
	require.NoError(t, err)
	require.NoError(t, w.ChooseContact(contact))

	_, err = w.Payload(today.AddDate(0, 0, 1))
	require.NoError(t, err, "the chosen day itself is still bookable")

	_, err = w.Payload(today.AddDate(0, 0, 2))
	require.ErrorIs(t, err, wizard.ErrDateInPast)
	assert.Equal(t, wizard.StepContact, w.Step)
}
