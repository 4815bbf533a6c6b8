package order_test

import (
	"testing"

	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.WaitingAdminConfirmation,
		order.Confirmed,
		order.Completed,
		order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses_pass", func(t *testing.T) {
		for _, s := range validStatuses() {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown_and_out_of_range_fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Pending:                  "pending",
		order.WaitingAdminConfirmation: "waiting_admin_confirmation",
		order.Confirmed:                "confirmed",
		order.Completed:                "completed",
		order.Cancelled:                "cancelled",
		order.Unknown:                  "unknown",
		order.Status(42):               "unknown",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trips_every_valid_status", func(t *testing.T) {
		for _, s := range validStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_unrecognized_strings", func(t *testing.T) {
		for _, raw := range []string{"", "unknown", "PENDING", "shipped"} {
			_, err := order.StatusFromString(raw)
			require.Error(t, err, raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	type move struct {
		from order.Status
		to   order.Status
	}

	allowed := []move{
		{order.Pending, order.Confirmed},
		{order.Pending, order.Cancelled},
		{order.Pending, order.WaitingAdminConfirmation},
		{order.WaitingAdminConfirmation, order.Confirmed},
		{order.WaitingAdminConfirmation, order.Cancelled},
		{order.Confirmed, order.Completed},
		{order.Confirmed, order.Cancelled},
		{order.Cancelled, order.Pending},
	}

	t.Run("allowed_transitions_succeed", func(t *testing.T) {
		for _, m := range allowed {
			next, err := m.from.TransitionTo(m.to)
			require.NoError(t, err, "%s -> %s", m.from, m.to)
			assert.Equal(t, m.to, next)
		}
	})

	t.Run("every_other_pair_fails", func(t *testing.T) {
		isAllowed := func(m move) bool {
			for _, a := range allowed {
				if a == m {
					return true
				}
			}
			return false
		}

		for _, from := range validStatuses() {
			for _, to := range validStatuses() {
				m := move{from, to}
				if from == to || isAllowed(m) {
					continue
				}

				_, err := from.TransitionTo(to)
				require.Error(t, err, "%s -> %s", from, to)
				require.ErrorIs(t, err, order.ErrInvalidTransition)
			}
		}
	})

	t.Run("error_names_source_and_destination", func(t *testing.T) {
		_, err := order.Completed.TransitionTo(order.Pending)

		require.Error(t, err)
		assert.Equal(t, "invalid transition from completed to pending", err.Error())
	})

	t.Run("transition_to_invalid_destination_fails", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("completed_is_the_only_terminal_status", func(t *testing.T) {
		for _, s := range validStatuses() {
			assert.Equal(t, s == order.Completed, s.IsTerminal(), s.String())
		}
	})
}

func TestStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "Waiting for confirmation", order.WaitingAdminConfirmation.DisplayName())
	assert.Equal(t, "Unknown", order.Status(42).DisplayName())
}
