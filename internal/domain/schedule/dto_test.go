package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

func TestUpsertShiftTemplateRequest_Validate(t *testing.T) {
	t.Run("day shift", func(t *testing.T) {
		req := UpsertShiftTemplateRequest{
			Name: "12/36", Entry: "07:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "19:00",
			WorkMinutesExpected: 660,
		}
		require.NoError(t, req.Validate())

		got := req.ToEntity("st1")
		assert.Equal(t, ShiftTemplate{
			StationID: "st1", Name: "12/36",
			EntryMinute: 420, LunchOutMinute: 720, LunchInMinute: 780, ExitMinute: 1140,
			WorkMinutesExpected: 660,
		}, got)
		assert.False(t, got.ToTemplate().IsNightShift())
	})

	t.Run("night shift without lunch", func(t *testing.T) {
		req := UpsertShiftTemplateRequest{Name: "noturno", Entry: "19:00", Exit: "07:00", WorkMinutesExpected: 660}
		require.NoError(t, req.Validate())
		assert.True(t, req.ToEntity("st1").ToTemplate().IsNightShift())
	})

	t.Run("day shift requires lunch", func(t *testing.T) {
		req := UpsertShiftTemplateRequest{Name: "6/1", Entry: "08:00", Exit: "17:20", WorkMinutesExpected: 500}
		err := req.Validate()
		require.Error(t, err)
		fields := err.(validator.ValidationErrors).ToMap()
		assert.Contains(t, fields, "lunch_out")
		assert.Contains(t, fields, "lunch_in")
	})

	t.Run("out of order", func(t *testing.T) {
		req := UpsertShiftTemplateRequest{
			Name: "x", Entry: "07:00", LunchOut: "13:00", LunchIn: "12:00", Exit: "19:00",
			WorkMinutesExpected: 660,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("bad clock and minutes", func(t *testing.T) {
		req := UpsertShiftTemplateRequest{Name: "x", Entry: "7h", LunchOut: "12:00", LunchIn: "13:00", Exit: "19:00"}
		err := req.Validate()
		require.Error(t, err)
		fields := err.(validator.ValidationErrors).ToMap()
		assert.Contains(t, fields, "entry")
		assert.Contains(t, fields, "work_minutes_expected")
	})
}
