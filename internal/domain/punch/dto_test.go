package punch

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

func TestRecordPunchRequest_Validate(t *testing.T) {
	t.Run("photo is optional", func(t *testing.T) {
		req := RecordPunchRequest{}
		assert.NoError(t, req.Validate())
		assert.False(t, req.HasPhoto())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		req := RecordPunchRequest{FileHeader: &multipart.FileHeader{Filename: "proof.gif", Size: 100}}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.(validator.ValidationErrors).ToMap(), "photo")
	})

	t.Run("rejects oversized photo", func(t *testing.T) {
		req := RecordPunchRequest{FileHeader: &multipart.FileHeader{Filename: "proof.JPG", Size: MaxPhotoSize + 1}}
		assert.Error(t, req.Validate())
	})
}

func TestRecordAbsenceRequest_Validate(t *testing.T) {
	ok := RecordAbsenceRequest{EmployeeID: "e1", Date: "2025-03-10", AbsenceKind: "Entrada Manhã"}
	assert.NoError(t, ok.Validate())

	bad := RecordAbsenceRequest{Date: "10/03/2025"}
	err := bad.Validate()
	require.Error(t, err)
	fields := err.(validator.ValidationErrors).ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "absence_kind")
}

func TestPunchFilter_Validate_Defaults(t *testing.T) {
	f := PunchFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "punched_at", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)

	status := "late"
	bad := PunchFilter{Status: &status, Limit: 500}
	err := bad.Validate()
	require.Error(t, err)
	fields := err.(validator.ValidationErrors).ToMap()
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "limit")
}

func TestToRawPunches_SkipsRejected(t *testing.T) {
	kind := "Saída Tarde"
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	punches := []Punch{
		{EmployeeID: "e1", PunchedAt: at, Status: StatusPending},
		{EmployeeID: "e1", PunchedAt: at.Add(time.Hour), Status: StatusRejected},
		{EmployeeID: "e1", PunchedAt: at.Add(2 * time.Hour), Status: StatusApproved, MarkedAbsent: true, AbsenceKind: &kind},
	}

	raw := ToRawPunches(punches)
	require.Len(t, raw, 2)
	assert.Equal(t, at, raw[0].Timestamp)
	assert.True(t, raw[1].MarkedAbsent)
	assert.Equal(t, kind, raw[1].AbsenceKind)
}

func TestPunch_ToRaw_UnreadableTimestamp(t *testing.T) {
	raw := Punch{EmployeeID: "e1", Status: StatusPending}.ToRaw()
	assert.True(t, raw.Timestamp.IsZero())
	assert.Equal(t, "e1", raw.EmployeeID)
	assert.False(t, raw.MarkedAbsent)
}
