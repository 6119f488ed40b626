package punch

import (
	"context"
	"io"
)

// PunchService defines business logic for punches and absence markers
type PunchService interface {
	// RecordPunch registers a clock event for the authenticated employee
	RecordPunch(ctx context.Context, req RecordPunchRequest) (PunchResponse, error)

	// RecordAbsence marks an employee absent for one slot of a day (manager)
	RecordAbsence(ctx context.Context, req RecordAbsenceRequest) (PunchResponse, error)

	GetMyPunches(ctx context.Context, filter PunchFilter) (ListPunchResponse, error)
	ListPunches(ctx context.Context, filter PunchFilter) (ListPunchResponse, error)
	GetPunch(ctx context.Context, id string) (PunchResponse, error)

	// OpenPunchPhoto streams the proof photo of a punch the caller may see
	OpenPunchPhoto(ctx context.Context, id string) (io.ReadCloser, error)

	ApprovePunch(ctx context.Context, req ApprovePunchRequest) (PunchResponse, error)
	RejectPunch(ctx context.Context, req RejectPunchRequest) (PunchResponse, error)
	DeletePunch(ctx context.Context, id string) error
}
