package employee

type EmployeeResponse struct {
	ID           string `json:"id"`
	StationID    string `json:"station_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	ShiftName    string `json:"shift_name"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		StationID:    e.StationID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		ShiftName:    e.ShiftName,
	}
}
