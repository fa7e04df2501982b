package api

import (
	"context"
	"net/http"
	"sort"
)

// Appointment is a scheduled visit with a doctor.
type Appointment struct {
	ID              ID     `json:"id"`
	PatientID       ID     `json:"patientId,omitempty"`
	PatientName     string `json:"patientName,omitempty"`
	DoctorID        ID     `json:"doctorId,omitempty"`
	DoctorName      string `json:"doctorName,omitempty"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

// AppointmentRequest is the payload for booking an appointment.
type AppointmentRequest struct {
	DoctorID        ID     `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reason,omitempty"`
}

// ListAppointments fetches the caller's appointments, sorted most recent
// first by date then time. The ordering is a client-side convenience; the
// backend does not guarantee it. The returned slice is never nil, so a
// listing caller can render the empty collection and decide for itself
// whether to surface the error.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	appointments := []Appointment{}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/appointments",
	}, &appointments)
	if err != nil {
		return []Appointment{}, err
	}

	sortAppointments(appointments)
	return appointments, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var created Appointment
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/api/appointments",
		Body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// PatchAppointment applies a partial update, e.g. a reschedule or a status
// change.
func (c *Client) PatchAppointment(ctx context.Context, id ID, patch map[string]any) (*Appointment, error) {
	var updated Appointment
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPatch,
		Path:   "/api/appointments/" + id.String(),
		Body:   patch,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAppointment cancels an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id ID) error {
	return c.Do(ctx, Endpoint{
		Method: http.MethodDelete,
		Path:   "/api/appointments/" + id.String(),
	}, nil)
}

// sortAppointments orders by date descending, then time descending.
// Dates are ISO (2024-01-02) and times 24-hour (09:00), so lexicographic
// comparison is chronological.
func sortAppointments(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].AppointmentDate != appointments[j].AppointmentDate {
			return appointments[i].AppointmentDate > appointments[j].AppointmentDate
		}
		return appointments[i].AppointmentTime > appointments[j].AppointmentTime
	})
}
