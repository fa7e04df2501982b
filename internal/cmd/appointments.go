package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caresync/caresync/internal/api"
	"github.com/caresync/caresync/internal/ux"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appointment", "appt"},
	Short:   "Book and manage appointments",
	Long: `Book and manage doctor appointments.

Listings are sorted most recent first, by date then time.

Examples:
  caresync appointments list
  caresync appointments book --doctor 12 --date 2026-09-14 --time 10:30
  caresync appointments reschedule 7 --date 2026-09-21 --time 09:00
  caresync appointments cancel 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your appointments",
	RunE:  runAppointmentsList,
}

var appointmentsBookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a new appointment",
	RunE:  runAppointmentsBook,
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppointmentsCancel,
}

var appointmentsRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id>",
	Short: "Move an appointment to a new date or time",
	RunE:  runAppointmentsReschedule,
	Args:  cobra.ExactArgs(1),
}

func init() {
	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsBookCmd)
	appointmentsCmd.AddCommand(appointmentsCancelCmd)
	appointmentsCmd.AddCommand(appointmentsRescheduleCmd)

	appointmentsBookCmd.Flags().String("doctor", "", "doctor ID (required)")
	appointmentsBookCmd.Flags().String("date", "", "appointment date, YYYY-MM-DD (required)")
	appointmentsBookCmd.Flags().String("time", "", "appointment time, HH:MM (required)")
	appointmentsBookCmd.Flags().String("reason", "", "reason for the visit")
	_ = appointmentsBookCmd.MarkFlagRequired("doctor")
	_ = appointmentsBookCmd.MarkFlagRequired("date")
	_ = appointmentsBookCmd.MarkFlagRequired("time")

	appointmentsCancelCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	appointmentsRescheduleCmd.Flags().String("date", "", "new date, YYYY-MM-DD")
	appointmentsRescheduleCmd.Flags().String("time", "", "new time, HH:MM")

	rootCmd.AddCommand(appointmentsCmd)
}

func runAppointmentsList(cmd *cobra.Command, args []string) error {
	a := getApp()

	appointments, err := a.client.ListAppointments(cmd.Context())
	if err != nil {
		// Degrade to the empty listing, the way the mobile clients do.
		a.logger.WithError(err).Warn("could not fetch appointments")
	}

	rows := make([][]string, 0, len(appointments))
	for _, appt := range appointments {
		rows = append(rows, []string{
			string(appt.ID),
			appt.AppointmentDate,
			appt.AppointmentTime,
			appt.DoctorName,
			appt.Status,
		})
	}

	text := a.styles.Table([]string{"ID", "DATE", "TIME", "DOCTOR", "STATUS"}, rows)
	if len(appointments) == 0 {
		text = a.styles.Muted.Render("No appointments.") + "\n"
	}
	return a.render(appointments, text)
}

func runAppointmentsBook(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	doctor, _ := cmd.Flags().GetString("doctor")
	date, _ := cmd.Flags().GetString("date")
	timeOfDay, _ := cmd.Flags().GetString("time")
	reason, _ := cmd.Flags().GetString("reason")

	appt, err := a.client.CreateAppointment(cmd.Context(), api.AppointmentRequest{
		DoctorID:        api.ID(doctor),
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Reason:          reason,
	})
	if err != nil {
		return fmt.Errorf("booking failed: %w", err)
	}

	text := a.styles.Success.Render("Appointment booked.") + "\n"
	if appt != nil {
		text += a.styles.KV("ID", string(appt.ID)) + "\n" +
			a.styles.KV("When", appt.AppointmentDate+" "+appt.AppointmentTime) + "\n"
	}
	return a.render(appt, text)
}

func runAppointmentsCancel(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := ux.PromptForConfirmation("Cancel appointment "+args[0]+"?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println(a.styles.Muted.Render("Kept the appointment."))
			return nil
		}
	}

	if err := a.client.DeleteAppointment(cmd.Context(), api.ID(args[0])); err != nil {
		return fmt.Errorf("cancelling failed: %w", err)
	}
	fmt.Println(a.styles.Success.Render("Appointment cancelled."))
	return nil
}

func runAppointmentsReschedule(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	timeOfDay, _ := cmd.Flags().GetString("time")
	if date == "" && timeOfDay == "" {
		return fmt.Errorf("invalid argument: pass --date, --time, or both")
	}

	patch := map[string]any{}
	if date != "" {
		patch["appointmentDate"] = date
	}
	if timeOfDay != "" {
		patch["appointmentTime"] = timeOfDay
	}

	appt, err := a.client.PatchAppointment(cmd.Context(), api.ID(args[0]), patch)
	if err != nil {
		return fmt.Errorf("rescheduling failed: %w", err)
	}

	text := a.styles.Success.Render("Appointment rescheduled.") + "\n"
	if appt != nil {
		text += a.styles.KV("When", appt.AppointmentDate+" "+appt.AppointmentTime) + "\n"
	}
	return a.render(appt, text)
}
