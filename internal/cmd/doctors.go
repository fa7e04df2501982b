package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caresync/caresync/internal/api"
	"github.com/caresync/caresync/internal/ux"
)

var doctorsCmd = &cobra.Command{
	Use:     "doctors",
	Aliases: []string{"doctor"},
	Short:   "Browse and manage doctor profiles",
	Long: `Browse and manage doctor profiles.

Examples:
  caresync doctors list
  caresync doctors show 12
  caresync doctors create --name "Dr. Osei" --specialization cardiology`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var doctorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List doctor profiles",
	RunE:  runDoctorsList,
}

var doctorsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one doctor profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoctorsShow,
}

var doctorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a doctor profile",
	RunE:  runDoctorsCreate,
}

var doctorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a doctor profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoctorsUpdate,
}

var doctorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a doctor profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoctorsDelete,
}

func doctorFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "contact email")
	cmd.Flags().String("specialization", "", "medical specialization")
	cmd.Flags().String("qualification", "", "qualifications")
	cmd.Flags().String("experience", "", "years of experience")
	cmd.Flags().String("phone", "", "contact phone")
	cmd.Flags().String("bio", "", "short biography")
	cmd.Flags().String("availability", "", "consultation hours")
}

func init() {
	doctorsCmd.AddCommand(doctorsListCmd)
	doctorsCmd.AddCommand(doctorsShowCmd)
	doctorsCmd.AddCommand(doctorsCreateCmd)
	doctorsCmd.AddCommand(doctorsUpdateCmd)
	doctorsCmd.AddCommand(doctorsDeleteCmd)

	doctorFlags(doctorsCreateCmd)
	_ = doctorsCreateCmd.MarkFlagRequired("name")
	doctorFlags(doctorsUpdateCmd)

	doctorsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	rootCmd.AddCommand(doctorsCmd)
}

func doctorRequestFromFlags(cmd *cobra.Command) api.DoctorRequest {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	specialization, _ := cmd.Flags().GetString("specialization")
	qualification, _ := cmd.Flags().GetString("qualification")
	experience, _ := cmd.Flags().GetString("experience")
	phone, _ := cmd.Flags().GetString("phone")
	bio, _ := cmd.Flags().GetString("bio")
	availability, _ := cmd.Flags().GetString("availability")

	return api.DoctorRequest{
		Name:           name,
		Email:          email,
		Specialization: specialization,
		Qualification:  qualification,
		Experience:     experience,
		Phone:          phone,
		Bio:            bio,
		Availability:   availability,
	}
}

func renderDoctor(a *app, doc *api.Doctor) string {
	if doc == nil {
		return ""
	}
	text := a.styles.Title.Render(doc.Name) + "\n"
	if doc.Specialization != "" {
		text += a.styles.KV("Specialization", doc.Specialization) + "\n"
	}
	if doc.Qualification != "" {
		text += a.styles.KV("Qualification", doc.Qualification) + "\n"
	}
	if doc.Experience != "" {
		text += a.styles.KV("Experience", doc.Experience) + "\n"
	}
	if doc.Phone != "" {
		text += a.styles.KV("Phone", doc.Phone) + "\n"
	}
	if doc.Availability != "" {
		text += a.styles.KV("Availability", doc.Availability) + "\n"
	}
	if doc.Bio != "" {
		text += a.styles.KV("Bio", doc.Bio) + "\n"
	}
	return text
}

func runDoctorsList(cmd *cobra.Command, args []string) error {
	a := getApp()

	doctors, err := a.client.ListDoctors(cmd.Context())
	if err != nil {
		a.logger.WithError(err).Warn("could not fetch doctors")
	}

	rows := make([][]string, 0, len(doctors))
	for _, doc := range doctors {
		rows = append(rows, []string{
			string(doc.ID),
			doc.Name,
			doc.Specialization,
			doc.Availability,
		})
	}

	text := a.styles.Table([]string{"ID", "NAME", "SPECIALIZATION", "AVAILABILITY"}, rows)
	if len(doctors) == 0 {
		text = a.styles.Muted.Render("No doctors.") + "\n"
	}
	return a.render(doctors, text)
}

func runDoctorsShow(cmd *cobra.Command, args []string) error {
	a := getApp()

	doc, err := a.client.GetDoctorProfile(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return fmt.Errorf("fetching doctor profile failed: %w", err)
	}
	return a.render(doc, renderDoctor(a, doc))
}

func runDoctorsCreate(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	doc, err := a.client.CreateDoctor(cmd.Context(), doctorRequestFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("creating doctor profile failed: %w", err)
	}

	text := a.styles.Success.Render("Doctor profile created.") + "\n" + renderDoctor(a, doc)
	return a.render(doc, text)
}

func runDoctorsUpdate(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	doc, err := a.client.UpdateDoctorProfile(cmd.Context(), api.ID(args[0]), doctorRequestFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("updating doctor profile failed: %w", err)
	}

	text := a.styles.Success.Render("Doctor profile updated.") + "\n" + renderDoctor(a, doc)
	return a.render(doc, text)
}

func runDoctorsDelete(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := ux.PromptForConfirmation("Delete doctor profile "+args[0]+"?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println(a.styles.Muted.Render("Kept the profile."))
			return nil
		}
	}

	if err := a.client.DeleteDoctor(cmd.Context(), api.ID(args[0])); err != nil {
		return fmt.Errorf("deleting doctor profile failed: %w", err)
	}
	fmt.Println(a.styles.Success.Render("Doctor profile deleted."))
	return nil
}
