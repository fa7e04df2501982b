package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/caresync/caresync/internal/api"
	"github.com/caresync/caresync/internal/ux"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Take part in the medicine-availability board",
	Long: `Take part in the community medicine-availability board: browse
support groups, post requests for hard-to-find medicine, and respond to
other people's requests.

Examples:
  caresync community groups
  caresync community requests
  caresync community post --medicine insulin --urgency high
  caresync community respond 5 --message "Available at Central Pharmacy"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var communityGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List support groups",
	RunE:  runCommunityGroups,
}

var communityRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List medicine requests, newest first",
	RunE:  runCommunityRequests,
}

var communityPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new medicine request",
	RunE:  runCommunityPost,
}

var communityRespondCmd = &cobra.Command{
	Use:   "respond <id>",
	Short: "Respond to a medicine request",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommunityRespond,
}

var communityVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Toggle the verified mark on a request",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommunityVerify,
}

var communityRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a medicine request",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommunityRemove,
}

func init() {
	communityCmd.AddCommand(communityGroupsCmd)
	communityCmd.AddCommand(communityRequestsCmd)
	communityCmd.AddCommand(communityPostCmd)
	communityCmd.AddCommand(communityRespondCmd)
	communityCmd.AddCommand(communityVerifyCmd)
	communityCmd.AddCommand(communityRemoveCmd)

	communityPostCmd.Flags().String("medicine", "", "medicine name (required)")
	communityPostCmd.Flags().String("description", "", "details about the need")
	communityPostCmd.Flags().String("urgency", "", "urgency: low, medium, or high")
	_ = communityPostCmd.MarkFlagRequired("medicine")

	communityRespondCmd.Flags().String("message", "", "response message (required)")
	_ = communityRespondCmd.MarkFlagRequired("message")

	communityRemoveCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	rootCmd.AddCommand(communityCmd)
}

func runCommunityGroups(cmd *cobra.Command, args []string) error {
	a := getApp()

	groups, err := a.client.ListCommunityGroups(cmd.Context())
	if err != nil {
		a.logger.WithError(err).Warn("could not fetch community groups")
	}

	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []string{
			string(group.ID),
			group.Name,
			strconv.Itoa(group.MemberCount),
			group.Description,
		})
	}

	text := a.styles.Table([]string{"ID", "NAME", "MEMBERS", "DESCRIPTION"}, rows)
	if len(groups) == 0 {
		text = a.styles.Muted.Render("No groups.") + "\n"
	}
	return a.render(groups, text)
}

func runCommunityRequests(cmd *cobra.Command, args []string) error {
	a := getApp()

	requests, err := a.client.ListCommunityRequests(cmd.Context())
	if err != nil {
		a.logger.WithError(err).Warn("could not fetch community requests")
	}

	rows := make([][]string, 0, len(requests))
	for _, req := range requests {
		verified := ""
		if req.Verified {
			verified = a.styles.Verified.Render("✓")
		}
		rows = append(rows, []string{
			string(req.ID),
			req.Medicine,
			req.Urgency,
			req.Author,
			strconv.Itoa(len(req.Responses)),
			verified,
		})
	}

	text := a.styles.Table([]string{"ID", "MEDICINE", "URGENCY", "AUTHOR", "RESPONSES", "VERIFIED"}, rows)
	if len(requests) == 0 {
		text = a.styles.Muted.Render("No requests.") + "\n"
	}
	return a.render(requests, text)
}

func runCommunityPost(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	medicine, _ := cmd.Flags().GetString("medicine")
	description, _ := cmd.Flags().GetString("description")
	urgency, _ := cmd.Flags().GetString("urgency")

	req, err := a.client.CreateCommunityRequest(cmd.Context(), api.CommunityRequestInput{
		Medicine:    medicine,
		Description: description,
		Urgency:     urgency,
	})
	if err != nil {
		return fmt.Errorf("posting request failed: %w", err)
	}

	text := a.styles.Success.Render("Request posted.") + "\n"
	if req != nil {
		text += a.styles.KV("ID", string(req.ID)) + "\n"
	}
	return a.render(req, text)
}

func runCommunityRespond(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	message, _ := cmd.Flags().GetString("message")

	req, err := a.client.AddResponseToRequest(cmd.Context(), api.ID(args[0]), api.CommunityResponse{
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("responding failed: %w", err)
	}

	text := a.styles.Success.Render("Response added.") + "\n"
	if req != nil {
		text += a.styles.KV("Responses", strconv.Itoa(len(req.Responses))) + "\n"
	}
	return a.render(req, text)
}

func runCommunityVerify(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	req, err := a.client.ToggleVerify(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return fmt.Errorf("toggling verification failed: %w", err)
	}

	text := a.styles.Muted.Render("Request is now unverified.") + "\n"
	if req != nil && req.Verified {
		text = a.styles.Verified.Render("Request is now verified.") + "\n"
	}
	return a.render(req, text)
}

func runCommunityRemove(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := ux.PromptForConfirmation("Remove request "+args[0]+"?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println(a.styles.Muted.Render("Kept the request."))
			return nil
		}
	}

	if err := a.client.RemoveRequest(cmd.Context(), api.ID(args[0])); err != nil {
		return fmt.Errorf("removing request failed: %w", err)
	}
	fmt.Println(a.styles.Success.Render("Request removed."))
	return nil
}
