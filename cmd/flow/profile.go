package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update the account profile",
	}

	cmd.AddCommand(showProfileCmd())
	cmd.AddCommand(updateProfileCmd())

	return cmd
}

func showProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			if err := requireAuth(sess); err != nil {
				return err
			}

			profile, err := initClient(sess).GetProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			content := fmt.Sprintf("Username  %s\nEmail     %s", profile.Username, profile.Email)
			fmt.Println(cli.RenderBox("Profile", content))
			return nil
		},
	}
}

func updateProfileCmd() *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change username, email, or password",
		Long: `Update profile fields. The password is only changed when --password
is given; leaving it blank keeps the current one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			if err := requireAuth(sess); err != nil {
				return err
			}

			client := initClient(sess)

			// Start from the current values so unset flags keep them.
			current, err := client.GetProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			update := model.ProfileUpdate{
				Username: current.Username,
				Email:    current.Email,
				Password: password,
			}
			if username != "" {
				update.Username = username
			}
			if email != "" {
				update.Email = email
			}

			if err := client.UpdateProfile(cmd.Context(), update); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Profile updated."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "New username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "New email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (blank keeps the current one)")

	return cmd
}
