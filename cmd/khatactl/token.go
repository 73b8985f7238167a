package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"khata/internal/auth"
	"khata/internal/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	Long: `Issue a bearer token signed with the configured JWT secret. Production tokens
come from the identity service; this is for local development and smoke tests.`,
	Example: `  khatactl token --tenant 6f1c... --role admin --state 27 --gstin 27AAAAA0000A1Z5`,
	RunE:    runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "User ID (UUID, default: random)")
	tokenCmd.Flags().String("role", string(domain.RoleAdmin), "Role (admin or member)")
	tokenCmd.Flags().String("email", "", "User email")
	tokenCmd.Flags().String("name", "", "Company display name")
	tokenCmd.Flags().String("state", "", "Home state code")
	tokenCmd.Flags().String("gstin", "", "Company GSTIN")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	actor, err := operator(cmd)
	if err != nil {
		return err
	}
	actor.UserID = uuid.New()
	if raw, _ := cmd.Flags().GetString("user"); raw != "" {
		if actor.UserID, err = uuid.Parse(raw); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}
	role, _ := cmd.Flags().GetString("role")
	switch domain.UserRole(role) {
	case domain.RoleAdmin, domain.RoleMember:
		actor.Role = domain.UserRole(role)
	default:
		return fmt.Errorf("invalid --role %q", role)
	}
	actor.Email, _ = cmd.Flags().GetString("email")
	actor.DisplayName, _ = cmd.Flags().GetString("name")
	actor.HomeStateCode, _ = cmd.Flags().GetString("state")
	actor.GSTIN, _ = cmd.Flags().GetString("gstin")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := auth.NewHMACVerifier(configFrom(cmd).JWT).Issue(actor, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
