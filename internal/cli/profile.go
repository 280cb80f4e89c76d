// Profile subcommands: save, show.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/christianbiango/team-up/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
}

var profileSaveFlags struct {
	user     string
	username string
	fullName string
	bio      string
	phone    string
	sports   []string
	skill    string
	days     []string
	location string
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update the profile for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := &types.Profile{
			UserID:           profileSaveFlags.user,
			Username:         profileSaveFlags.username,
			FullName:         profileSaveFlags.fullName,
			Bio:              profileSaveFlags.bio,
			Phone:            profileSaveFlags.phone,
			FavoriteSports:   profileSaveFlags.sports,
			SkillLevel:       profileSaveFlags.skill,
			AvailabilityDays: profileSaveFlags.days,
			Location:         profileSaveFlags.location,
		}

		// Saving again for the same user updates the existing profile.
		existing, err := current.manager.GetProfile(cmd.Context(), profile.UserID)
		if err == nil {
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, types.ErrNotFound) {
			return err
		}

		saved, err := current.manager.SaveProfile(cmd.Context(), profile)
		if err != nil {
			return err
		}
		return printProfile(cmd, saved)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show the profile for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := current.manager.GetProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printProfile(cmd, profile)
	},
}

func init() {
	f := profileSaveCmd.Flags()
	f.StringVar(&profileSaveFlags.user, "user", "", "user ID the profile belongs to")
	f.StringVar(&profileSaveFlags.username, "username", "", "public username")
	f.StringVar(&profileSaveFlags.fullName, "name", "", "full name")
	f.StringVar(&profileSaveFlags.bio, "bio", "", "short bio")
	f.StringVar(&profileSaveFlags.phone, "phone", "", "phone number")
	f.StringSliceVar(&profileSaveFlags.sports, "sports", nil, "favorite sports")
	f.StringVar(&profileSaveFlags.skill, "skill", "", "skill level")
	f.StringSliceVar(&profileSaveFlags.days, "days", nil, "availability days")
	f.StringVar(&profileSaveFlags.location, "location", "", "home location")
	for _, required := range []string{"user", "username"} {
		_ = profileSaveCmd.MarkFlagRequired(required)
	}

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileShowCmd)
}

func printProfile(cmd *cobra.Command, profile *types.Profile) error {
	if flagJSON {
		return printJSON(cmd, profile)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", profile.ID)
	fmt.Fprintf(out, "User:     %s\n", profile.UserID)
	fmt.Fprintf(out, "Username: %s\n", profile.Username)
	fmt.Fprintf(out, "Name:     %s\n", profile.FullName)
	fmt.Fprintf(out, "Skill:    %s\n", profile.SkillLevel)
	fmt.Fprintf(out, "Sports:   %s\n", strings.Join(profile.FavoriteSports, ", "))
	fmt.Fprintf(out, "Days:     %s\n", strings.Join(profile.AvailabilityDays, ", "))
	if profile.Meta.Offline {
		fmt.Fprintf(out, "Sync:     pending (%s)\n", profile.Meta.Action)
	}
	return nil
}
