package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/profile"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the stored personal profile",
	}
	cmd.AddCommand(profileShowCmd(), profileSetCmd(), profileDeleteCmd(), profileDumpCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			p, err := a.loadProfile(cmd.Context())
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProfileNotFound
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			printProfile(cmd.OutOrStdout(), p, time.Now())
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print as JSON")
	return cmd
}

func printProfile(w io.Writer, p *domain.Profile, now time.Time) {
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	if p.Gender != "" {
		fmt.Fprintf(w, "Gender:      %s\n", p.Gender)
	}
	if age, category, ok := profile.CategoryOf(p, now); ok {
		fmt.Fprintf(w, "Born:        %s (age %d, %s)\n", p.DateOfBirth.Format(time.DateOnly), age, category)
	}
	fmt.Fprintf(w, "Salaried:    %s\n", yesNo(p.Salaried))
	fmt.Fprintf(w, "Metro:       %s\n", yesNo(p.ResidingInMetro))
	for _, field := range []struct{ label, value string }{
		{"Email:", p.Email},
		{"PAN:", p.PAN},
		{"Phone:", p.Phone},
		{"Occupation:", p.Occupation},
	} {
		if field.value != "" {
			fmt.Fprintf(w, "%-12s %s\n", field.label, field.value)
		}
	}
	fmt.Fprintf(w, "Updated:     %s\n", p.UpdatedAt.Local().Format(time.DateTime))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the stored profile",
		Long:  "Updates only the fields given as flags; a new profile needs at least --name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			ctx := cmd.Context()
			svc, err := a.openProfiles(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.Load(ctx)
			if err != nil {
				return err
			}
			if p == nil {
				p = &domain.Profile{}
			}
			if err := applyProfileFlags(cmd, p); err != nil {
				return err
			}

			saved, err := svc.Save(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s\n", saved.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("name", "", "Full name")
	f.String("gender", "", "male or female")
	f.String("dob", "", "Date of birth (YYYY-MM-DD); empty clears it")
	f.Bool("salaried", false, "Salaried employee")
	f.Bool("metro", false, "Residing in a metro city")
	f.String("email", "", "Email address")
	f.String("pan", "", "Permanent Account Number")
	f.String("phone", "", "Phone number")
	f.String("occupation", "", "Occupation")
	return cmd
}

// applyProfileFlags copies every flag the user set onto p
func applyProfileFlags(cmd *cobra.Command, p *domain.Profile) error {
	f := cmd.Flags()
	textFields := map[string]*string{
		"name":       &p.Name,
		"gender":     &p.Gender,
		"email":      &p.Email,
		"pan":        &p.PAN,
		"phone":      &p.Phone,
		"occupation": &p.Occupation,
	}
	for flag, target := range textFields {
		if f.Changed(flag) {
			*target, _ = f.GetString(flag)
		}
	}
	if f.Changed("salaried") {
		p.Salaried, _ = f.GetBool("salaried")
	}
	if f.Changed("metro") {
		p.ResidingInMetro, _ = f.GetBool("metro")
	}
	if f.Changed("dob") {
		text, _ := f.GetString("dob")
		dob, err := profile.ParseDate(text)
		if err != nil {
			return err
		}
		p.DateOfBirth = dob
	}
	return nil
}

var errDeleteNotConfirmed = errors.New("refusing to delete the profile without --yes")

func profileDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove every stored profile record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errDeleteNotConfirmed
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			ctx := cmd.Context()
			svc, err := a.openProfiles(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile deleted")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
	return cmd
}

func profileDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			ctx := cmd.Context()
			svc, err := a.openProfiles(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			data, err := svc.ExportJSON(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
