package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/model"
)

var (
	setupName     string
	setupGender   string
	setupLanguage string
	setupStyle    string
	setupAPIKey   string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save your profile and API key",
	Long: "Stores the personal details used to address you in generated documents, " +
		"the output language and writing style, and optionally the completion API key.",
	RunE: runSetup,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the saved profile",
	RunE:  runProfileShow,
}

func init() {
	setupCmd.Flags().StringVar(&setupName, "name", "", "your full name")
	setupCmd.Flags().StringVar(&setupGender, "gender", "", "male, female, or non-binary (optional)")
	setupCmd.Flags().StringVar(&setupLanguage, "language", "", "output language: en, fr, zh, or mg")
	setupCmd.Flags().StringVar(&setupStyle, "style", "", "writing style: professional, creative, academic, or technical")
	setupCmd.Flags().StringVar(&setupAPIKey, "api-key", "", "completion API key to store")
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(profileCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	profile, err := loadProfileOrDefault(st)
	if err != nil {
		return err
	}

	// Only the flags that were set override the saved profile.
	if cmd.Flags().Changed("name") {
		profile.Name = setupName
	}
	if cmd.Flags().Changed("gender") {
		if !model.ValidGender(setupGender) {
			return fmt.Errorf("unsupported gender %q", setupGender)
		}
		profile.Gender = setupGender
	}
	if cmd.Flags().Changed("language") {
		if !model.ValidLanguage(setupLanguage) {
			return fmt.Errorf("unsupported language %q (want en, fr, zh, or mg)", setupLanguage)
		}
		profile.Language = setupLanguage
	}
	if cmd.Flags().Changed("style") {
		if !model.ValidDiscourseType(setupStyle) {
			return fmt.Errorf("unsupported style %q (want professional, creative, academic, or technical)", setupStyle)
		}
		profile.DiscourseType = setupStyle
	}

	if err := st.SaveProfile(profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if cmd.Flags().Changed("api-key") {
		if err := st.SaveAPIKey(setupAPIKey); err != nil {
			return fmt.Errorf("save api key: %w", err)
		}
	}

	fmt.Printf("%s profile saved\n", successBadge)
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	profile, ok, err := st.LoadProfile()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		fmt.Println("No profile saved yet. Run `tailor setup`.")
		return nil
	}

	gender := profile.Gender
	if gender == "" {
		gender = "(not set)"
	}
	fmt.Printf("Name:     %s\n", profile.Name)
	fmt.Printf("Gender:   %s\n", gender)
	fmt.Printf("Language: %s\n", profile.Language)
	fmt.Printf("Style:    %s\n", profile.DiscourseType)

	key, err := st.LoadAPIKey()
	if err != nil {
		return fmt.Errorf("load api key: %w", err)
	}
	if key != "" {
		fmt.Println("API key:  saved")
	} else {
		fmt.Println("API key:  not saved")
	}
	return nil
}
