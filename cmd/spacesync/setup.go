package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thebluefowl/spacesync/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or replace the encrypted settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settingsStore()
		if err != nil {
			return err
		}
		_, err = setup(store)
		return err
	},
}

func setup(store *config.SettingsStore) (config.Config, error) {
	warning := lipgloss.NewStyle().Width(60).Render(
		"⚠ The master password encrypts your storage credentials. Forgetting it means entering them again.")

	color.New(color.BgWhite).Println("Set up master password")
	color.Yellow("%s", warning)
	fmt.Println()
	password, err := setupMasterPassword()
	if err != nil {
		return config.Config{}, err
	}

	fmt.Println()
	color.New(color.BgWhite).Println("Set up storage")
	fmt.Println()

	settings, err := askSettings()
	if err != nil {
		return config.Config{}, err
	}

	if err := store.Save(settings, password); err != nil {
		return config.Config{}, err
	}

	color.Green("✓ Settings saved to %s", store.Path())
	return settings, nil
}

func askSettings() (config.Config, error) {
	questions := []*survey.Question{
		{
			Name: "driver",
			Prompt: &survey.Select{
				Message: "Storage driver:",
				Options: []string{config.DriverS3, config.DriverMinio},
				Default: config.DriverS3,
			},
		},
		{
			Name: "endpoint",
			Prompt: &survey.Input{
				Message: "Endpoint:",
				Default: "https://nyc3.digitaloceanspaces.com",
			},
			Validate: survey.Required,
		},
		{
			Name:     "key",
			Prompt:   &survey.Input{Message: "Access key:"},
			Validate: survey.Required,
		},
		{
			Name:     "secret",
			Prompt:   &survey.Password{Message: "Secret:"},
			Validate: survey.Required,
		},
		{
			Name:     "container",
			Prompt:   &survey.Input{Message: "Container (bucket) name:"},
			Validate: survey.Required,
		},
		{
			Name: "region",
			Prompt: &survey.Input{
				Message: "Region:",
				Default: "us-east-1",
				Help:    "Spaces ignores the region but request signing needs one",
			},
		},
		{
			Name: "storagepath",
			Prompt: &survey.Input{
				Message: "Storage path prefix:",
				Help:    "Prepended to every remote key, e.g. /media",
			},
		},
		{
			Name:   "uploadpath",
			Prompt: &survey.Input{Message: "Local upload path:"},
		},
		{
			Name: "filter",
			Prompt: &survey.Input{
				Message: "Exclude pattern:",
				Default: "*",
				Help:    "Regular expression of files NOT to sync; * syncs everything",
			},
		},
		{
			Name:   "keeponly",
			Prompt: &survey.Confirm{Message: "Delete local copies after upload?"},
		},
		{
			Name:   "deleteremote",
			Prompt: &survey.Confirm{Message: "Delete remote copies when an attachment is deleted?", Default: true},
		},
	}

	var answers struct {
		Driver       string
		Endpoint     string
		Key          string
		Secret       string
		Container    string
		Region       string
		StoragePath  string
		UploadPath   string
		Filter       string
		KeepOnly     bool
		DeleteRemote bool
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return config.Config{}, err
	}

	return config.Config{
		Driver:                    answers.Driver,
		Endpoint:                  answers.Endpoint,
		Key:                       answers.Key,
		Secret:                    answers.Secret,
		Container:                 answers.Container,
		Region:                    answers.Region,
		StoragePath:               answers.StoragePath,
		UploadPath:                answers.UploadPath,
		Filter:                    answers.Filter,
		KeepOnlyInStorage:         answers.KeepOnly,
		DeleteRemoteOnLocalDelete: answers.DeleteRemote,
	}, nil
}

func setupMasterPassword() (string, error) {
	masterPasswordQuestions := []*survey.Question{
		{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Master Password:"},
			Validate: survey.Required,
		},
		{
			Name:     "confirm",
			Prompt:   &survey.Password{Message: "Confirm Master Password:"},
			Validate: survey.Required,
		},
	}

	var passwordAnswers struct {
		Password string
		Confirm  string
	}

	if err := survey.Ask(masterPasswordQuestions, &passwordAnswers); err != nil {
		return "", err
	}

	if passwordAnswers.Password != passwordAnswers.Confirm {
		color.Red("Passwords do not match")
		return "", errors.New("passwords do not match")
	}

	color.Green("✓ Master password created successfully!")

	return passwordAnswers.Password, nil
}
