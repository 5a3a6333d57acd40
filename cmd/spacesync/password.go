package main

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// passwordEnv lets non-interactive runs (serve, cron) unlock the settings.
const passwordEnv = "SPACESYNC_PASSWORD"

func askMasterPassword() (string, error) {
	if password := os.Getenv(passwordEnv); password != "" {
		return password, nil
	}

	question := []*survey.Question{
		{
			Name: "password",
			Prompt: &survey.Password{
				Message: "Master Password:",
			},
		},
	}

	var password string
	if err := survey.Ask(question, &password); err != nil {
		return "", err
	}

	return password, nil
}
