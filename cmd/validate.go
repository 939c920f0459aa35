package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"
)

// NewValidateCommand creates new command instance
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "Validates the configuration",
		RunE:  validateConfiguration,
	}
}

// validateConfiguration runs after initConfig has already loaded and validated the file
func validateConfiguration(_ *cobra.Command, _ []string) error {
	log.Log().Infof("Validating configuration file: %s", configPath)

	_, err := os.Stat(configPath)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return model.NewValidationError("configuration file %s does not exist", configPath)
	}

	log.Log().Info("Configuration is valid")

	return nil
}
