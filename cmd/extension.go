package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/gplocal/config"
)

// ExtensionPrefix prefixes the name of external gpl commands.
const ExtensionPrefix = "gpl-"

// extensionEnv returns the variables passed to an extension, so that it
// reads the same store as gpl itself.
func extensionEnv() ([]string, error) {
	cfg, err := settings()
	if err != nil {
		return nil, err
	}
	env := os.Environ()
	env = append(env, config.EnvStoreDriver+"="+string(cfg.Store.Driver))
	env = append(env, config.EnvStorePath+"="+cfg.Store.Path)
	if cfg.Store.DatabaseURL != "" {
		env = append(env, config.EnvDatabaseURL+"="+cfg.Store.DatabaseURL)
	}
	env = append(env, config.EnvCurrency+"="+cfg.Currency)
	env = append(env, config.EnvVerbose+"="+strconv.FormatBool(cfg.Verbose))
	return env, nil
}

// RunExtension attempts to find and execute an external gpl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		infof("external command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	env, err := extensionEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return true, 2
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		log.Printf("Error executing external command %q: %v", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
