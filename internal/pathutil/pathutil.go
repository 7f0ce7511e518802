// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "FOCUSLOG_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	logFileName    string
	statusFileName string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	logFilePath    string
	statusFilePath string
}

var (
	paths   *Paths
	once    sync.Once
	initErr error
)

// Initialize must be called once at program startup.
func Initialize() error {
	once.Do(func() {
		paths = &Paths{
			configDir:      "focuslog",
			configFileName: "config.yml",
			dbFileName:     "focuslog.db",
			logFileName:    "focuslog.log",
			statusFileName: "status.json",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

// StatusFilePath is where a running timer publishes its state.
func StatusFilePath() string {
	return Must().statusFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("focuslog_%s.db", env)
		p.logFileName = fmt.Sprintf("focuslog_%s.log", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	// xdg creates the parent directories of each file
	p.dbFilePath, err = xdg.DataFile(filepath.Join(p.configDir, p.dbFileName))
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}

	p.logFilePath, err = xdg.DataFile(
		filepath.Join(p.configDir, "log", p.logFileName),
	)
	if err != nil {
		return fmt.Errorf("resolving log path: %w", err)
	}

	p.statusFilePath, err = xdg.StateFile(
		filepath.Join(p.configDir, p.statusFileName),
	)
	if err != nil {
		return fmt.Errorf("resolving status path: %w", err)
	}

	return nil
}
