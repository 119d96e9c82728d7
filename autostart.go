package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

func autostartApp() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        appName,
		DisplayName: appDisplayName,
		Exec:        []string{execPath},
	}, nil
}

// setupAutostart makes the login item match enable
func setupAutostart(enable bool) error {
	app, err := autostartApp()
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			log.Printf("Failed to enable autostart: %v", err)
			return err
		}
		log.Println("Autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			log.Printf("Failed to disable autostart: %v", err)
			return err
		}
		log.Println("Autostart disabled")
	}

	return nil
}
